package esi

// Fixed content shared by every generated file. Existing tooling diffs
// generated files, so these values must not change.

const (
	vendorImage = "424dd6020000000000003600000028000000100000000e0000000100180000000000a0020000c40e0000c40e000000000000000000004cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb1224cb122ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff241cedffffff241cedffffff241ced241cedffffffffffffffffff241ced241ced241cedffffff241cedffffffffffff241cedffffff241cedffffff241cedffffff241cedffffff241cedffffff241cedffffffffffff241cedffffffffffff241cedffffff241cedffffff241cedffffff241cedffffff241cedffffff241cedffffffffffff241cedffffffffffff241cedffffff241cedffffff241cedffffff241cedffffffffffff241cedffffffffffffffffff241cedffffffffffff241ced241ced241cedffffff241ced241cedffffffffffff241cedffffff241cedffffffffffff241cedffffffffffff241cedffffff241cedffffff241cedffffff241cedffffff241cedffffff241cedffffffffffff241cedffffffffffff241cedffffff241cedffffff241cedffffff241cedffffffffffff241cedffffffffffffffffff241cedffffffffffff241cedffffff241cedffffff241cedffffff241cedffffffffffffffffffffffffffffffffffff241cedffffffffffffffffff241cedffffffffffffffffff241cedffffffffffffffffffffffffffffffffffff241ced241ced241cedffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"

	groupImage = "424dd6020000000000003600000028000000100000000e0000000100180000000000a0020000c40e0000c40e00000000000000000000241ced241ced241ced241cedffffff241cedffffffffffffffffff241cedffffffffffffffffff241cedffffffffffff241cedffffffffffffffffffffffff241cedffffffffffffffffff241cedffffffffffffffffff241cedffffffffffff241cedffffffffffffffffffffffff241ced241ced241ced241ced241cedffffffffffffffffff241cedffffffffffff241cedffffffffffffffffffffffff241cedffffffffffffffffff241cedffffffffffffffffff241cedffffffffffff241cedffffffffffffffffffffffff241ced241cedffffff241ced241cedffffff241cedffffff241cedffffff241ced241ced241ced241ced241cedffffffffffff241ced241ced241cedffffffffffff241ced241ced241ced241ced241cedffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff241ced241ced241cedffffffffffff241ced241ced241cedffffff241ced241ced241cedffffff241ced241ced241ced241cedffffffffffffffffff241cedffffffffffff241cedffffffffffffffffff241cedffffffffffffffffff241ced241cedffffffffffffffffffffffff241ced241cedffffffffffff241ced241ced241cedffffff241ced241ced241ced241ced241cedffffffffffffffffffffffffffffff241cedffffff241cedffffffffffffffffff241cedffffff241ced241cedffffffffffffffffffffffff241ced241ced241cedffffff241ced241ced241cedffffff241cedffffff241ced241cedffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff241ced241ced241cedffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
)

const deviceGroupType = "SSC_Device"

// LAN9252 SPI EEPROM image.
const (
	eepromByteSize   = "4096"
	eepromConfigData = "8003006EFF00FF000000"
	eepromBootStrap  = "0010800080108000"
)

var eepromComments = []string{
	"0x140   0x80 PDI type LAN9252 Spi  ",
	"0x141   0x03 device emulation     ",
	"        enhanced link detection        ",
	"0x150   0x00 not used for LAN9252 Spi  ",
	"0x151   0x6E map Sync0 to AL event     ",
	"        Sync0/Latch0 assigned to Sync0 ",
	"        Sync1/Latch1 assigned to Sync1 ",
	"        Sync0/1 push/pull active high  ",
	"0x982-3 0x00FF Sync0/1 lenght = 2.5uS  ",
	"0x152   0xFF all GPIO set to out       ",
	"0x153   0x00 reserved                  ",
	"0x12-13 0x0000 alias address           ",
	"see more here: https://ww1.microchip.com/downloads/en/AppNotes/00001920A.pdf",
}

func mailboxElement(foe bool) *Element {
	mb := NewElement("Mailbox", "DataLinkLayer", "true")
	mb.SubElement("CoE",
		"SdoInfo", "true",
		"PdoAssign", "false",
		"PdoConfig", "false",
		"CompleteAccess", "false",
		"SegmentedSdo", "true",
	)
	if foe {
		mb.SubElement("FoE")
	}
	return mb
}

func dcElement() *Element {
	dc := NewElement("Dc")

	freeRun := dc.SubElement("OpMode")
	freeRun.TextElement("Name", "SM_Sync or Async")
	freeRun.TextElement("Desc", "SM_Sync or Async")
	freeRun.TextElement("AssignActivate", "#x0000")

	sync0 := dc.SubElement("OpMode")
	sync0.TextElement("Name", "DC_Sync")
	sync0.TextElement("Desc", "DC_Sync")
	sync0.TextElement("AssignActivate", "#x300")
	sync0.TextElement("CycleTimeSync0", "0", "Factor", "1")
	sync0.TextElement("ShiftTimeSync0", "2000200000")

	return dc
}

func eepromElement() *Element {
	ee := NewElement("Eeprom")
	ee.TextElement("ByteSize", eepromByteSize)
	ee.TextElement("ConfigData", eepromConfigData)
	for _, c := range eepromComments {
		ee.Comment(c)
	}
	ee.TextElement("BootStrap", eepromBootStrap)
	return ee
}
