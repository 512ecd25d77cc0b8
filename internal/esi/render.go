package esi

import (
	"strconv"

	"github.com/pollen-robotics/esigen/internal/types"
)

const (
	pdoIndexStart   = 1600
	pdoIndexStep    = 100
	entryIndexStart = 10
)

// counters hold the PDO and entry index sequences for one device. They are
// local to a render pass so concurrent renders never share state.
type counters struct {
	pdo   int
	entry int
}

func newCounters() *counters {
	return &counters{pdo: pdoIndexStart, entry: entryIndexStart}
}

// nextPDO returns the next PDO index. Indices are "#x" followed by the
// decimal counter value, e.g. #x1600, #x1700.
func (c *counters) nextPDO() string {
	idx := "#x" + strconv.Itoa(c.pdo)
	c.pdo += pdoIndexStep
	return idx
}

func (c *counters) entryIndex(e types.Entry) string {
	if e.HasIndex() {
		return "#x" + e.Index
	}
	idx := "#x" + strconv.Itoa(c.entry)
	c.entry++
	return idx
}

// Render builds the EtherCATInfo element tree for doc. It does not
// validate; missing values render as empty text.
func Render(doc *types.Document) *Element {
	lcid := strconv.Itoa(LCID(doc.Locale))

	root := NewElement("EtherCATInfo",
		"xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance",
		"xsi:noNamespaceSchemaLocation", "EtherCATInfo.xsd",
		"Version", "1.6",
	)

	root.Append(vendorElement(doc.Vendor))

	descriptions := root.SubElement("Descriptions")
	groups := descriptions.SubElement("Groups")
	groups.Append(groupElement(doc.Group, lcid))

	devices := descriptions.SubElement("Devices")
	for _, dev := range doc.Devices {
		devices.Append(deviceElement(dev, doc.UseLAN9252Profile, lcid))
	}

	return root
}

func vendorElement(v types.VendorInfo) *Element {
	vendor := NewElement("Vendor")
	vendor.TextElement("Id", v.ID)
	vendor.TextElement("Name", v.Name)
	vendor.TextElement("ImageData16x14", vendorImage)
	return vendor
}

func groupElement(g types.GroupInfo, lcid string) *Element {
	groupType := g.Type
	if groupType == "" {
		groupType = types.DefaultGroupType
	}

	group := NewElement("Group", "SortOrder", "0")
	group.TextElement("Type", groupType)
	group.TextElement("Name", g.Name, "LcId", lcid)
	group.TextElement("ImageData16x14", groupImage)
	return group
}

func deviceElement(dev *types.Device, lan9252 bool, lcid string) *Element {
	el := NewElement("Device", "Physics", "YY")
	el.Comment(dev.Name + " Device")
	el.TextElement("Type", dev.Name,
		"ProductCode", "#x1",
		"RevisionNo", "#x1",
		"CheckRevisionNo", "EQ_OR_G",
	)
	el.TextElement("Name", dev.Name, "LcId", lcid)
	el.TextElement("GroupType", deviceGroupType)

	for _, sm := range dev.SyncManagers {
		el.TextElement("Fmmu", sm.Name)
	}
	for _, sm := range dev.SyncManagers {
		el.Append(syncManagerElement(sm))
	}

	c := newCounters()
	for _, pdo := range dev.RxPDOs {
		el.Comment(pdo.Name + " PDOs")
		el.Append(pdoElement("RxPdo", pdo, c))
	}
	for _, pdo := range dev.TxPDOs {
		el.Comment(pdo.Name + " PDOs")
		el.Append(pdoElement("TxPdo", pdo, c))
	}

	if dev.EnableSDOAccess {
		el.Append(mailboxElement(dev.EnableFileAccessOverEtherCAT))
	}

	el.Append(dcElement())

	if lan9252 {
		el.Append(eepromElement())
	}

	return el
}

func syncManagerElement(sm types.SyncManager) *Element {
	attrs := []string{"StartAddress", "#x" + sm.StartAddress}
	if sm.DefaultSize != nil {
		attrs = append(attrs, "DefaultSize", strconv.Itoa(*sm.DefaultSize))
	}
	attrs = append(attrs,
		"ControlByte", sm.ControlByte(),
		"Enable", formatEnable(sm.Enabled),
	)

	el := NewElement("Sm", attrs...)
	el.Text = sm.Name
	return el
}

func pdoElement(tag string, pdo *types.PDOGroup, c *counters) *Element {
	el := NewElement(tag,
		"Fixed", "1",
		"Mandatory", "1",
		"Sm", strconv.Itoa(pdo.SyncManagerIndex),
	)
	el.TextElement("Index", c.nextPDO())
	el.TextElement("Name", pdo.Name)

	for _, e := range pdo.Entries {
		entry := el.SubElement("Entry")
		entry.TextElement("Index", c.entryIndex(e))
		entry.TextElement("SubIndex", strconv.FormatUint(uint64(e.SubIndex), 10))
		entry.TextElement("BitLen", strconv.Itoa(e.Type.BitLen()))
		entry.TextElement("Name", e.Name)
		entry.TextElement("DataType", e.Type.DataType())
	}

	return el
}

func formatEnable(enabled bool) string {
	if enabled {
		return "1"
	}
	return "0"
}
