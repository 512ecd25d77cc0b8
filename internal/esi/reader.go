package esi

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// EtherCATInfo is the decoded form of an ESI file. It covers the parts
// this generator writes and is not a full model of the schema.
type EtherCATInfo struct {
	XMLName      xml.Name `xml:"EtherCATInfo"`
	Version      string   `xml:"Version,attr"`
	Vendor       Vendor
	Descriptions Descriptions
}

type Vendor struct {
	Id   string
	Name string
}

type Descriptions struct {
	Groups  []Group             `xml:"Groups>Group"`
	Devices []DeviceDescription `xml:"Devices>Device"`
}

type Group struct {
	SortOrder string `xml:",attr"`
	Type      string
	Names     []LcIdentifiedName `xml:"Name"`
}

type LcIdentifiedName struct {
	String string `xml:",chardata"`
	LcId   uint   `xml:",attr"`
}

type DeviceDescription struct {
	Physics   string `xml:",attr"`
	Type      DeviceType
	Names     []LcIdentifiedName `xml:"Name"`
	GroupType string
	Fmmus     []string `xml:"Fmmu"`
	Sms       []Sm     `xml:"Sm"`
	RxPdos    []Pdo    `xml:"RxPdo"`
	TxPdos    []Pdo    `xml:"TxPdo"`
	Mailbox   *Mailbox
	Dc        *Dc
	Eeprom    *Eeprom
}

type DeviceType struct {
	Name            string `xml:",chardata"`
	ProductCodeRaw  string `xml:"ProductCode,attr"`
	RevisionNoRaw   string `xml:"RevisionNo,attr"`
	CheckRevisionNo string `xml:",attr"`
}

func (d DeviceType) ProductCode() uint32 {
	return uint32(ParseHex(d.ProductCodeRaw))
}

func (d DeviceType) RevisionNo() uint32 {
	return uint32(ParseHex(d.RevisionNoRaw))
}

type Sm struct {
	Name            string `xml:",chardata"`
	DefaultSize     *uint  `xml:",attr"`
	StartAddressRaw string `xml:"StartAddress,attr"`
	ControlByteRaw  string `xml:"ControlByte,attr"`
	Enable          string `xml:",attr"`
}

func (s Sm) StartAddress() uint16 {
	return uint16(ParseHex(s.StartAddressRaw))
}

func (s Sm) ControlByte() uint8 {
	return uint8(ParseHex(s.ControlByteRaw))
}

type Pdo struct {
	Fixed     string `xml:",attr"`
	Mandatory string `xml:",attr"`
	Sm        int    `xml:",attr"`
	Index     string
	Name      string
	Entries   []PdoEntry `xml:"Entry"`
}

type PdoEntry struct {
	Index    string
	SubIndex uint
	BitLen   int
	Name     string
	DataType string
}

type Mailbox struct {
	DataLinkLayer string    `xml:",attr"`
	CoE           *CoE      `xml:"CoE"`
	FoE           *struct{} `xml:"FoE"`
}

type CoE struct {
	SdoInfo        string `xml:",attr"`
	PdoAssign      string `xml:",attr"`
	PdoConfig      string `xml:",attr"`
	CompleteAccess string `xml:",attr"`
	SegmentedSdo   string `xml:",attr"`
}

type Dc struct {
	OpModes []OpMode `xml:"OpMode"`
}

type OpMode struct {
	Name           string
	Desc           string
	AssignActivate string
	CycleTimeSync0 string
	ShiftTimeSync0 string
}

type Eeprom struct {
	ByteSize      uint
	ConfigDataRaw string `xml:"ConfigData"`
	BootStrap     string
}

func ReadEtherCATInfoFromFile(filename string) (*EtherCATInfo, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	return ReadEtherCATInfo(f)
}

func ReadEtherCATInfo(r io.Reader) (*EtherCATInfo, error) {
	var eci EtherCATInfo
	if err := xml.NewDecoder(r).Decode(&eci); err != nil {
		return nil, fmt.Errorf("failed to decode EtherCATInfo: %w", err)
	}
	return &eci, nil
}

// ParseHex converts a Beckhoff "#x" hex string to an integer. Strings
// without the prefix are read as decimal. Returns 0 on failure.
func ParseHex(s string) uint64 {
	var (
		n   uint64
		err error
	)

	if strings.HasPrefix(s, "#x") {
		n, err = strconv.ParseUint(s[2:], 16, 64)
	} else {
		n, err = strconv.ParseUint(s, 10, 64)
	}

	if err != nil {
		return 0
	}

	return n
}
