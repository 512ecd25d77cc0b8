package types

const (
	DefaultGroupType = "SSC_Device"
	DefaultGroupName = "Test Group Name"
	DefaultLocale    = "en-US"
)

type VendorInfo struct {
	ID   string `validate:"nonzero"`
	Name string `validate:"nonzero"`
}

type GroupInfo struct {
	Type string
	Name string
}

// Entry is one mapped object inside a PDO group. An empty Index means the
// renderer assigns the next value of the device-wide entry counter.
type Entry struct {
	Name     string `validate:"nonzero"`
	Type     EntryType
	Index    string
	SubIndex uint
}

// HasIndex reports whether the entry carries an explicit object index.
func (e Entry) HasIndex() bool {
	return e.Index != ""
}

type PDOGroup struct {
	Name             string
	SyncManagerIndex int
	Entries          []Entry
}

func NewPDOGroup(name string, syncManagerIndex int) *PDOGroup {
	return &PDOGroup{
		Name:             name,
		SyncManagerIndex: syncManagerIndex,
		Entries:          make([]Entry, 0),
	}
}

func (p *PDOGroup) AddEntry(e Entry) *PDOGroup {
	p.Entries = append(p.Entries, e)
	return p
}

// SyncManager describes one SM channel. The control byte is derived from
// Kind and Direction and cannot be set directly.
type SyncManager struct {
	Name         string
	StartAddress string
	Kind         SyncManagerKind
	Direction    SyncManagerDirection
	DefaultSize  *int
	Enabled      bool
}

func NewSyncManager(name, startAddress string, kind SyncManagerKind, dir SyncManagerDirection) SyncManager {
	return SyncManager{
		Name:         name,
		StartAddress: startAddress,
		Kind:         kind,
		Direction:    dir,
		Enabled:      true,
	}
}

// WithDefaultSize returns a copy of the sync manager with DefaultSize set.
func (s SyncManager) WithDefaultSize(size int) SyncManager {
	s.DefaultSize = &size
	return s
}

func (s SyncManager) ControlByte() string {
	return ControlByte(s.Kind, s.Direction)
}

type Device struct {
	Name                         string
	SyncManagers                 []SyncManager
	RxPDOs                       []*PDOGroup
	TxPDOs                       []*PDOGroup
	EnableSDOAccess              bool
	EnableFileAccessOverEtherCAT bool
}

// NewDevice returns a device that owns its own empty collections.
func NewDevice(name string) *Device {
	return &Device{
		Name:         name,
		SyncManagers: make([]SyncManager, 0),
		RxPDOs:       make([]*PDOGroup, 0),
		TxPDOs:       make([]*PDOGroup, 0),
	}
}

func (d *Device) AddSyncManager(sm SyncManager) *Device {
	d.SyncManagers = append(d.SyncManagers, sm)
	return d
}

func (d *Device) AddRxPDO(p *PDOGroup) *Device {
	d.RxPDOs = append(d.RxPDOs, p)
	return d
}

func (d *Device) AddTxPDO(p *PDOGroup) *Device {
	d.TxPDOs = append(d.TxPDOs, p)
	return d
}

// PDOCount returns the number of PDO groups in both directions.
func (d *Device) PDOCount() int {
	return len(d.RxPDOs) + len(d.TxPDOs)
}

// EntryCount returns the number of entries across every PDO group.
func (d *Device) EntryCount() int {
	n := 0
	for _, p := range d.RxPDOs {
		n += len(p.Entries)
	}
	for _, p := range d.TxPDOs {
		n += len(p.Entries)
	}
	return n
}

// Document is the root of an ESI file: vendor and group metadata plus the
// ordered device descriptions.
type Document struct {
	Vendor            VendorInfo
	Group             GroupInfo
	Devices           []*Device
	UseLAN9252Profile bool
	Locale            string
}

func NewDocument() *Document {
	return &Document{
		Group: GroupInfo{
			Type: DefaultGroupType,
			Name: DefaultGroupName,
		},
		Devices:           make([]*Device, 0),
		UseLAN9252Profile: true,
	}
}

func (d *Document) SetVendor(id, name string) *Document {
	d.Vendor = VendorInfo{ID: id, Name: name}
	return d
}

// SetGroup replaces the group metadata. An empty type keeps the default.
func (d *Document) SetGroup(groupType, name string) *Document {
	if groupType == "" {
		groupType = DefaultGroupType
	}
	d.Group = GroupInfo{Type: groupType, Name: name}
	return d
}

func (d *Document) AddDevice(dev *Device) *Document {
	d.Devices = append(d.Devices, dev)
	return d
}
