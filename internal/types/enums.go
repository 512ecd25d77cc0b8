package types

import (
	"fmt"
	"strings"
)

type EntryType string

const (
	EntryTypeUINT8  EntryType = "UINT8"
	EntryTypeUINT16 EntryType = "UINT16"
	EntryTypeUINT32 EntryType = "UINT32"
	EntryTypeREAL   EntryType = "REAL"
)

var entryBitLen = map[EntryType]int{
	EntryTypeUINT8:  8,
	EntryTypeUINT16: 16,
	EntryTypeUINT32: 32,
	EntryTypeREAL:   32,
}

// EntryTypes lists every supported entry type in declaration order.
func EntryTypes() []EntryType {
	return []EntryType{EntryTypeUINT8, EntryTypeUINT16, EntryTypeUINT32, EntryTypeREAL}
}

// BitLen returns the wire size of the type, or 0 for an unknown type.
func (t EntryType) BitLen() int {
	return entryBitLen[t]
}

// DataType is the tag rendered in the ESI DataType element.
func (t EntryType) DataType() string {
	return string(t)
}

func (t EntryType) Valid() bool {
	_, ok := entryBitLen[t]
	return ok
}

func (t EntryType) String() string {
	return string(t)
}

func ParseEntryType(s string) (EntryType, error) {
	t := EntryType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownEntryType, s)
	}
	return t, nil
}

type SyncManagerKind int

const (
	SyncManagerMailbox SyncManagerKind = iota
	SyncManagerBuffered
)

func (k SyncManagerKind) String() string {
	switch k {
	case SyncManagerMailbox:
		return "MAILBOX"
	case SyncManagerBuffered:
		return "BUFFERED"
	default:
		return "UNKNOWN"
	}
}

func ParseSyncManagerKind(s string) (SyncManagerKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MAILBOX":
		return SyncManagerMailbox, nil
	case "BUFFERED":
		return SyncManagerBuffered, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSyncManagerKind, s)
	}
}

type SyncManagerDirection int

const (
	DirectionRx SyncManagerDirection = iota
	DirectionTx
)

func (d SyncManagerDirection) String() string {
	switch d {
	case DirectionRx:
		return "RX"
	case DirectionTx:
		return "TX"
	default:
		return "UNKNOWN"
	}
}

func ParseSyncManagerDirection(s string) (SyncManagerDirection, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RX":
		return DirectionRx, nil
	case "TX":
		return DirectionTx, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSyncManagerDirection, s)
	}
}

type syncManagerMode struct {
	kind SyncManagerKind
	dir  SyncManagerDirection
}

var controlBytes = map[syncManagerMode]string{
	{SyncManagerMailbox, DirectionRx}:  "#x26",
	{SyncManagerMailbox, DirectionTx}:  "#x22",
	{SyncManagerBuffered, DirectionRx}: "#x64",
	{SyncManagerBuffered, DirectionTx}: "#x20",
}

// ControlByte returns the SM control byte for a kind/direction pair, or an
// empty string when either value is out of range.
func ControlByte(kind SyncManagerKind, dir SyncManagerDirection) string {
	return controlBytes[syncManagerMode{kind, dir}]
}
