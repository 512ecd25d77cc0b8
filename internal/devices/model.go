package devices

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// ModelFile is the on-disk YAML form of an ESI document. The composer
// turns it into a types.Document.
type ModelFile struct {
	Output  string       `yaml:"output"`
	Locale  string       `yaml:"locale"`
	LAN9252 *bool        `yaml:"lan9252"`
	Vendor  VendorSpec   `yaml:"vendor"`
	Group   GroupSpec    `yaml:"group"`
	Devices []DeviceSpec `yaml:"devices"`
}

type VendorSpec struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type GroupSpec struct {
	Type string `yaml:"type"`
	Name string `yaml:"name"`
}

type DeviceSpec struct {
	Name            string            `yaml:"name"`
	EnableSDOAccess bool              `yaml:"enable_sdo_access"`
	EnableFoE       bool              `yaml:"enable_foe"`
	SyncManagers    []SyncManagerSpec `yaml:"sync_managers"`
	RxPDOs          []PDOSpec         `yaml:"rx_pdos"`
	TxPDOs          []PDOSpec         `yaml:"tx_pdos"`
}

// SyncManagerSpec accepts start_address as a string or an integer.
type SyncManagerSpec struct {
	Name         string  `yaml:"name"`
	StartAddress Literal `yaml:"start_address"`
	Kind         string  `yaml:"kind"`
	Direction    string  `yaml:"direction"`
	DefaultSize  *int    `yaml:"default_size"`
	Enabled      *bool   `yaml:"enabled"`
}

type PDOSpec struct {
	Name        string      `yaml:"name"`
	SyncManager int         `yaml:"sync_manager"`
	Entries     []EntrySpec `yaml:"entries"`
}

// EntrySpec is one entry, or a template when Repeat > 0. A template
// expands to Repeat entries with sub-indices 1..Repeat.
type EntrySpec struct {
	Name     string  `yaml:"name"`
	Type     string  `yaml:"type"`
	Index    Literal `yaml:"index"`
	SubIndex uint    `yaml:"sub_index"`
	Repeat   int     `yaml:"repeat"`
}

// Literal holds the hex digits of an address or object index as written in
// the model file. Quoted strings and plain decimal integers are kept
// verbatim, so start_address: 1000 renders as #x1000. A 0x integer keeps
// its digits without the prefix; 0o and 0b integers are converted to hex.
type Literal string

func (l *Literal) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar address, got %s", node.Line, node.ShortTag())
	}

	if node.ShortTag() == "!!int" {
		lit, err := intLiteral(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*l = Literal(lit)
		return nil
	}

	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Errorf("line %d: invalid address: %w", node.Line, err)
	}
	*l = Literal(s)
	return nil
}

func intLiteral(text string) (string, error) {
	digits := strings.ReplaceAll(text, "_", "")
	switch {
	case len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X"):
		return digits[2:], nil
	case len(digits) > 2 && (digits[:2] == "0o" || digits[:2] == "0b"):
		n, err := strconv.ParseUint(digits, 0, 64)
		if err != nil {
			return "", fmt.Errorf("invalid address %q: %w", text, err)
		}
		return strings.ToUpper(strconv.FormatUint(n, 16)), nil
	case strings.HasPrefix(digits, "-"):
		return "", fmt.Errorf("invalid address %q: negative", text)
	}
	return strings.TrimPrefix(digits, "+"), nil
}
