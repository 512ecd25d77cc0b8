package devices

import (
	"fmt"

	"github.com/pollen-robotics/esigen/internal/types"
	"go.uber.org/zap"
)

// ComposeDefaults fill in what a model file leaves unset.
type ComposeDefaults struct {
	Locale  string
	LAN9252 bool
}

type Composer struct {
	defaults ComposeDefaults
	logger   *zap.Logger
}

func NewComposer(defaults ComposeDefaults, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{
		defaults: defaults,
		logger:   logger,
	}
}

// Compose builds a complete document from a model file
func (c *Composer) Compose(model *ModelFile) (*types.Document, error) {
	c.logger.Info("Composing document",
		zap.String("vendor", model.Vendor.Name),
		zap.Int("devices", len(model.Devices)))

	doc := types.NewDocument().SetVendor(model.Vendor.ID, model.Vendor.Name)
	if model.Group.Type != "" || model.Group.Name != "" {
		groupName := model.Group.Name
		if groupName == "" {
			groupName = types.DefaultGroupName
		}
		doc.SetGroup(model.Group.Type, groupName)
	}

	doc.UseLAN9252Profile = c.defaults.LAN9252
	if model.LAN9252 != nil {
		doc.UseLAN9252Profile = *model.LAN9252
	}

	doc.Locale = c.defaults.Locale
	if model.Locale != "" {
		doc.Locale = model.Locale
	}

	for i, spec := range model.Devices {
		dev, err := c.composeDevice(spec, fmt.Sprintf("devices[%d]", i))
		if err != nil {
			return nil, fmt.Errorf("failed to compose device %q: %w", spec.Name, err)
		}
		doc.AddDevice(dev)

		c.logger.Debug("Device composed",
			zap.String("device", dev.Name),
			zap.Int("sync_managers", len(dev.SyncManagers)),
			zap.Int("pdos", dev.PDOCount()),
			zap.Int("entries", dev.EntryCount()))
	}

	c.logger.Info("Document composition complete",
		zap.String("vendor", doc.Vendor.Name),
		zap.Int("devices", len(doc.Devices)))

	return doc, nil
}

func (c *Composer) composeDevice(spec DeviceSpec, path string) (*types.Device, error) {
	dev := types.NewDevice(spec.Name)
	dev.EnableSDOAccess = spec.EnableSDOAccess
	dev.EnableFileAccessOverEtherCAT = spec.EnableFoE

	for i, smSpec := range spec.SyncManagers {
		sm, err := syncManagerFromSpec(smSpec)
		if err != nil {
			return nil, fmt.Errorf("%s.sync_managers[%d]: %w", path, i, err)
		}
		dev.AddSyncManager(sm)
	}

	for i, pdoSpec := range spec.RxPDOs {
		pdo, err := pdoFromSpec(pdoSpec)
		if err != nil {
			return nil, fmt.Errorf("%s.rx_pdos[%d]: %w", path, i, err)
		}
		dev.AddRxPDO(pdo)
	}

	for i, pdoSpec := range spec.TxPDOs {
		pdo, err := pdoFromSpec(pdoSpec)
		if err != nil {
			return nil, fmt.Errorf("%s.tx_pdos[%d]: %w", path, i, err)
		}
		dev.AddTxPDO(pdo)
	}

	return dev, nil
}

func syncManagerFromSpec(spec SyncManagerSpec) (types.SyncManager, error) {
	kind, err := types.ParseSyncManagerKind(spec.Kind)
	if err != nil {
		return types.SyncManager{}, err
	}
	dir, err := types.ParseSyncManagerDirection(spec.Direction)
	if err != nil {
		return types.SyncManager{}, err
	}
	sm := types.NewSyncManager(spec.Name, string(spec.StartAddress), kind, dir)
	if spec.DefaultSize != nil {
		sm = sm.WithDefaultSize(*spec.DefaultSize)
	}
	if spec.Enabled != nil {
		sm.Enabled = *spec.Enabled
	}
	return sm, nil
}

func pdoFromSpec(spec PDOSpec) (*types.PDOGroup, error) {
	pdo := types.NewPDOGroup(spec.Name, spec.SyncManager)

	for i, entrySpec := range spec.Entries {
		entries, err := entriesFromSpec(entrySpec)
		if err != nil {
			return nil, fmt.Errorf("entries[%d]: %w", i, err)
		}
		for _, e := range entries {
			pdo.AddEntry(e)
		}
	}

	return pdo, nil
}

// entriesFromSpec expands a template entry into one entry per repetition.
func entriesFromSpec(spec EntrySpec) ([]types.Entry, error) {
	typ, err := types.ParseEntryType(spec.Type)
	if err != nil {
		return nil, err
	}

	base := types.Entry{
		Name:     spec.Name,
		Type:     typ,
		Index:    string(spec.Index),
		SubIndex: spec.SubIndex,
	}

	if spec.Repeat <= 0 {
		return []types.Entry{base}, nil
	}

	entries := make([]types.Entry, 0, spec.Repeat)
	for i := 1; i <= spec.Repeat; i++ {
		e := base
		e.SubIndex = uint(i)
		entries = append(entries, e)
	}
	return entries, nil
}
