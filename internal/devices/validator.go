package devices

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	_ "embed"
	"github.com/pollen-robotics/esigen/internal/types"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/validator.v2"
	"gopkg.in/yaml.v3"
)

//go:embed schema/esi-model-v1.json
var esiModelSchemaJSON string

type Validator struct {
	schema *jsonschema.Schema
}

func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()

	if err := compiler.AddResource("esi-model-v1.json",
		strings.NewReader(esiModelSchemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile("esi-model-v1.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// ValidateModel checks raw YAML model data against the model schema.
func (v *Validator) ValidateModel(data []byte) error {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	// The schema library works on JSON values, so round-trip through JSON.
	js, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to convert model to JSON: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	var model interface{}
	if err := dec.Decode(&model); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := v.schema.Validate(model); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}

// ValidateDocument runs the strict checks on a composed document. Render
// itself never rejects input; these checks are opt-in.
func (v *Validator) ValidateDocument(doc *types.Document) error {
	var errs types.ModelErrors

	errs = append(errs, structErrors(doc.Vendor, "vendor")...)

	for i, dev := range doc.Devices {
		devPath := fmt.Sprintf("devices[%d]", i)
		if err := validator.Valid(dev.Name, "nonzero"); err != nil {
			errs = append(errs, types.NewModelError(types.CodeRequired, devPath+".name", "device name is required"))
		}

		for j, sm := range dev.SyncManagers {
			smPath := fmt.Sprintf("%s.sync_managers[%d]", devPath, j)
			if sm.ControlByte() == "" {
				errs = append(errs, types.NewModelError(types.CodeInvalidValue, smPath,
					fmt.Sprintf("no control byte for %s/%s", sm.Kind, sm.Direction)))
			}
			if sm.DefaultSize != nil && *sm.DefaultSize < 0 {
				errs = append(errs, types.NewModelError(types.CodeInvalidValue, smPath+".default_size",
					fmt.Sprintf("default size %d is negative", *sm.DefaultSize)))
			}
		}

		errs = append(errs, pdoErrors(dev, dev.RxPDOs, devPath+".rx_pdos")...)
		errs = append(errs, pdoErrors(dev, dev.TxPDOs, devPath+".tx_pdos")...)
	}

	return errs.Err()
}

func pdoErrors(dev *types.Device, pdos []*types.PDOGroup, path string) types.ModelErrors {
	var errs types.ModelErrors

	for i, pdo := range pdos {
		pdoPath := fmt.Sprintf("%s[%d]", path, i)

		// Devices without sync managers leave the assignment to the master.
		if n := len(dev.SyncManagers); n > 0 && (pdo.SyncManagerIndex < 0 || pdo.SyncManagerIndex >= n) {
			errs = append(errs, types.NewModelError(types.CodeOutOfRange, pdoPath+".sync_manager",
				fmt.Sprintf("sync manager %d does not exist (device has %d)", pdo.SyncManagerIndex, n)))
		}

		for j, e := range pdo.Entries {
			entryPath := fmt.Sprintf("%s.entries[%d]", pdoPath, j)
			errs = append(errs, structErrors(e, entryPath)...)
			if !e.Type.Valid() {
				errs = append(errs, types.NewModelError(types.CodeInvalidType, entryPath+".type",
					fmt.Sprintf("unsupported entry type %q", e.Type)))
			}
		}
	}

	return errs
}

// structErrors runs the validate struct tags on s and maps failures to
// model errors under path.
func structErrors(s interface{}, path string) types.ModelErrors {
	err := validator.Validate(s)
	if err == nil {
		return nil
	}

	errMap, ok := err.(validator.ErrorMap)
	if !ok {
		return types.ModelErrors{types.NewModelError(types.CodeInvalidValue, path, err.Error())}
	}

	fields := make([]string, 0, len(errMap))
	for field := range errMap {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var errs types.ModelErrors
	for _, field := range fields {
		fieldPath := path + "." + strings.ToLower(field)
		for _, fe := range errMap[field] {
			code := types.CodeInvalidValue
			if fe == validator.ErrZeroValue {
				code = types.CodeRequired
			}
			errs = append(errs, types.NewModelError(code, fieldPath, fe.Error()))
		}
	}
	return errs
}
