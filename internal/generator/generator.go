package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pollen-robotics/esigen/internal/config"
	"github.com/pollen-robotics/esigen/internal/devices"
	"github.com/pollen-robotics/esigen/internal/esi"
	"github.com/pollen-robotics/esigen/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrDuplicateOutput is returned by GenerateAll when two models would be
// written to the same file.
var ErrDuplicateOutput = errors.New("duplicate output file")

// Result describes one generated ESI file.
type Result struct {
	Model   string
	Output  string
	Devices int
	Bytes   int
}

type Generator struct {
	loader    *devices.ModelLoader
	composer  *devices.Composer
	validator *devices.Validator
	outDir    string
	perm      os.FileMode
	strict    bool
	workers   int
	logger    *zap.Logger
}

func New(cfg *config.Config, logger *zap.Logger) (*Generator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loader, err := devices.NewModelLoader(cfg.Models.SearchPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to create model loader: %w", err)
	}

	perm, err := cfg.Output.Perm()
	if err != nil {
		return nil, err
	}

	composer := devices.NewComposer(devices.ComposeDefaults{
		Locale:  cfg.Generator.Locale,
		LAN9252: cfg.Generator.LAN9252Default,
	}, logger)

	return &Generator{
		loader:    loader,
		composer:  composer,
		validator: loader.Validator(),
		outDir:    cfg.Output.Dir,
		perm:      perm,
		strict:    cfg.Generator.Strict,
		workers:   cfg.Generator.WorkerCount(),
		logger:    logger,
	}, nil
}

// Build renders doc to ESI bytes. Strict mode validates first.
func (g *Generator) Build(doc *types.Document) ([]byte, error) {
	if g.strict {
		if err := g.validator.ValidateDocument(doc); err != nil {
			return nil, err
		}
	}
	return esi.Serialize(esi.Render(doc)), nil
}

// Generate loads one model file and writes its ESI document to the output
// directory.
func (g *Generator) Generate(ctx context.Context, modelPath string) (Result, error) {
	path, model, err := g.load(modelPath)
	if err != nil {
		return Result{}, err
	}

	doc, err := g.composer.Compose(model)
	if err != nil {
		return Result{}, fmt.Errorf("failed to compose %s: %w", path, err)
	}

	data, err := g.Build(doc)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build %s: %w", path, err)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	output := filepath.Join(g.outDir, outputName(path, model))
	if err := esi.WriteFile(output, data, g.perm); err != nil {
		g.logger.Error("Failed to write ESI file",
			zap.String("model", path),
			zap.String("output", output),
			zap.Error(err))
		return Result{}, fmt.Errorf("failed to write %s: %w", output, err)
	}

	g.logger.Info("ESI file generated",
		zap.String("model", path),
		zap.String("output", output),
		zap.Int("devices", len(doc.Devices)),
		zap.Int("bytes", len(data)))

	return Result{
		Model:   path,
		Output:  output,
		Devices: len(doc.Devices),
		Bytes:   len(data),
	}, nil
}

// GenerateAll generates every model concurrently. Results keep the order
// of modelPaths; the first failure cancels the remaining models.
func (g *Generator) GenerateAll(ctx context.Context, modelPaths []string) ([]Result, error) {
	if err := g.checkOutputs(modelPaths); err != nil {
		return nil, err
	}

	results := make([]Result, len(modelPaths))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	for i, modelPath := range modelPaths {
		i, modelPath := i, modelPath
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := g.Generate(ctx, modelPath)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g.logger.Info("Batch generation complete", zap.Int("models", len(results)))

	return results, nil
}

// checkOutputs resolves every model's output path before anything is
// written and rejects a batch in which two models share one.
func (g *Generator) checkOutputs(modelPaths []string) error {
	owners := make(map[string]string, len(modelPaths))
	for _, modelPath := range modelPaths {
		path, model, err := g.load(modelPath)
		if err != nil {
			return err
		}
		output := filepath.Clean(filepath.Join(g.outDir, outputName(path, model)))
		if prev, ok := owners[output]; ok {
			return fmt.Errorf("%w: %s is produced by both %s and %s", ErrDuplicateOutput, output, prev, path)
		}
		owners[output] = path
	}
	return nil
}

// Validate loads a model and runs the strict checks without writing
// anything, whatever the strict setting.
func (g *Generator) Validate(modelPath string) error {
	path, model, err := g.load(modelPath)
	if err != nil {
		return err
	}

	doc, err := g.composer.Compose(model)
	if err != nil {
		return fmt.Errorf("failed to compose %s: %w", path, err)
	}

	if err := g.validator.ValidateDocument(doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	g.logger.Debug("Model valid", zap.String("model", path))
	return nil
}

func (g *Generator) load(modelPath string) (string, *devices.ModelFile, error) {
	path, err := g.loader.Resolve(modelPath)
	if err != nil {
		return "", nil, err
	}

	model, err := g.loader.Load(path)
	if err != nil {
		return "", nil, err
	}
	return path, model, nil
}

// outputName is the model's output field, or the model file name with an
// .xml extension.
func outputName(modelPath string, model *devices.ModelFile) string {
	if model.Output != "" {
		return model.Output
	}
	base := filepath.Base(modelPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".xml"
}
