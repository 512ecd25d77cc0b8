package devices

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

var ErrModelNotFound = errors.New("model not found")

var modelExtensions = []string{"", ".yaml", ".yml"}

type ModelLoader struct {
	cache       sync.Map
	validator   *Validator
	searchPaths []string
}

func NewModelLoader(searchPaths []string) (*ModelLoader, error) {
	validator, err := NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create validator: %w", err)
	}

	return &ModelLoader{
		validator:   validator,
		searchPaths: searchPaths,
	}, nil
}

func (l *ModelLoader) Validator() *Validator {
	return l.validator
}

// Resolve finds the model file for name. A path to an existing file is
// used as is; otherwise each search path is tried with and without the
// .yaml/.yml extensions.
func (l *ModelLoader) Resolve(name string) (string, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name, nil
	}

	if !filepath.IsAbs(name) {
		for _, searchPath := range l.searchPaths {
			for _, ext := range modelExtensions {
				fullPath := filepath.Join(searchPath, name+ext)
				if info, err := os.Stat(fullPath); err == nil && !info.IsDir() {
					return fullPath, nil
				}
			}
		}
	}

	return "", fmt.Errorf("%w: %s (searched in: %v)", ErrModelNotFound, name, l.searchPaths)
}

func (l *ModelLoader) Load(name string) (*ModelFile, error) {
	// Cache-Check
	if cached, ok := l.cache.Load(name); ok {
		return cached.(*ModelFile), nil
	}

	foundPath, err := l.Resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(foundPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", foundPath, err)
	}

	model, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", foundPath, err)
	}

	l.cache.Store(name, model)

	return model, nil
}

// Parse validates raw YAML against the model schema and decodes it.
func (l *ModelLoader) Parse(data []byte) (*ModelFile, error) {
	if err := l.validator.ValidateModel(data); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var model ModelFile
	if err := yaml.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model: %w", err)
	}

	return &model, nil
}

func (l *ModelLoader) ClearCache() {
	l.cache.Range(func(key, value interface{}) bool {
		l.cache.Delete(key)
		return true
	})
}
