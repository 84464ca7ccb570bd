package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Physics  *PhysicsConfig
	Entities *EntitiesConfig
}

// Loader loads game configuration from files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
	// pixelsPerUnit converts TMX pixel coordinates into stage units.
	pixelsPerUnit float64
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return NewFSLoader(os.DirFS(basePath), basePath)
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:          fsys,
		basePath:      basePath,
		pixelsPerUnit: DefaultPhysics().Display.Scale,
	}
}

// SetPixelsPerUnit sets the TMX conversion factor. Non-positive values are
// ignored.
func (l *Loader) SetPixelsPerUnit(s float64) {
	if s > 0 {
		l.pixelsPerUnit = s
	}
}

// LoadPhysics loads physics.json. Missing fields keep their defaults.
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	data, err := fs.ReadFile(l.fsys, "physics.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read physics.json: %w", err)
	}

	cfg := DefaultPhysics()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse physics.json: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("physics.json: %w", err)
	}

	return cfg, nil
}

// LoadEntities loads entities.json
func (l *Loader) LoadEntities() (*EntitiesConfig, error) {
	data, err := fs.ReadFile(l.fsys, "entities.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read entities.json: %w", err)
	}

	var cfg EntitiesConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse entities.json: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("entities.json: %w", err)
	}

	return &cfg, nil
}

// LoadStage loads stages/<name>, trying .json, .yaml and .tmx in that order.
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	base := "stages/" + name

	cfg, err := l.loadStageFile(base+".json", name, json.Unmarshal)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = l.loadStageFile(base+".yaml", name, yaml.Unmarshal)
	}
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = loadTMXStage(l.fsys, base+".tmx", name, l.pixelsPerUnit)
	}
	if err != nil {
		return nil, err
	}

	if cfg.ID == "" {
		cfg.ID = name
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) loadStageFile(path, name string, unmarshal func([]byte, any) error) (*StageConfig, error) {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}

	return &cfg, nil
}

// LoadAll loads all base configurations (physics, entities)
func (l *Loader) LoadAll() (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}
	l.SetPixelsPerUnit(physics.Display.Scale)

	entities, err := l.LoadEntities()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Physics:  physics,
		Entities: entities,
	}, nil
}
