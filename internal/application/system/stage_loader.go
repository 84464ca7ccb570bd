package system

import (
	"fmt"

	"github.com/younwookim/ecb/internal/domain/entity"
	"github.com/younwookim/ecb/internal/domain/geom"
	"github.com/younwookim/ecb/internal/domain/terrain"
	"github.com/younwookim/ecb/internal/infrastructure/config"
)

// Stage is a loaded stage: its terrain plus the points fighters spawn at.
type Stage struct {
	ID         string
	Name       string
	Background string
	Map        *Map
	Spawns     []geom.Vector
}

// Spawn returns spawn point i, wrapping around when there are more fighters
// than spawns.
func (s *Stage) Spawn(i int) geom.Vector {
	return s.Spawns[i%len(s.Spawns)]
}

// LoadStage converts a StageConfig into a Stage with a ready Map.
func LoadStage(cfg *config.StageConfig, opts ...MapOption) (*Stage, error) {
	if len(cfg.Spawns) == 0 {
		return nil, fmt.Errorf("stage %s: %w", cfg.ID, config.ErrInvalidConfig)
	}

	platforms := make([]*terrain.Platform, 0, len(cfg.Platforms))
	for i, pc := range cfg.Platforms {
		points := make([]geom.Vector, len(pc.Points))
		for j, p := range pc.Points {
			points[j] = geom.Vec(p.X, p.Y)
		}
		p, err := terrain.NewPlatform(points...)
		if err != nil {
			return nil, fmt.Errorf("stage %s platform %d: %w", cfg.ID, i, err)
		}
		platforms = append(platforms, p)
	}

	ledges := make([]*terrain.Ledge, 0, len(cfg.Ledges))
	for i, lc := range cfg.Ledges {
		l, err := terrain.NewLedge(geom.Vec(lc.X, lc.Y), lc.Facing)
		if err != nil {
			return nil, fmt.Errorf("stage %s ledge %d: %w", cfg.ID, i, err)
		}
		ledges = append(ledges, l)
	}

	m, err := NewMap(platforms, ledges, opts...)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", cfg.ID, err)
	}

	spawns := make([]geom.Vector, len(cfg.Spawns))
	for i, s := range cfg.Spawns {
		spawns[i] = geom.Vec(s.X, s.Y)
	}

	return &Stage{
		ID:         cfg.ID,
		Name:       cfg.Name,
		Background: cfg.Background.Color,
		Map:        m,
		Spawns:     spawns,
	}, nil
}

// LedgeBoxFrom converts the ledge section of physics.json.
func LedgeBoxFrom(cfg config.LedgeConfig) LedgeBox {
	return LedgeBox{Width: cfg.BoxWidth, Height: cfg.BoxHeight, Base: cfg.BoxBase}
}

// FighterConfigFrom builds the collision-layer attributes of a fighter from
// its entities.json entry and the shared ledge settings.
func FighterConfigFrom(f config.FighterConfig, ledge config.LedgeConfig) entity.FighterConfig {
	return entity.FighterConfig{
		Ecb: entity.Extents{
			WidthLeft:    f.Ecb.WidthLeft,
			WidthRight:   f.Ecb.WidthRight,
			HeightTop:    f.Ecb.HeightTop,
			HeightBottom: f.Ecb.HeightBottom,
		},
		HardLandingSpeed:  f.Landing.HardLandingSpeed,
		LandingLagFrames:  f.Landing.LagFrames,
		LedgeRegrabFrames: ledge.RegrabFrames,
		LedgeHangOffset:   geom.Vec(ledge.HangOffset.X, ledge.HangOffset.Y),
		MaxJumps:          f.Jump.MaxJumps,
	}
}
