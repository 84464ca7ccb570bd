package config

import (
	"fmt"
	"io/fs"

	"github.com/lafriks/go-tiled"
)

// Object group names read from Tiled maps.
const (
	tmxPlatforms = "Platforms"
	tmxLedges    = "Ledges"
	tmxSpawn     = "Spawn"
)

// loadTMXStage reads a stage drawn in Tiled. Platforms are polylines (or
// polygons, which are closed) in the "Platforms" group, ledges and spawns
// are point objects in "Ledges" (with an int "facing" property) and "Spawn".
func loadTMXStage(fsys fs.FS, path, name string, pixelsPerUnit float64) (*StageConfig, error) {
	levelMap, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	unit := func(x, y float64) PointConfig {
		return PointConfig{X: x / pixelsPerUnit, Y: y / pixelsPerUnit}
	}

	cfg := &StageConfig{ID: name, Name: name}
	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case tmxPlatforms:
			for _, o := range og.Objects {
				for _, pl := range o.PolyLines {
					if pl.Points == nil {
						continue
					}
					var pc PlatformConfig
					for _, p := range *pl.Points {
						pc.Points = append(pc.Points, unit(o.X+p.X, o.Y+p.Y))
					}
					cfg.Platforms = append(cfg.Platforms, pc)
				}
				for _, pg := range o.Polygons {
					if pg.Points == nil || len(*pg.Points) == 0 {
						continue
					}
					var pc PlatformConfig
					for _, p := range *pg.Points {
						pc.Points = append(pc.Points, unit(o.X+p.X, o.Y+p.Y))
					}
					pc.Points = append(pc.Points, pc.Points[0])
					cfg.Platforms = append(cfg.Platforms, pc)
				}
			}
		case tmxLedges:
			for _, o := range og.Objects {
				pt := unit(o.X, o.Y)
				cfg.Ledges = append(cfg.Ledges, LedgeSpawnConfig{
					X:      pt.X,
					Y:      pt.Y,
					Facing: o.Properties.GetInt("facing"),
				})
			}
		case tmxSpawn:
			for _, o := range og.Objects {
				cfg.Spawns = append(cfg.Spawns, unit(o.X, o.Y))
			}
		}
	}

	return cfg, nil
}
