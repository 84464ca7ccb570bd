package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/younwookim/ecb/internal/application/game"
	"github.com/younwookim/ecb/internal/application/replay"
	"github.com/younwookim/ecb/internal/application/scene/sandbox"
	"github.com/younwookim/ecb/internal/application/system"
	"github.com/younwookim/ecb/internal/infrastructure/config"
	"github.com/younwookim/ecb/internal/infrastructure/logger"
)

type options struct {
	stage    string
	fighters []string
	record   string
	replay   string
	verify   string
	logLevel string
	logFile  string
}

func parseFlags(args []string) (options, error) {
	var opts options
	var fighters string

	fset := flag.NewFlagSet("game", flag.ContinueOnError)
	fset.StringVar(&opts.stage, "stage", "demo", "Stage to load from configs/stages")
	fset.StringVar(&fighters, "fighter", "default", "Fighter from entities.json; repeat with commas for more fighters")
	fset.StringVar(&opts.record, "record", "", "Record input to file (e.g., -record replay.json)")
	fset.StringVar(&opts.replay, "replay", "", "Play back a recording in the window")
	fset.StringVar(&opts.verify, "verify", "", "Re-run a recording headless and report the first divergent frame")
	fset.StringVar(&opts.logLevel, "log-level", "", "Override the log level from physics.json")
	fset.StringVar(&opts.logFile, "log-file", "", "Override the log file from physics.json")
	if err := fset.Parse(args); err != nil {
		return opts, err
	}

	opts.fighters = splitList(fighters)
	if len(opts.fighters) == 0 {
		return opts, errors.New("at least one -fighter is required")
	}
	if opts.replay != "" && opts.verify != "" {
		return opts, errors.New("-replay and -verify are exclusive")
	}
	return opts, nil
}

func splitList(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}

// app is everything loaded before the window opens.
type app struct {
	cfg     *config.GameConfig
	session *sandbox.Session
	log     *zap.Logger
}

func setup(fsys fs.FS, opts options) (*app, error) {
	loader := config.NewFSLoader(fsys, "configs")
	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Physics.Logging
	if opts.logLevel != "" {
		logCfg.Level = opts.logLevel
	}
	if opts.logFile != "" {
		logCfg.File = opts.logFile
	}
	log := logger.New(logCfg, logger.DefaultOptions())

	stageCfg, err := loader.LoadStage(opts.stage)
	if err != nil {
		return nil, err
	}
	stage, err := system.LoadStage(stageCfg,
		system.WithLogger(log.Named("map")),
		system.WithLedgeBox(system.LedgeBoxFrom(cfg.Physics.Ledge)))
	if err != nil {
		return nil, err
	}

	specs := make([]sandbox.FighterSpec, 0, len(opts.fighters))
	for _, name := range opts.fighters {
		fc, err := cfg.Entities.Fighter(name)
		if err != nil {
			return nil, err
		}
		specs = append(specs, sandbox.FighterSpec{
			Name:       name,
			Attributes: fc,
			Body:       system.FighterConfigFrom(fc, cfg.Physics.Ledge),
		})
	}

	dt := 1.0 / float64(cfg.Physics.Display.Framerate)
	session, err := sandbox.NewSession(stage, dt, log.Named("movement"), specs...)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, session: session, log: log}, nil
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return fmt.Errorf("failed to get config subfs: %w", err)
	}

	var data *replay.ReplayData
	if path := opts.verify + opts.replay; path != "" {
		data, err = replay.LoadReplay(path)
		if err != nil {
			return err
		}
		// A recording carries its own stage and fighter.
		opts.stage = data.Stage
		opts.fighters = []string{data.Fighter}
	}

	a, err := setup(fsys, opts)
	if err != nil {
		return err
	}
	defer func() { _ = a.log.Sync() }()

	if opts.verify != "" {
		return verifyReplay(a, data, os.Stdout)
	}

	display := a.cfg.Physics.Display
	sb := sandbox.New(a.session, sandbox.Options{
		ScreenW:    display.ScreenWidth,
		ScreenH:    display.ScreenHeight,
		Scale:      display.Scale,
		Framerate:  display.Framerate,
		Keys:       system.DefaultKeyBindings(),
		RecordPath: opts.record,
		Replay:     data,
		Logger:     a.log.Named("sandbox"),
	})
	g := game.New(sb, display.ScreenWidth, display.ScreenHeight, display.Framerate, a.log)

	ebiten.SetWindowSize(display.ScreenWidth, display.ScreenHeight)
	ebiten.SetWindowTitle("ECB Sandbox - " + a.session.Stage.Name)
	ebiten.SetTPS(display.Framerate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
