// Package sandbox provides the collision sandbox scene: fighters moving
// over a stage with the ECB and terrain drawn on top.
package sandbox

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/younwookim/ecb/internal/application/replay"
	"github.com/younwookim/ecb/internal/application/scene"
	"github.com/younwookim/ecb/internal/application/state"
	"github.com/younwookim/ecb/internal/application/system"
)

var colorBG = color.RGBA{26, 26, 46, 255}

// Options configures a Sandbox.
type Options struct {
	ScreenW   int
	ScreenH   int
	Scale     float64
	Framerate int
	Keys      system.KeyBindings

	// RecordPath enables recording; the file is written on F5 and on exit.
	RecordPath string
	// Replay, when set, drives the player from a recording instead of the
	// keyboard.
	Replay *replay.ReplayData

	Logger *zap.Logger
}

// Sandbox is the main scene
type Sandbox struct {
	session  *Session
	state    state.GameState
	input    *system.InputSystem
	renderer *system.Renderer
	screenW  int
	screenH  int
	bg       color.Color

	recorder   *replay.Recorder
	recordPath string
	replayer   *replay.Replayer
	diverged   error

	log *zap.Logger
}

// New creates a sandbox scene over session.
func New(session *Session, opts Options) *Sandbox {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Sandbox{
		session:    session,
		state:      state.StatePlaying,
		input:      system.NewInputSystem(opts.Keys),
		renderer:   system.NewRenderer(opts.Scale),
		screenW:    opts.ScreenW,
		screenH:    opts.ScreenH,
		bg:         parseColor(session.Stage.Background),
		recordPath: opts.RecordPath,
		log:        log,
	}

	if opts.RecordPath != "" {
		s.recorder = replay.NewRecorder(session.Stage.ID, session.World.Controller[session.player].Name, opts.Framerate)
		log.Info("recording enabled", zap.String("path", opts.RecordPath))
	}
	if opts.Replay != nil {
		s.replayer = replay.NewReplayer(*opts.Replay)
		s.state = state.StateReplaying
		log.Info("replaying", zap.Int("frames", s.replayer.TotalFrames()))
	}
	return s
}

func (s *Sandbox) Name() string { return "sandbox" }

// State is the current sandbox state.
func (s *Sandbox) State() state.GameState { return s.state }

// Session returns the simulation.
func (s *Sandbox) Session() *Session { return s.session }

// Update proceeds the sandbox (implements scene.Scene)
func (s *Sandbox) Update(_ float64) (scene.Scene, error) {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return nil, ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		s.saveRecording()
	}

	switch s.state {
	case state.StatePlaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			s.state = state.StatePaused
			return nil, nil
		}
		s.tick(s.input.GetInput())
	case state.StatePaused:
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
			s.state = state.StatePlaying
		case inpututil.IsKeyJustPressed(ebiten.KeyPeriod):
			// Frame advance.
			s.tick(s.input.GetInput())
		}
	case state.StateReplaying:
		s.stepReplay()
	}

	return nil, nil
}

func (s *Sandbox) tick(in system.InputState) {
	requested, position := s.session.Step(in)
	if s.recorder != nil {
		s.recorder.RecordFrame(in, requested, position)
	}
}

// stepReplay plays one recorded frame and checks it against the recording.
func (s *Sandbox) stepReplay() {
	fi, ok := s.replayer.Next()
	if !ok {
		s.state = state.StateReplayDone
		s.log.Info("replay finished",
			zap.Int("frames", s.replayer.TotalFrames()),
			zap.Bool("diverged", s.diverged != nil))
		return
	}

	requested, position := s.session.Step(fi.Input())
	if s.diverged != nil {
		return
	}
	if err := fi.Check(requested, position); err != nil {
		s.diverged = err
		s.log.Warn("replay diverged", zap.Error(err))
	}
}

// Diverged is the first mismatch seen while replaying, or nil.
func (s *Sandbox) Diverged() error { return s.diverged }

// saveRecording saves the current recording to file
func (s *Sandbox) saveRecording() {
	if s.recorder == nil {
		return
	}

	path := s.recordPath
	if path == "" {
		path = replay.GenerateFilename()
	}

	if err := s.recorder.Save(path); err != nil {
		if !errors.Is(err, replay.ErrNoFrames) {
			s.log.Error("failed to save recording", zap.String("path", path), zap.Error(err))
		}
		return
	}
	s.log.Info("recording saved", zap.String("path", path), zap.Int("frames", s.recorder.FrameCount()))
}

// Draw renders the sandbox
func (s *Sandbox) Draw(screen *ebiten.Image) {
	screen.Fill(s.bg)

	s.renderer.DrawMap(screen, s.session.Stage.Map)
	for i, f := range s.session.Fighters() {
		s.renderer.DrawFighter(screen, f)
		s.renderer.DrawStatus(screen, f, i)
	}

	var help string
	switch s.state {
	case state.StatePaused:
		help = "PAUSED  ESC: resume | .: step frame"
	case state.StateReplaying:
		help = fmt.Sprintf("REPLAY  frame %d/%d", s.replayer.CurrentFrame(), s.replayer.TotalFrames())
	case state.StateReplayDone:
		help = "REPLAY DONE"
		if s.diverged != nil {
			help += "  " + s.diverged.Error()
		}
	default:
		help = "A/D: move | W: jump | S: drop ledge | R: reset | ESC: pause | F5: save | Q: quit"
	}
	ebitenutil.DebugPrintAt(screen, help, 4, s.screenH-20)
}

// OnEnter is called when entering this scene
func (s *Sandbox) OnEnter() {
	s.log.Info("sandbox started",
		zap.String("stage", s.session.Stage.ID),
		zap.Int("platforms", len(s.session.Stage.Map.Platforms())),
		zap.Int("ledges", len(s.session.Stage.Map.Ledges())),
		zap.Int("fighters", s.session.World.CountFighters()))
}

// OnExit is called when leaving this scene
func (s *Sandbox) OnExit() {
	s.saveRecording()
}

// parseColor reads "#rrggbb", falling back to the default background.
func parseColor(hex string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return colorBG
	}
	return color.RGBA{r, g, b, 255}
}
