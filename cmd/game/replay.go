package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/younwookim/ecb/internal/application/replay"
)

// verifyReplay re-runs a recording against freshly loaded terrain and
// reports whether every frame resolved to the recorded position.
func verifyReplay(a *app, data *replay.ReplayData, out io.Writer) error {
	if data.Framerate != 0 && data.Framerate != a.cfg.Physics.Display.Framerate {
		return fmt.Errorf("replay was recorded at %d fps, physics.json runs at %d",
			data.Framerate, a.cfg.Physics.Display.Framerate)
	}

	n, err := replay.Verify(*data, a.session.Step)
	if err != nil {
		a.log.Warn("replay verification failed", zap.Int("matched", n), zap.Error(err))
		return err
	}

	a.log.Info("replay verified", zap.Int("frames", n), zap.String("stage", data.Stage))
	_, _ = fmt.Fprintf(out, "replay OK: %d frames on stage %s\n", n, data.Stage)
	return nil
}
