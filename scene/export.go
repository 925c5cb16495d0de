package scene

import (
	"github.com/pkg/errors"

	"github.com/mogaika/keyframe_browser/animation"
)

type ExportOptions struct {
	FPS   float64
	Start animation.Frame // frame used for rest pose
}

func (opts ExportOptions) validate() error {
	if opts.FPS <= 0 {
		return errors.Errorf("Invalid export fps %v", opts.FPS)
	}
	return nil
}

func (opts ExportOptions) seconds(f animation.Frame) float64 {
	return float64(f) / opts.FPS
}
