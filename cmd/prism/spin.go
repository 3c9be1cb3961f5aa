package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/render"
)

// restVelocity is the angular speed, in radians per frame, below which a
// spin counts as stopped.
const restVelocity = 1e-4

type spinOptions struct {
	outDir    string
	frames    int
	width     int
	height    int
	pitch     float64
	yaw       float64
	roll      float64
	untilRest bool
}

func newSpinCmd(a *app) *cobra.Command {
	var opts spinOptions

	cmd := &cobra.Command{
		Use:   "spin <model>",
		Short: "Spin a model with an impulse and render the frames",
		Long: `Give the model an angular impulse and let it coast to a stop, relighting every
frame. Each frame is written as a PNG when --out is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSpin(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.outDir, "out", "o", "", "directory for frame PNGs")
	flags.IntVar(&opts.frames, "frames", 60, "maximum number of frames")
	flags.IntVar(&opts.width, "width", 160, "frame width in pixels")
	flags.IntVar(&opts.height, "height", 120, "frame height in pixels")
	flags.Float64Var(&opts.pitch, "pitch", 0, "pitch impulse, degrees per frame")
	flags.Float64Var(&opts.yaw, "yaw", 10, "yaw impulse, degrees per frame")
	flags.Float64Var(&opts.roll, "roll", 0, "roll impulse, degrees per frame")
	flags.BoolVar(&opts.untilRest, "until-rest", false, "stop early once the spin has died down")
	return cmd
}

func (a *app) runSpin(cmd *cobra.Command, path string, opts spinOptions) error {
	v, err := a.newViewer(path)
	if err != nil {
		return err
	}
	if opts.outDir != "" {
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return fmt.Errorf("create frame directory: %w", err)
		}
	}

	v.spinner.Impulse(math3d.DegToRad(opts.pitch), math3d.DegToRad(opts.yaw), math3d.DegToRad(opts.roll))

	fb := render.NewFramebuffer(opts.width, opts.height)
	frame := 0
	for ; frame < opts.frames; frame++ {
		if err := v.step(); err != nil {
			return err
		}
		if opts.outDir != "" {
			v.paint(fb)
			name := filepath.Join(opts.outDir, fmt.Sprintf("frame%04d.png", frame))
			if err := fb.SavePNG(name); err != nil {
				return err
			}
		}
		if opts.untilRest && v.spinner.Resting(restVelocity) {
			frame++
			break
		}
	}

	s := v.spinner
	a.log.Debug("spin finished",
		zap.Int("frames", frame),
		zap.Bool("resting", s.Resting(restVelocity)))

	fwd := v.object.Transform().Forward()
	fmt.Fprintf(cmd.OutOrStdout(), "Frames: %d\n", frame)
	fmt.Fprintf(cmd.OutOrStdout(), "Angles: pitch %.2f° yaw %.2f° roll %.2f°\n",
		math3d.RadToDeg(s.Pitch.Angle), math3d.RadToDeg(s.Yaw.Angle), math3d.RadToDeg(s.Roll.Angle))
	fmt.Fprintf(cmd.OutOrStdout(), "Forward: %s\n", fwd)
	return nil
}
