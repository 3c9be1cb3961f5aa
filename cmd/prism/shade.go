package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/watcher"
)

type shadeOptions struct {
	out       string
	width     int
	height    int
	yaw       float64
	pitch     float64
	wireframe bool
	watch     bool
}

func newShadeCmd(a *app) *cobra.Command {
	var opts shadeOptions

	cmd := &cobra.Command{
		Use:   "shade <model>",
		Short: "Render a flat-shaded model to a PNG",
		Long: `Render a model, lit by the configured light, into a PNG. With --watch the
image is rendered again whenever the model file changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShade(cmd.Context(), args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.out, "out", "o", "", "output PNG (default <model>.png)")
	flags.IntVar(&opts.width, "width", 320, "image width in pixels")
	flags.IntVar(&opts.height, "height", 240, "image height in pixels")
	flags.Float64Var(&opts.yaw, "yaw", 0, "turn the model about Y first, in degrees")
	flags.Float64Var(&opts.pitch, "pitch", 0, "tilt the model about X, in degrees")
	flags.BoolVar(&opts.wireframe, "wireframe", false, "outline every triangle")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "re-render when the model changes")
	return cmd
}

func (a *app) runShade(ctx context.Context, path string, opts shadeOptions) error {
	if opts.out == "" {
		opts.out = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}

	v, err := a.newViewer(path)
	if err != nil {
		return err
	}
	v.painter.Wireframe = opts.wireframe
	if opts.yaw != 0 || opts.pitch != 0 {
		q := math3d.QuatFromEuler(math3d.DegToRad(opts.pitch), math3d.DegToRad(opts.yaw), 0)
		if err := v.object.Transform().Rotate(q); err != nil {
			return err
		}
	}

	shade := func() error {
		fb := render.NewFramebuffer(opts.width, opts.height)
		drawn := v.paint(fb)
		if err := fb.SavePNG(opts.out); err != nil {
			return err
		}
		a.log.Info("wrote image",
			zap.String("path", opts.out),
			zap.Int("triangles", drawn))
		return nil
	}
	if err := shade(); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	changed, closeWatch, err := a.watchModel(ctx, path)
	if err != nil {
		return err
	}
	defer closeWatch()

	a.log.Info("watching for changes", zap.String("path", path))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			if err := v.reload(); err != nil {
				a.log.Warn("keeping previous model", zap.Error(err))
				continue
			}
			if err := shade(); err != nil {
				return err
			}
		}
	}
}

// watchModel reports changes to path on the returned channel until ctx is
// done. Bursts of writes are coalesced into one notification.
func (a *app) watchModel(ctx context.Context, path string) (<-chan struct{}, func(), error) {
	fw, err := watcher.New(200*time.Millisecond, a.log)
	if err != nil {
		return nil, nil, err
	}

	changed := make(chan struct{}, 1)
	err = fw.Watch([]string{path}, func(string) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		fw.Close()
		return nil, nil, err
	}
	fw.Start(ctx)

	return changed, func() {
		if err := fw.Close(); err != nil {
			a.log.Warn("close watcher", zap.Error(err))
		}
	}, nil
}
