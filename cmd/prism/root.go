package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/prism/internal/config"
	"github.com/taigrr/prism/internal/logger"
)

// app carries the global flags and the state they produce.
type app struct {
	configPath string
	debug      bool
	logFile    string
	fov        float64
	mode       string
	texture    string

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "prism",
		Short: "Flat-shaded 3D model viewer",
		Long: `prism loads Wavefront OBJ and glTF models, lights every triangle with a
single directional light and draws the result to a PNG or the terminal.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./prism.yaml, then the user config dir)")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")
	flags.StringVar(&a.logFile, "log-file", "", "also write logs to this file")
	flags.Float64Var(&a.fov, "fov", 0, "horizontal field of view in degrees")
	flags.StringVar(&a.mode, "mode", "", `camera controller, "orbit" or "free"`)
	flags.StringVar(&a.texture, "texture", "", "texture image (PNG, JPEG, BMP, TIFF or WebP) sampled per triangle")

	root.AddCommand(
		newInfoCmd(a),
		newShadeCmd(a),
		newSpinCmd(a),
		newFlyCmd(a),
	)
	return root
}

// setup loads the configuration and starts logging before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath, config.Overrides{
		Debug:   a.debug,
		LogFile: a.logFile,
		FOV:     a.fov,
		Mode:    a.mode,
		Texture: a.texture,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg

	var fileCfg logger.FileConfig
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	// The terminal viewer owns the screen, so it only logs to the file.
	console := cmd.Name() != "fly"
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, console); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.log = logger.Log
	return nil
}
