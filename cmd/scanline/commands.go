package main

import (
	"fmt"

	"Scanline/internal/config"
	"Scanline/internal/engine"
	"Scanline/internal/loader"
	"Scanline/internal/logger"
	"Scanline/internal/scene"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	configPath string
	logLevel   string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "scanline",
		Short:         "Animated scene rasterizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "scanline.yaml", "config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newViewCmd(opts), newRenderCmd(opts), newCheckCmd(opts))
	return root
}

func (o *options) setup(cmd *cobra.Command) error {
	cfg, found, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if err := logger.InitWithLevel(cfg.LogLevel); err != nil {
		return err
	}
	if found {
		logger.Log.Debug("Config loaded", zap.String("path", o.configPath))
	}
	o.cfg = cfg
	return nil
}

// scenePath picks the positional argument over the configured scene.
func (o *options) scenePath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return o.cfg.Scene
}

func newViewCmd(opts *options) *cobra.Command {
	var width, height int
	var noWatch bool
	cmd := &cobra.Command{
		Use:   "view [scene]",
		Short: "Open a window and play the scene",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("width") {
				cfg.Width = width
			}
			if cmd.Flags().Changed("height") {
				cfg.Height = height
			}
			if noWatch {
				cfg.Watch = false
			}
			cfg.Scene = opts.scenePath(args)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return view(cfg)
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "window width")
	cmd.Flags().IntVar(&height, "height", 0, "window height")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the scene when the file changes")
	return cmd
}

func view(cfg config.Config) error {
	d := engine.NewDriver(cfg.Scene, cfg.Width, cfg.Height)
	if err := d.Load(); err != nil {
		logger.Log.Error("Error loading scene", zap.Error(err))
		return err
	}
	if cfg.Watch {
		w, err := engine.Watch(cfg.Scene, d.RequestReload)
		if err != nil {
			logger.Log.Warn("Scene watching disabled", zap.Error(err))
		} else {
			defer w.Close()
		}
	}
	return engine.Run(d, cfg)
}

func newRenderCmd(opts *options) *cobra.Command {
	var at float32
	var out string
	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Draw one frame to an image file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := engine.NewDriver(opts.scenePath(args), opts.cfg.Width, opts.cfg.Height)
			if err := d.Load(); err != nil {
				return err
			}
			return d.RenderToFile(out, at)
		},
	}
	cmd.Flags().Float32Var(&at, "time", 0, "scene time in seconds")
	cmd.Flags().StringVar(&out, "out", "frame.png", "output image (.png or .bmp)")
	return cmd
}

func newCheckCmd(opts *options) *cobra.Command {
	var printScene bool
	cmd := &cobra.Command{
		Use:   "check [scene]",
		Short: "Parse a scene and report the first error",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.scenePath(args)
			sc, err := loader.LoadScene(path)
			if err != nil {
				return err
			}
			if printScene {
				return scene.Encode(cmd.OutOrStdout(), sc)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d commands, %d variables\n",
				path, len(sc.Commands), len(sc.Variables()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&printScene, "print", false, "print the scene in canonical form")
	return cmd
}
