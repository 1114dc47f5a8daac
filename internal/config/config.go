package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Backend names the window implementation compiled into the binary.
const (
	BackendGLFW   = "glfw"
	BackendEbiten = "ebiten"
)

type Config struct {
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Scene       string `yaml:"scene"`
	Title       string `yaml:"title"`
	FPS         int    `yaml:"fps"`
	Watch       bool   `yaml:"watch"`
	ExitOnError bool   `yaml:"exit_on_error"`
	LogLevel    string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Width:    800,
		Height:   600,
		Scene:    "./scenes/geom_test.scn",
		Title:    "Scanline",
		FPS:      60,
		Watch:    true,
		LogLevel: "info",
	}
}

// Load reads path over the defaults. A missing file is not an error; found
// reports whether one was read.
func Load(path string) (cfg Config, found bool, err error) {
	cfg = Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, false, nil
	}
	if err != nil {
		return cfg, false, errors.Wrap(err, "reading config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, true, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, true, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("invalid screen size %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return errors.Errorf("invalid fps %d", c.FPS)
	}
	if c.Scene == "" {
		return errors.New("no scene path configured")
	}
	return nil
}
