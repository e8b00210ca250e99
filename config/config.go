// Package config holds render settings for the gosieterm commands, read from
// a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/smasonuk/gosieterm"
)

// Config is the settings file layout.
type Config struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	FOV        float64 `toml:"fov"`
	Near       float64 `toml:"near"`
	CharAspect float64 `toml:"char_aspect"`
	// NearPolicy is "cull" or "clip".
	NearPolicy string `toml:"near_policy"`
	Background string `toml:"background"`
	FPS        int    `toml:"fps"`
	// Workers bounds concurrent object projection; 0 uses GOMAXPROCS.
	Workers int    `toml:"workers"`
	Colour  bool   `toml:"colour"`
	Scene   string `toml:"scene"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Width:      80,
		Height:     40,
		FOV:        90,
		Near:       0.1,
		CharAspect: 2,
		NearPolicy: "cull",
		Background: " ",
		FPS:        20,
		Colour:     true,
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return cfg, fmt.Errorf("config %s:%d:%d: %w", path, row, col, err)
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Validate checks the values the renderer cannot recover from.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("size %dx%d: %w", c.Width, c.Height, gosieterm.ErrInvalidDimension)
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		return fmt.Errorf("fov %g out of range (0, 180)", c.FOV)
	}
	if c.Near <= 0 {
		return fmt.Errorf("near plane %g must be positive", c.Near)
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if len([]rune(c.Background)) != 1 {
		return fmt.Errorf("background %q must be a single character", c.Background)
	}
	return nil
}

// Policy returns the near plane policy named by NearPolicy.
func (c Config) Policy() (gosieterm.NearPolicy, error) {
	switch c.NearPolicy {
	case "", "cull":
		return gosieterm.NearCull, nil
	case "clip":
		return gosieterm.NearClip, nil
	}
	return gosieterm.NearCull, fmt.Errorf("unknown near_policy %q", c.NearPolicy)
}

// BackgroundCell returns the background character as a cell.
func (c Config) BackgroundCell() gosieterm.Cell {
	r := []rune(c.Background)
	if len(r) == 0 {
		return gosieterm.CellEmpty
	}
	return gosieterm.NewCell(r[0])
}

// Camera builds a camera from the settings.
func (c Config) Camera() *gosieterm.Camera {
	cam := gosieterm.NewCamera(c.Width, c.Height, c.FOV, c.Near)
	cam.CharAspect = c.CharAspect
	cam.NearPolicy, _ = c.Policy()
	return cam
}

// Viewport builds a canvas and viewport sized by the settings.
func (c Config) Viewport() (*gosieterm.Viewport, error) {
	canvas, err := gosieterm.NewCanvas(c.Width, c.Height, c.BackgroundCell())
	if err != nil {
		return nil, err
	}
	vp := gosieterm.NewViewport(canvas, c.Camera())
	vp.Workers = c.Workers
	return vp, nil
}
