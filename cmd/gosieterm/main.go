package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/smasonuk/gosieterm"
	"github.com/smasonuk/gosieterm/config"
	"github.com/smasonuk/gosieterm/termout"
)

func main() {
	log.SetPrefix("gosieterm: ")
	log.SetFlags(0)

	configPath := flag.String("config", "", "TOML settings file")
	scenePath := flag.String("scene", "", "YAML scene file, overrides the settings file")
	frames := flag.Int("frames", 0, "stop after this many frames, 0 runs until interrupted")
	once := flag.Bool("once", false, "print a single uncoloured frame and exit")
	width := flag.Int("width", 0, "canvas width in cells")
	height := flag.Int("height", 0, "canvas height in cells")
	clip := flag.Bool("clip", false, "clip faces at the near plane instead of culling them")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *scenePath != "" {
		cfg.Scene = *scenePath
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *clip {
		cfg.NearPolicy = "clip"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	vp, err := cfg.Viewport()
	if err != nil {
		log.Fatal(err)
	}
	scene, err := loadScene(cfg.Scene)
	if err != nil {
		log.Fatal(err)
	}
	if err := scene.Populate(vp); err != nil {
		log.Fatal(err)
	}

	if *once {
		rows, err := vp.Render()
		if err != nil {
			log.Fatal(err)
		}
		for _, row := range rows {
			fmt.Println(row)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := termout.New(os.Stdout, cfg.Colour)
	out.Begin()
	err = run(ctx, vp, scene, out, cfg.FPS, *frames)
	out.End()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("%d frames", out.Frames())
}

func run(ctx context.Context, vp *gosieterm.Viewport, scene *gosieterm.Scene, out *termout.Writer, fps, frames int) error {
	if fps <= 0 {
		fps = 20
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := time.Now()
	for frames == 0 || out.Frames() < frames {
		if _, err := vp.Render(); err != nil {
			return err
		}
		if err := out.WriteFrame(vp.Canvas); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			scene.Advance(now.Sub(last).Seconds())
			last = now
		}
	}
	return nil
}

func loadScene(path string) (*gosieterm.Scene, error) {
	if path == "" {
		return demoScene(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scene: %w", err)
	}
	defer f.Close()
	return gosieterm.LoadScene(f, filepath.Dir(path))
}

func demoScene() *gosieterm.Scene {
	cube := gosieterm.NewCube(2)
	cube.Transform = gosieterm.NewTransformT(gosieterm.V3(0, 0, -6))

	grid := gosieterm.NewGrid(8, 8, gosieterm.NewCell('.'))
	grid.Transform = gosieterm.NewTransformT(gosieterm.V3(0, -1.5, -6))

	label := gosieterm.TextBlob{Pos: gosieterm.V2(1, 0), Text: "gosieterm", Z: 1}

	scene := &gosieterm.Scene{
		Shapes:  []gosieterm.Shape{label},
		Objects: []gosieterm.Object3D{grid, cube},
	}
	scene.SetSpin(1, gosieterm.V3(0.4, 0.9, 0))
	return scene
}
