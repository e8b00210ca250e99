package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/smasonuk/gosieterm"
	"github.com/smasonuk/gosieterm/config"
)

const fontSize = 14

var textColour = color.RGBA{R: 200, G: 200, B: 200, A: 255}

type Game struct {
	vp    *gosieterm.Viewport
	scene *gosieterm.Scene
	face  *text.GoTextFace

	cellW, cellH float64
	last         time.Time
	lastX, lastY int
	dragging     bool
}

func NewGame(vp *gosieterm.Viewport, scene *gosieterm.Scene) (*Game, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("loading mono font: %w", err)
	}
	face := &text.GoTextFace{Source: src, Size: fontSize}
	m := face.Metrics()

	g := &Game{
		vp:    vp,
		scene: scene,
		face:  face,
		cellW: text.Advance("M", face),
		cellH: math.Ceil(m.HAscent + m.HDescent + m.HLineGap),
		last:  time.Now(),
	}
	// cells are taller than they are wide, keep the projection square unless
	// the scene asks for its own aspect
	if scene.Camera.CharAspect <= 0 {
		vp.Camera.CharAspect = g.cellH / g.cellW
	}
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := time.Now()
	g.scene.Advance(now.Sub(g.last).Seconds())
	g.last = now

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragging = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.dragging {
		x, y := ebiten.CursorPosition()
		dx := float64(x-g.lastX) / 200.0
		dy := float64(y-g.lastY) / 200.0
		g.vp.Camera.AddAngle(-dy, -dx, 0)
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragging = false
	}

	step := 0.1
	fwd := g.vp.Camera.Forward().Mul(step)
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp):
		g.vp.Camera.AddPosition(fwd.X(), fwd.Y(), fwd.Z())
	case ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown):
		g.vp.Camera.AddPosition(-fwd.X(), -fwd.Y(), -fwd.Z())
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if _, err := g.vp.Render(); err != nil {
		log.Printf("render: %v", err)
		return
	}

	canvas := g.vp.Canvas
	for y := 0; y < canvas.Height(); y++ {
		for x, cell := range canvas.Row(y) {
			if cell.Char == ' ' {
				continue
			}
			op := &text.DrawOptions{}
			op.GeoM.Translate(float64(x)*g.cellW, float64(y)*g.cellH)
			op.ColorScale.ScaleWithColor(cellColour(cell))
			text.Draw(screen, string(cell.Char), g.face, op)
		}
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f", ebiten.ActualFPS()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenSize()
}

func (g *Game) screenSize() (int, int) {
	w := int(math.Ceil(float64(g.vp.Canvas.Width()) * g.cellW))
	h := int(math.Ceil(float64(g.vp.Canvas.Height()) * g.cellH))
	return w, h
}

func cellColour(c gosieterm.Cell) color.Color {
	if c.Mod.Kind == gosieterm.ModColour {
		return c.Mod.Col
	}
	return textColour
}

func loadScene(path string) (*gosieterm.Scene, error) {
	if path == "" {
		sphere := gosieterm.NewUVSphere(1.5, 14, 8,
			gosieterm.NewCell('#').WithRGB(255, 0, 0),
			gosieterm.NewCell('%').WithRGB(0, 255, 0), 3)
		sphere.Transform = gosieterm.NewTransformT(gosieterm.V3(0, 0, -5))
		scene := &gosieterm.Scene{Objects: []gosieterm.Object3D{sphere}}
		scene.SetSpin(0, gosieterm.V3(0, 0.8, 0))
		return scene, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scene: %w", err)
	}
	defer f.Close()
	return gosieterm.LoadScene(f, filepath.Dir(path))
}

func main() {
	log.SetPrefix("gosieview: ")

	configPath := flag.String("config", "", "TOML settings file")
	scenePath := flag.String("scene", "", "YAML scene file")
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

	g, err := NewGame(vp, scene)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetTPS(cfg.FPS)
	w, h := g.screenSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("gosieview")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
