// Command postfxdemo renders a synthetic HDR scene through the default
// post-processing pipeline and writes the result as a PNG.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/postfx"
	"github.com/gogpu/postfx/manager"
	"github.com/gogpu/postfx/software"
	"github.com/gogpu/postfx/stage"
)

type camera string

func (c camera) Name() string { return string(c) }

func main() {
	var (
		width   = flag.Int("width", 320, "image width")
		height  = flag.Int("height", 240, "image height")
		output  = flag.String("output", "postfx.png", "output file")
		config  = flag.String("config", "", "TOML pipeline record (optional)")
		hdr     = flag.Bool("hdr", true, "use floating-point processing (ignored with -config)")
		bloom   = flag.Bool("bloom", true, "enable bloom (ignored with -config)")
		fxaa    = flag.Bool("fxaa", false, "enable anti-aliasing (ignored with -config)")
		verbose = flag.Bool("v", false, "log pipeline rebuilds")
	)
	flag.Parse()

	if *verbose {
		postfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	rec := postfx.NewRecord(defaultName, postfx.DefaultConfig().
		WithBloomEnabled(*bloom).
		WithAntiAliasEnabled(*fxaa))
	rec.HDR = *hdr
	if *config != "" {
		var err error
		if rec, err = loadRecord(*config); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	if err := run(rec, stage.Size{Width: *width, Height: *height}, *output); err != nil {
		log.Fatal(err)
	}
}

// defaultName names the pipeline when the record does not.
const defaultName = "demo"

// loadRecord reads a TOML pipeline record from path.
func loadRecord(path string) (postfx.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return postfx.Record{}, err
	}
	rec, err := postfx.UnmarshalRecordTOML(data)
	if err != nil {
		return postfx.Record{}, err
	}
	if rec.Name == "" {
		rec.Name = defaultName
	}
	return rec, nil
}

// run renders one frame through a pipeline parsed from rec and saves it.
// The pipeline is disposed before run returns.
func run(rec postfx.Record, size stage.Size, output string) (err error) {
	dev := software.NewDevice()
	mgr := manager.New()
	cam := camera("main")

	p, err := postfx.Parse(rec, postfx.Environment{
		Manager: mgr,
		Factory: software.NewFactory(dev),
		Caps:    postfx.Capabilities{SupportsFloatTargets: true},
		Device:  dev,
	}, "", postfx.WithCameras(cam))
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}
	defer func() {
		if derr := p.Dispose(); derr != nil && err == nil {
			err = fmt.Errorf("dispose: %w", derr)
		}
	}()

	screen := software.NewBuffer(size.Width, size.Height, p.TextureFormat())
	if err := mgr.Render(cam, size, drawScene, screen); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := savePNG(output, screen); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	log.Printf("Rendered %v (%dx%d) to %s\n", p.Config().Variant(), size.Width, size.Height, output)
	return nil
}

// drawScene draws a dim gradient with a few over-bright lights and a hard
// diagonal edge.
func drawScene(dst stage.Target) error {
	b, ok := dst.(*software.Buffer)
	if !ok {
		return stage.ErrUnsupportedTarget
	}
	w, h := b.Width(), b.Height()

	lights := []struct {
		x, y, r float64
		c       software.Color
	}{
		{0.25, 0.35, 0.04, software.Color{6, 3, 1, 1}},
		{0.70, 0.30, 0.06, software.Color{1, 3, 8, 1}},
		{0.50, 0.75, 0.03, software.Color{10, 10, 10, 1}},
	}

	for y := 0; y < h; y++ {
		v := float64(y) / float64(h)
		for x := 0; x < w; x++ {
			u := float64(x) / float64(w)
			c := software.Color{float32(0.05 + 0.1*v), float32(0.05 + 0.05*u), 0.15, 1}
			if u+v > 1.2 {
				c = software.Color{0.4, 0.4, 0.45, 1}
			}
			for _, l := range lights {
				du := (u - l.x) * float64(w) / float64(h)
				dv := v - l.y
				if math.Hypot(du, dv) < l.r {
					c = l.c
				}
			}
			b.Set(x, y, c)
		}
	}
	return nil
}

func savePNG(path string, b *software.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, b.ToRGBA(b.Width(), b.Height())); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
