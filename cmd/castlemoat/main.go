// Command castlemoat renders the castle-and-moat demo headlessly for a
// fixed number of frames, optionally encoding frames to WebP.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/cockroachdb/errors"
	"github.com/loov/hrtime"
	"go.uber.org/zap"

	"github.com/AsperSarras/castlemoat/internal/engine"
	"github.com/AsperSarras/castlemoat/internal/gpu"
	"github.com/AsperSarras/castlemoat/internal/logger"
	"github.com/AsperSarras/castlemoat/internal/scene"
	"github.com/AsperSarras/castlemoat/internal/texture"
)

func main() {
	frames := flag.Int("frames", 300, "number of frames to render")
	width := flag.Int("width", 800, "render width")
	height := flag.Int("height", 600, "render height")
	outDir := flag.String("out", "", "directory for WebP frames (empty: no output)")
	every := flag.Int("every", 10, "encode every Nth frame")
	scenePath := flag.String("scene", "", "scene TOML file (empty: embedded scene)")
	texDir := flag.String("textures", "textures", "texture directory")
	disturb := flag.Bool("disturb", false, "force random wave disturbances on")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	logger.Init()
	if *debug {
		logger.SetDebug()
	}
	defer logger.Log.Sync()

	if err := run(*frames, *width, *height, *outDir, *every, *scenePath, *texDir, *disturb); err != nil {
		logger.Log.Fatal("demo failed", zap.Error(err))
	}
}

func run(frames, width, height int, outDir string, every int, scenePath, texDir string, disturb bool) error {
	doc, err := loadScene(scenePath)
	if err != nil {
		return err
	}
	if disturb {
		doc.Waves.AutoDisturb = true
	}

	scn, err := scene.Build(doc, texture.NewManager(texDir, 256))
	if err != nil {
		return err
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}
	}

	dev := gpu.NewDevice()
	defer dev.Shutdown()

	// Frames are delivered on the device timeline; the writer records the
	// first failure and the host turns it fatal after the flush.
	var writeMu sync.Mutex
	var writeErr error
	present := func(frame int, img *image.NRGBA) {
		if outDir == "" || frame%every != 0 {
			return
		}
		if err := writeFrame(outDir, frame, img); err != nil {
			writeMu.Lock()
			if writeErr == nil {
				writeErr = err
			}
			writeMu.Unlock()
		}
	}

	app := engine.New(dev, scn, width, height, present)

	const dt = float32(1.0 / 60.0)
	start := hrtime.Now()
	for f := 0; f < frames; f++ {
		// Scripted slow orbit through the camera's drag callbacks.
		app.OnMouseDown(0, 0)
		app.OnMouseMove(0.5, 0, true, false)

		if err := app.Update(dt); err != nil {
			return errors.Wrapf(err, "frame %d update", f)
		}
		if err := app.Draw(); err != nil {
			return errors.Wrapf(err, "frame %d draw", f)
		}
	}
	if err := app.Flush(); err != nil {
		return errors.Wrap(err, "final flush")
	}
	elapsed := hrtime.Since(start)

	writeMu.Lock()
	defer writeMu.Unlock()
	if writeErr != nil {
		return errors.Wrap(writeErr, "writing frames")
	}

	perFrame := elapsed
	if frames > 0 {
		perFrame = elapsed / time.Duration(frames)
	}
	logger.Log.Info("done",
		zap.Int("frames", frames),
		zap.Duration("elapsed", elapsed),
		zap.Duration("perFrame", perFrame))
	return nil
}

func loadScene(path string) (*scene.Document, error) {
	if path == "" {
		return scene.Default()
	}
	return scene.LoadFile(path)
}

func writeFrame(dir string, frame int, img *image.NRGBA) error {
	path := filepath.Join(dir, fmt.Sprintf("frame_%04d.webp", frame))
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %q", path)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return errors.Wrapf(err, "encoding %q", path)
	}
	return f.Close()
}
