package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

// run parses args on top of the environment config, renders the scene and
// writes the image to the -o file or, as PPM, to stdout. Progress goes to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Scene, "scene", cfg.Scene, "Scene: "+strings.Join(scene.Names(), ", "))
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Image width in pixels")
	fs.Var(&cfg.AspectRatio, "aspect", "Aspect ratio as width/height, e.g. 1.5 or 16:9")
	fs.IntVar(&cfg.Samples, "samples", cfg.Samples, "Samples per pixel")
	fs.IntVar(&cfg.MaxDepth, "depth", cfg.MaxDepth, "Maximum ray bounce depth")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of parallel workers (0 = CPU count)")
	fs.StringVar(&cfg.Output, "o", cfg.Output, "Output file (.ppm, .png, .jpg, ...); empty writes PPM to stdout")
	help := fs.Bool("help", false, "Show help information")
	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *help {
		printUsage(fs)
		return flag.ErrHelp
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	selectedScene, err := createScene(cfg)
	if err != nil {
		return err
	}

	logger := renderer.NewDefaultLogger(stderr)
	logger.Printf("Using %s scene (%d primitives)\n", cfg.Scene, selectedScene.GetPrimitiveCount())

	raytracer := renderer.NewRaytracer(selectedScene, cfg.RenderOptions(), logger)
	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}
	logger.Printf("%s\n", stats)

	if cfg.Output == "" {
		return output.WritePPM(stdout, img)
	}
	if err := output.SaveImage(cfg.Output, img); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", cfg.Output)
	return nil
}

// createScene builds the configured scene and checks it can be rendered
func createScene(cfg config.Config) (*scene.Scene, error) {
	s, err := scene.Create(cfg.Scene, cfg.SceneOptions())
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", cfg.Scene, err)
	}
	return s, nil
}

func printUsage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintln(w, "Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options] > image.ppm")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-8s - %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Every option can also be set from the environment, e.g. SAMPLES=100 or %s_SAMPLES=100\n", config.EnvPrefix)
}
