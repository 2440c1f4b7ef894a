package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-brdf-pathtracer/pkg/core"
	"github.com/df07/go-brdf-pathtracer/pkg/renderer"
	"github.com/df07/go-brdf-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneID   string
	scenesDir string
	width     int
	height    int
	spp       int
	passes    int
	depth     int
	workers   int
	seed      int64
	outputDir string
}

func main() {
	var opts options
	var help bool
	fs := newFlagSet(&opts, &help)
	fs.Parse(os.Args[1:])
	if help {
		printHelp(fs, opts.scenesDir)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := core.NewDefaultLogger()
	if err := run(ctx, opts, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newFlagSet binds the command line flags to opts and help
func newFlagSet(opts *options, help *bool) *flag.FlagSet {
	fs := flag.NewFlagSet("pathtracer", flag.ExitOnError)
	fs.StringVar(&opts.sceneID, "scene", "rtweekend", "Scene ID or path to a .json scene file")
	fs.StringVar(&opts.scenesDir, "scenes-dir", "scenes", "Directory searched for *.json scenes")
	fs.IntVar(&opts.width, "width", 400, "Image width in pixels")
	fs.IntVar(&opts.height, "height", 0, "Image height in pixels (0 = derive from the camera aspect ratio)")
	fs.IntVar(&opts.spp, "spp", 64, "Samples per pixel")
	fs.IntVar(&opts.passes, "passes", 5, "Number of progressive passes")
	fs.IntVar(&opts.depth, "depth", 8, "Maximum path depth")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	fs.Int64Var(&opts.seed, "seed", 0, "Base random seed (0 = OS entropy)")
	fs.StringVar(&opts.outputDir, "output", "output", "Output directory")
	fs.BoolVar(help, "help", false, "Show help information")
	return fs
}

func printHelp(fs *flag.FlagSet, scenesDir string) {
	fmt.Println("BRDF Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	scenes, err := scene.ListScenes(scenesDir)
	if err != nil {
		fmt.Printf("  (failed to list scenes: %v)\n", err)
	}
	for _, info := range scenes {
		if info.Type == "json" {
			fmt.Printf("  %s (%s)\n", info.ID, info.FilePath)
		} else {
			fmt.Printf("  %s\n", info.ID)
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

func run(ctx context.Context, opts options, logger core.Logger) error {
	logger.Printf("Starting path tracer...\n")

	selectedScene, err := createScene(opts.sceneID, opts.scenesDir)
	if err != nil {
		return err
	}
	logger.Printf("Using scene %q with %d shapes\n", selectedScene.Name, selectedScene.GetPrimitiveCount())

	width, height := imageSize(opts.width, opts.height, selectedScene.Camera.AspectRatio)

	sampling := core.DefaultSamplingConfig()
	sampling.SamplesPerPixel = opts.spp
	sampling.MaxDepth = opts.depth

	config := renderer.DefaultProgressiveConfig()
	config.MaxSamplesPerPixel = opts.spp
	config.MaxPasses = opts.passes
	config.NumWorkers = opts.workers
	config.Seed = opts.seed

	raytracer, err := renderer.NewProgressiveRaytracer(selectedScene, width, height, config, sampling, logger)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	startTime := time.Now()
	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	logger.Printf("Render completed in %v (seed %d)\n", time.Since(startTime), raytracer.Seed())
	logger.Printf("Samples per pixel: %.1f (range %d - %d), luminance %.3f ± %.3f\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed, stats.LuminanceMean, stats.LuminanceStdDev)

	outputDir := createOutputDir(opts.outputDir, opts.sceneID)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	if err := savePNG(filename, img); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene resolves a scene ID or .json path
func createScene(sceneID, scenesDir string) (*scene.Scene, error) {
	if sceneID == "" {
		return nil, fmt.Errorf("scene name must not be empty")
	}
	return scene.Open(sceneID, scenesDir)
}

// imageSize fills in a missing height from the aspect ratio
func imageSize(width, height int, aspectRatio float64) (int, int) {
	if height > 0 {
		return width, height
	}
	if aspectRatio <= 0 {
		aspectRatio = 16.0 / 9.0
	}
	return width, max(1, int(math.Round(float64(width)/aspectRatio)))
}

// createOutputDir returns the directory a scene's renders are written to
func createOutputDir(base, sceneID string) string {
	name := filepath.Base(sceneID)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "scene"
	}
	return filepath.Join(base, name)
}

func savePNG(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return file.Close()
}
