package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"

	"github.com/df07/go-stochastic-raytracer/pkg/loaders"
	"github.com/df07/go-stochastic-raytracer/pkg/renderer"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

const scenesDir = "scenes"

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Built-in scene name or path to a .json scene file")
	width := flag.Int("width", 0, "Image width override (0 = scene default)")
	height := flag.Int("height", 0, "Image height override (0 = scene default)")
	samples := flag.Int("spp", 0, "Samples per pixel override (0 = scene default)")
	maxDepth := flag.Int("depth", 0, "Maximum bounce depth override (0 = scene default)")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = CPU count)")
	tileSize := flag.Int("tile", renderer.DefaultConfig().TileSize, "Tile size in pixels")
	seed := flag.Int64("seed", renderer.DefaultConfig().Seed, "Random seed for sampling and random scenes")
	output := flag.String("out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	list := flag.Bool("list", false, "List available scenes and exit")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Stochastic Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		printScenes()
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene_type>/render_<timestamp>.png")
		return
	}

	if *list {
		printScenes()
		return
	}

	fmt.Println("Starting Stochastic Raytracer...")

	selectedScene, err := createScene(*sceneType, *seed)
	if err != nil {
		log.Fatalf("Error creating scene: %v", err)
	}

	// Apply sampling overrides; the camera aspect ratio follows the new image size
	sampling := scene.MergeSamplingConfig(selectedScene.SamplingConfig, scene.SamplingConfig{
		Width:           *width,
		Height:          *height,
		SamplesPerPixel: *samples,
		MaxDepth:        *maxDepth,
	})
	if sampling != selectedScene.SamplingConfig {
		cameraConfig := selectedScene.CameraConfig
		if *width > 0 || *height > 0 {
			cameraConfig.AspectRatio = 0
		}
		selectedScene, err = scene.NewScene(selectedScene.Name, cameraConfig, selectedScene.World, selectedScene.Background, sampling)
		if err != nil {
			log.Fatalf("Error applying overrides: %v", err)
		}
	}

	filename := *output
	if filename == "" {
		outputDir := createOutputDir(*sceneType)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			log.Fatalf("Error creating output directory: %v", err)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	raytracer := renderer.NewRaytracer(selectedScene, renderer.Config{
		TileSize:   *tileSize,
		NumWorkers: *workers,
		Seed:       *seed,
	}, renderer.NewDefaultLogger())

	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}

	fmt.Printf("Render completed in %v\n", stats.Duration)
	fmt.Printf("Samples per pixel: %.1f over %d tiles, average luminance %.3f\n",
		stats.AverageSamples, stats.TilesRendered, renderer.CalculateAverageLuminance(img))

	if err := gg.SavePNG(filename, img); err != nil {
		log.Fatalf("Error saving PNG: %v", err)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// createScene builds a built-in scene by name or loads a JSON scene file by path
func createScene(sceneType string, seed int64) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("scene name cannot be empty")
	}
	if loaders.IsSceneFile(sceneType) {
		s, err := loaders.LoadAndBuild(sceneType)
		if err != nil {
			return nil, fmt.Errorf("failed to load scene file: %w", err)
		}
		return s, nil
	}

	s, err := scene.New(sceneType, seed)
	if err == nil {
		return s, nil
	}

	// Fall back to a JSON file of the same name in the scenes directory
	candidate := filepath.Join(scenesDir, sceneType+".json")
	if _, statErr := os.Stat(candidate); statErr == nil {
		return loaders.LoadAndBuild(candidate)
	}
	return nil, err
}

// createOutputDir returns the output directory for a scene name or file path
func createOutputDir(sceneType string) string {
	base := sceneType
	if loaders.IsSceneFile(sceneType) {
		base = strings.TrimSuffix(filepath.Base(sceneType), filepath.Ext(sceneType))
	}
	if base == "" || base == "." {
		base = "scene"
	}
	return filepath.Join("output", base)
}

func printScenes() {
	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		log.Printf("Warning: %v", err)
		scenes = scene.BuiltinScenes()
	}

	fmt.Println("Available scenes:")
	for _, s := range scenes {
		if s.Type == "file" {
			fmt.Printf("  %-14s %s\n", s.FilePath, s.DisplayName)
			continue
		}
		fmt.Printf("  %-14s %s\n", s.ID, s.Description)
	}
}
