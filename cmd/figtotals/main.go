// Command figtotals sums the numbers found inside colored highlighter
// regions of a screenshot and prints the per-color breakdown.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/disintegration/imaging"

	"github.com/noblearch/figtotals/internal/format"
	"github.com/noblearch/figtotals/internal/ocr"
	"github.com/noblearch/figtotals/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("figtotals %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	configPath := flag.String("config", "", "YAML config file (palette, thresholds, value range)")
	unit := flag.String("unit", "", "unit suffix for totals (default from config, normally mm)")
	timeout := flag.Duration("timeout", 0, "overall processing timeout (default from config)")
	debug := flag.Bool("debug", false, "log per-color region counts and candidate provenance")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: figtotals [options] <image>")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Reads numbers out of colored highlighter regions in the image and")
		fmt.Fprintln(os.Stderr, "prints per-color values, totals, and a grand total.")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	imagePath := flag.Arg(0)

	cfg := pipeline.DefaultConfig()
	if *configPath != "" {
		loaded, err := pipeline.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Config error: %v", err)
		}
		cfg = loaded
	}
	if *unit != "" {
		cfg.Unit = *unit
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}

	engine, err := ocr.NewTesseract()
	if err != nil {
		log.Fatalf("OCR engine unavailable: %v", err)
	}
	defer engine.Close()

	img, err := imaging.Open(imagePath)
	if err != nil {
		log.Fatalf("Failed to load image: %v", err)
	}

	pl, err := pipeline.New(engine, cfg)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	start := time.Now()
	result, err := pl.Run(context.Background(), img)
	if err != nil {
		log.Fatalf("Processing failed: %v", err)
	}

	if *debug {
		log.Printf("Processed %s in %v", imagePath, time.Since(start).Round(time.Millisecond))
		for _, ref := range cfg.Palette {
			log.Printf("  %s: %d candidate region(s)", ref.Name, result.RegionCounts[ref.Name])
		}
		for _, d := range result.Detections {
			log.Printf("  %s %v -> %d (rot %d, %s, psm %d)",
				d.Color, d.Region, d.Candidate.Value,
				d.Candidate.Rotation, d.Candidate.Mode, d.Candidate.PSM)
		}
		if result.Partial {
			log.Printf("  timed out; result is partial")
		}
	}

	out := format.Format(result, pl.Unit())
	fmt.Println(out.Display)
}
