package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikann/tagrestore/internal/config"
	"github.com/mikann/tagrestore/internal/pipeline"
	"github.com/mikann/tagrestore/internal/prompt"
)

func main() {
	// Command line flags
	var (
		inputFlag    = flag.String("input", "", "Music folder to scan (overrides config)")
		configFlag   = flag.String("config", "", "Path to config file")
		renameFlag   = flag.Bool("rename", true, "Rename files from canonical titles")
		coverArtFlag = flag.Bool("cover-art", false, "Embed front cover art from the Cover Art Archive")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag   = flag.Bool("dry-run", false, "Match albums without writing anything")
	)

	flag.Parse()

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *inputFlag != "" {
		settings.InputPath = *inputFlag
	} else if flag.NArg() > 0 {
		settings.InputPath = flag.Arg(0)
	}
	settings.RenameFiles = *renameFlag
	if *coverArtFlag {
		settings.EmbedCoverArt = true
	}

	if _, err := os.Stat(settings.InputPath); err != nil {
		fmt.Println("Tag Restore - Restore original-language metadata from MusicBrainz")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  tagrestore -input <folder> [options]")
		fmt.Println("  tagrestore <folder> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: tagrestore-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create runner with progress callback
	runner := pipeline.NewRunner(settings, prompt.NewTerminal(), func(event pipeline.ProgressEvent) {
		if event.Level == pipeline.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case pipeline.LevelError:
			prefix = "❌ "
		case pipeline.LevelWarning:
			prefix = "⚠️  "
		case pipeline.LevelSuccess:
			prefix = "✅ "
		case pipeline.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})
	runner.DryRun = *dryRunFlag

	fmt.Println("🎵 Tag Restore")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	summary, err := runner.Run(ctx, settings.InputPath)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("\nRun cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Complete! Restored %d album(s), wrote %d file(s)\n", summary.AlbumsRestored, summary.FilesWritten)

	if len(summary.SkippedFiles) > 0 {
		fmt.Printf("   %d file(s) skipped during scan\n", len(summary.SkippedFiles))
	}
	if len(summary.FailedFiles) > 0 {
		fmt.Printf("   %d file(s) failed to write\n", len(summary.FailedFiles))
	}
	for _, failure := range summary.FailedGroups {
		fmt.Printf("   Skipped album %q: %v\n", failure.Album, failure.Err)
	}
	if len(summary.FailedGroups) > 0 || len(summary.FailedFiles) > 0 {
		os.Exit(1)
	}
}
