package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/PhiFever/docscan-helper/internal/config"
	"github.com/PhiFever/docscan-helper/internal/logger"
	"github.com/PhiFever/docscan-helper/internal/recognize"
	"github.com/PhiFever/docscan-helper/internal/scan"
	"github.com/PhiFever/docscan-helper/pkg/capture"
	"github.com/PhiFever/docscan-helper/pkg/utils"
	"github.com/PhiFever/docscan-helper/pkg/version"
)

func main() {
	fmt.Printf("Starting %s...\n", version.GetFullName())

	// Initialize logger
	if _, err := logger.Setup(logger.INFO); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Logger initialized")
	logger.Infof("Application: %s", version.GetFullName())
	logger.Infof("Author: %s", version.Author)

	// Load configuration
	cfg, err := config.Get()
	if err != nil {
		logger.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	logger.Info("Configuration loaded successfully")
	logger.Debugf("Display index: %d", cfg.DisplayIndex)
	logger.Debugf("Viewport: %dx%d at (%d,%d)",
		cfg.Viewport.Width, cfg.Viewport.Height, cfg.Viewport.X, cfg.Viewport.Y)
	logger.Debugf("Guide band height: %d (ratio %.2f)", cfg.GuideHeight(), cfg.GuideHeightRatio)

	// Build the recognition pipeline
	recognizer, err := recognize.NewRecognizer(cfg)
	if err != nil {
		logger.Errorf("Failed to create recognizer: %v", err)
		os.Exit(1)
	}

	// Create presenter
	capturer := capture.NewCapturer()
	presenter, err := scan.NewPresenter(cfg, capturer, recognizer)
	if err != nil {
		logger.Errorf("Failed to create presenter: %v", err)
		os.Exit(1)
	}

	guide := presenter.GuideRect()
	logger.Infof("Guide band (view coords): y=%d height=%d", guide.Y, guide.Height)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start presenter
	logger.Info("Starting presenter...")
	if err := presenter.Start(ctx); err != nil {
		logger.Errorf("Failed to start presenter: %v", err)
		os.Exit(1)
	}

	// Consume scan events
	eventsDone := make(chan struct{})
	go func() {
		defer close(eventsDone)
		for ev := range presenter.Events() {
			printEvent(ev)
		}
	}()

	logger.Info("Application started successfully")
	fmt.Println("Press Enter to capture, 'q' + Enter to quit (Ctrl+C also works)")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Manual capture trigger on stdin
	stdinDone := make(chan struct{})
	go func() {
		defer close(stdinDone)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "q" || line == "quit" {
				return
			}
			if _, err := presenter.Capture(); err != nil {
				logger.Warningf("Capture skipped: %v", err)
			}
		}
	}()

	select {
	case sig := <-quit:
		logger.Infof("Received signal: %v", sig)
	case <-stdinDone:
		logger.Info("Quit requested")
	}
	logger.Info("Shutting down gracefully...")

	// Stop presenter; queued recognitions finish first
	if err := presenter.Stop(); err != nil {
		logger.Errorf("Error stopping presenter: %v", err)
	}
	<-eventsDone

	cancel()

	stats := presenter.GetStatistics()
	logger.Infof("Sessions: started=%v delivered=%v failed=%v",
		stats["started"], stats["delivered"], stats["failed"])

	logger.Info("Application stopped")
}

// printEvent renders one scan event as a status line
func printEvent(ev scan.Event) {
	switch ev.Kind {
	case scan.EventBeginScan:
		bounds := ev.Image.Bounds()
		fmt.Printf("[%s] scanning band %dx%d...\n",
			ev.SessionID.String()[:8], bounds.Dx(), bounds.Dy())

	case scan.EventFinished:
		fmt.Printf("[%s] %s code: %s (%s, engine %s)\n",
			ev.SessionID.String()[:8], ev.Info.Kind, ev.Info.Raw,
			utils.FormatElapsed(ev.Elapsed), ev.Info.Engine)

	case scan.EventFailed:
		fmt.Printf("[%s] failed: %s (%s)\n",
			ev.SessionID.String()[:8], ev.Err.Message, utils.FormatElapsed(ev.Elapsed))
	}
}
