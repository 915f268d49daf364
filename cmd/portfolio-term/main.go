// Command portfolio-term previews the live page widgets in a terminal. The
// same session the web server streams runs here, with the terminal viewport
// scrolling through a virtual page.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/live-portfolio/internal/content"
	"github.com/Zachkp/live-portfolio/internal/live"
)

var (
	contentFlag = flag.String("content", "", "portfolio YAML file (default: embedded)")
	logFlag     = flag.String("log", "", "write session logs to this file")
)

func main() {
	flag.Parse()

	// The terminal owns stdout and stderr while the preview runs.
	log.SetOutput(io.Discard)
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	p, err := loadPortfolio(*contentFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load content: %v\n", err)
		os.Exit(1)
	}

	session, err := live.NewSession("terminal", p, live.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create session: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	defer screen.Fini()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- session.Run(ctx) }()

	newPreview(screen, p, session).run(ctx)

	cancel()
	if err := <-done; err != nil {
		log.Printf("session: %v", err)
	}
}

func loadPortfolio(path string) (*content.Portfolio, error) {
	if path == "" {
		return content.Load()
	}
	return content.LoadFile(path)
}
