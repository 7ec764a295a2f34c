// Command shaderasm builds and assembles A2xx-family vector/scalar shaders,
// either as a fixed demo program or served over the HTTP + WebSocket API,
// and can inspect the result through a terminal or desktop viewer.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/adrenoasm/a2xx/api"
	"github.com/adrenoasm/a2xx/assemble"
	"github.com/adrenoasm/a2xx/config"
	"github.com/adrenoasm/a2xx/demo"
	"github.com/adrenoasm/a2xx/gui"
	"github.com/adrenoasm/a2xx/tui"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to config.toml (default: platform config dir)")
		demoName    = flag.String("demo", "vertex_fetch", "Demo shader to build and assemble")
		tuiMode     = flag.Bool("tui", false, "Open the terminal inspector on the assembled shader")
		guiMode     = flag.Bool("gui", false, "Open the desktop inspector on the assembled shader")
		apiServer   = flag.Bool("api-server", false, "Start the HTTP + WebSocket API server")
		apiPort     = flag.Int("port", 0, "API server port override (default: from config)")
		outPath     = flag.String("out", "", "Write the assembled words (little-endian) to this file")
		listDemos   = flag.Bool("list-demos", false, "List available demo names and exit")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("shaderasm %s (%s)\n", Version, Commit)
		os.Exit(0)
	}

	if *listDemos {
		for _, name := range demo.Names() {
			fmt.Println(name)
		}
		os.Exit(0)
	}

	path := *configPath
	if path == "" {
		path = config.GetConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *apiPort > 0 {
		cfg.API.Port = *apiPort
	}

	if *apiServer {
		runAPIServer(cfg)
		return
	}

	shader, err := demo.Build(*demoName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building demo %q: %v\n", *demoName, err)
		fmt.Fprintf(os.Stderr, "Available demos: %s\n", strings.Join(demo.Names(), ", "))
		os.Exit(1)
	}

	words := make([]uint32, assemble.RequiredWords(shader))
	res, err := assemble.Assemble(shader, words)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Assemble error: %v\n", err)
		os.Exit(1)
	}
	words = words[:res.WordsWritten]

	fmt.Printf("Assembled %q: %d words, max_reg=%d max_input_reg=%d regs_written=%#x\n",
		*demoName, len(words), res.Info.MaxReg, res.Info.MaxInputReg, res.Info.RegsWritten)
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	if *outPath != "" {
		if err := writeWords(*outPath, words); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
	}

	switch {
	case *tuiMode:
		if err := tui.Run(shader, words, res.Info); err != nil {
			fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
			os.Exit(1)
		}
	case *guiMode:
		gui.Run(shader, words, res.Info)
	}
}

func runAPIServer(cfg *config.Config) {
	server := api.NewServer(cfg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var shutdownOnce sync.Once
	performShutdown := func() {
		shutdownOnce.Do(func() {
			fmt.Println("\nShutting down API server...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("API server stopped")
			os.Exit(0)
		})
	}

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "API server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-sigChan
	performShutdown()
}

// writeWords dumps words as little-endian uint32s, matching the
// output binary format used by the Assemble entry point.
func writeWords(path string, words []uint32) error {
	buf := make([]byte, 4*len(words))
	for i, w := range words {
		buf[4*i+0] = byte(w)
		buf[4*i+1] = byte(w >> 8)
		buf[4*i+2] = byte(w >> 16)
		buf[4*i+3] = byte(w >> 24)
	}
	return os.WriteFile(path, buf, 0o644)
}
