package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	"elrs-hud/hud"
	"elrs-hud/internal/config"
	"elrs-hud/internal/displayport"
	"elrs-hud/internal/preview"
	"elrs-hud/internal/preview/window"
	"elrs-hud/internal/source"
)

func main() {
	// Command line flags; anything given explicitly wins over the config file
	configPath := flag.String("config", "", "JSON configuration file")
	grpcAddr := flag.String("grpc", "localhost:10000", "gRPC ground station address")
	simulate := flag.Bool("sim", false, "Fly the built-in simulator instead of connecting to a ground station")
	serialPort := flag.String("serial", "", "DisplayPort serial device, e.g. /dev/ttyUSB0 (empty for none)")
	baudRate := flag.Int("baud", 115200, "DisplayPort baud rate")
	incremental := flag.Bool("incremental", false, "Skip the clear before every DisplayPort frame")
	view := flag.String("view", config.ViewNone, "Preview: none, terminal or window")
	fps := flag.Int("fps", 10, "Frames per second")
	logFile := flag.String("log-file", "", "Write rotated logs to this file instead of stderr")
	verbose := flag.Bool("v", false, "Log HUD construction details")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "grpc":
			cfg.GRPCAddr = grpcAddr
		case "sim":
			cfg.Simulate = simulate
		case "serial":
			cfg.SerialPort = serialPort
		case "baud":
			cfg.BaudRate = baudRate
		case "view":
			cfg.View = view
		case "fps":
			cfg.FPS = fps
		case "log-file":
			cfg.LogFile = logFile
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// The terminal preview owns the tty, so logs go to a file
	logPath := cfg.GetLogFile()
	if logPath == "" && cfg.GetView() == config.ViewTerminal {
		logPath = "elrs-hud.log"
	}
	closeLog := setupLogging(logPath, *verbose)
	defer closeLog()

	log.Println("ELRS HUD")

	opts, err := cfg.Options()
	if err != nil {
		log.Fatalf("Invalid HUD options: %v", err)
	}
	symbols, err := cfg.SymbolTable()
	if err != nil {
		log.Fatalf("Invalid symbol table: %v", err)
	}
	h, err := hud.New(opts, symbols)
	if err != nil {
		log.Fatalf("Failed to build HUD: %v", err)
	}
	fov := h.FieldOfView()
	log.Printf("HUD %dx%d, FOV %d°x%d°", h.Columns(), h.Rows(), fov.Width, fov.Height)

	a := &app{hud: h, fps: cfg.GetFPS()}

	if cfg.GetSimulate() {
		log.Println("Flying the built-in simulator")
		a.source = source.NewSimulator()
	} else {
		log.Printf("Connecting to gRPC backend at %s", cfg.GetGRPCAddr())
		client := source.NewClient(cfg.GetGRPCAddr())
		if err := client.Connect(); err != nil {
			log.Fatalf("Could not set up telemetry client: %v", err)
		}
		if err := client.StartTelemetryStream(); err != nil {
			log.Fatalf("Could not start telemetry stream: %v", err)
		}
		a.client = client
		a.source = client
	}

	if path := cfg.GetSerialPort(); path != "" {
		port, err := displayport.Open(path, cfg.GetBaudRate(), displayport.Encoder{Incremental: *incremental})
		if err != nil {
			a.shutdown()
			log.Fatalf("DisplayPort: %v", err)
		}
		a.port = port
	}

	var win *window.Window
	switch cfg.GetView() {
	case config.ViewTerminal:
		term, err := preview.NewTerminal(symbols)
		if err != nil {
			a.shutdown()
			log.Fatalf("Terminal preview: %v", err)
		}
		a.view = term
		a.input = term.Run
		a.closeView = term.Close
	case config.ViewWindow:
		win = window.New(h.Rows(), h.Columns(), symbols)
		a.view = win
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down...")
		cancel()
	}()

	// ebiten insists on the main goroutine, so the window runs here and
	// everything else runs in the group
	errc := make(chan error, 1)
	go func() { errc <- a.run(ctx) }()
	if win != nil {
		if err := win.Run(ctx); err != nil && !isShutdown(err) {
			log.Printf("Window error: %v", err)
		}
		cancel()
	}
	err = <-errc
	a.shutdown()
	if err != nil && !isShutdown(err) {
		log.Fatalf("HUD error: %v", err)
	}
	log.Printf("Rendered %d frames", a.frames.Load())
}

func isShutdown(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, preview.ErrQuit)
}

// setupLogging sends the standard logger and the hud logger to path, or to
// stderr when path is empty.
func setupLogging(path string, verbose bool) func() {
	var out io.Writer = os.Stderr
	closer := func() {}
	if path != "" {
		w := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    16, // MB
			MaxBackups: 3,
			MaxAge:     14,
		}
		out = w
		closer = func() { w.Close() }
	}
	log.SetOutput(out)

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	hud.SetLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return closer
}
