package main

import (
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"gopkg.in/natefinch/lumberjack.v2"

	"elrs-hud/internal/source"
)

func main() {
	listen := flag.String("listen", "localhost:10000", "Address to serve telemetry on")
	interval := flag.Duration("interval", 100*time.Millisecond, "Time between frames")
	logFile := flag.String("log-file", "", "Write rotated logs to this file instead of stderr")
	flag.Parse()

	if *logFile != "" {
		w := &lumberjack.Logger{
			Filename:   *logFile,
			MaxSize:    16, // MB
			MaxBackups: 3,
		}
		defer w.Close()
		log.SetOutput(w)
	}
	if *interval <= 0 {
		log.Fatalf("Interval must be positive, got %s", *interval)
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", *listen, err)
	}

	s := grpc.NewServer()
	source.RegisterTelemetryServer(s, source.NewServer(source.NewSimulator(), *interval))

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down...")
		s.GracefulStop()
	}()

	log.Printf("Simulated telemetry on %s every %s", lis.Addr(), *interval)
	if err := s.Serve(lis); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
