package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}

	// Parse command line flags
	flag.IntVar(&cfg.Port, "port", cfg.Port, "Port to serve on")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Render workers per request (0 = all CPUs)")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}

	// Create and start web server
	webServer := server.NewServer(cfg)

	log.Printf("Path Tracer Web Server")
	log.Printf("Visit http://localhost:%d/api/scenes to list scenes", cfg.Port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
