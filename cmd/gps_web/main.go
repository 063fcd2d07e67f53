package main

import (
	"flag"
	"log"

	"github.com/novarover/gpsnode/internal/app"
	"github.com/novarover/gpsnode/internal/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fatal: load config: %v", err)
	}

	log.Println("starting gpsnode web server (MQTT → HTTP/websocket)")

	if err := app.RunWeb(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
