package app

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/novarover/gpsnode/internal/config"
	"github.com/novarover/gpsnode/internal/gps"
	"github.com/novarover/gpsnode/internal/nmea"
	"github.com/novarover/gpsnode/internal/source"
)

// RunProducer opens the GPS chunk source, drains and decodes it at the
// configured rate, and publishes each decoded position as JSON to the
// MQTT position topic.
func RunProducer(cfg config.Config) error {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTT.Broker).
		SetClientID(cfg.MQTT.ProducerID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)
	log.Printf("gps producer connected to MQTT broker at %s", cfg.MQTT.Broker)

	src, err := source.Open(cfg.Source)
	if err != nil {
		return fmt.Errorf("open gps source: %w", err)
	}
	defer src.Close()
	log.Printf("gps source opened (%s)", cfg.Source.Kind)

	if cfg.NMEA.Configure {
		if err := nmea.Configure(src); err != nil {
			return fmt.Errorf("configure gps module: %w", err)
		}
		log.Printf("gps module configured for %s output at 10 Hz", cfg.NMEA.Sentence)
	}

	publish := func(p gps.Position) error {
		payload, err := json.Marshal(p)
		if err != nil {
			return err
		}
		token := client.Publish(cfg.MQTT.PositionTopic, 0, true, payload)
		token.Wait()
		return token.Error()
	}

	ticker := time.NewTicker(time.Second / time.Duration(cfg.NMEA.RateHz))
	defer ticker.Stop()

	for range ticker.C {
		chunk, err := src.ReadChunk()
		if err != nil {
			return fmt.Errorf("gps read: %w", err)
		}
		handleOutcome(nmea.Decode(chunk, cfg.NMEA.Sentence), publish)
	}
	return nil
}

// handleOutcome branches on every decode outcome explicitly. Only a
// real coordinate is published; every failure variant is logged (or,
// for an idle buffer, ignored) and the cycle skipped.
func handleOutcome(out nmea.Outcome, publish func(gps.Position) error) {
	switch out.Kind {
	case nmea.KindCoordinate:
		p := gps.Position{
			Latitude:  out.Coordinate.Latitude,
			Longitude: out.Coordinate.Longitude,
		}
		if err := publish(p); err != nil {
			log.Printf("gps publish error: %v", err)
			return
		}
		log.Printf("published position lat=%.6f lon=%.6f", p.Latitude, p.Longitude)
	case nmea.KindNoFix:
		log.Println("no gps fix")
	case nmea.KindChecksumFailed:
		log.Println("checksum failed, possible data corruption")
	case nmea.KindMalformedSentence:
		log.Println("invalid reading, check for hardware corruption")
	case nmea.KindNoSentenceFound:
		// Normal between module output intervals; stay quiet.
	}
}
