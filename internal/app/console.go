package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/novarover/gpsnode/internal/config"
	"github.com/novarover/gpsnode/internal/gps"
)

// RunConsole prints published positions to the terminal. Handy in the
// field when the base station is not up yet.
func RunConsole(cfg config.Config) error {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTT.Broker).
		SetClientID(cfg.MQTT.ConsoleID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTT.Broker)

	token := client.Subscribe(cfg.MQTT.PositionTopic, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var p gps.Position
		if err := json.Unmarshal(msg.Payload(), &p); err != nil {
			log.Printf("console: position unmarshal error: %v", err)
			return
		}

		fmt.Printf("[GPS ]  lat=%10.6f  lon=%11.6f\n", p.Latitude, p.Longitude)
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: subscribed to %s", cfg.MQTT.PositionTopic)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
