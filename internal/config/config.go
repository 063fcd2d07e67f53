// Package config loads the node configuration from a YAML file and
// fills in deployment defaults for the reference hardware (Adafruit
// Ultimate GPS on /dev/serial0, broker on the Pi itself).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Source SourceConfig `yaml:"source"`
	MQTT   MQTTConfig   `yaml:"mqtt"`
	NMEA   NMEAConfig   `yaml:"nmea"`
	Web    WebConfig    `yaml:"web"`
}

type SourceConfig struct {
	// Kind selects the transport to the module: "serial" or "i2c".
	Kind   string       `yaml:"kind"`
	Serial SerialConfig `yaml:"serial"`
	I2C    I2CConfig    `yaml:"i2c"`
}

type SerialConfig struct {
	Port string `yaml:"port"`
	Baud uint   `yaml:"baud"`
}

type I2CConfig struct {
	// Bus is a periph bus name; empty means the first available bus.
	Bus  string `yaml:"bus"`
	Addr uint16 `yaml:"addr"`
}

type MQTTConfig struct {
	Broker        string `yaml:"broker"`
	ProducerID    string `yaml:"producer_id"`
	WebID         string `yaml:"web_id"`
	ConsoleID     string `yaml:"console_id"`
	PositionTopic string `yaml:"position_topic"`
}

type NMEAConfig struct {
	// Sentence is the 3-character tag to decode.
	Sentence string `yaml:"sentence"`
	// RateHz is how often the receive buffer is drained and decoded.
	RateHz int `yaml:"rate_hz"`
	// Configure sends the PMTK setup commands on startup.
	Configure bool `yaml:"configure"`
}

type WebConfig struct {
	Addr string `yaml:"addr"`
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.Source.Kind == "" {
		cfg.Source.Kind = "serial"
	}
	if cfg.Source.Kind != "serial" && cfg.Source.Kind != "i2c" {
		return Config{}, fmt.Errorf("source.kind must be \"serial\" or \"i2c\", got %q", cfg.Source.Kind)
	}
	if cfg.Source.Serial.Port == "" {
		cfg.Source.Serial.Port = "/dev/serial0"
	}
	if cfg.Source.Serial.Baud == 0 {
		cfg.Source.Serial.Baud = 9600
	}
	if cfg.Source.I2C.Addr == 0 {
		cfg.Source.I2C.Addr = 0x10
	}

	if cfg.MQTT.Broker == "" {
		cfg.MQTT.Broker = "tcp://localhost:1883"
	}
	if cfg.MQTT.ProducerID == "" {
		cfg.MQTT.ProducerID = "gpsnode-producer"
	}
	if cfg.MQTT.WebID == "" {
		cfg.MQTT.WebID = "gpsnode-web"
	}
	if cfg.MQTT.ConsoleID == "" {
		cfg.MQTT.ConsoleID = "gpsnode-console"
	}
	if cfg.MQTT.PositionTopic == "" {
		cfg.MQTT.PositionTopic = "rover/gps/position"
	}

	if cfg.NMEA.Sentence == "" {
		cfg.NMEA.Sentence = "RMC"
	}
	if len(cfg.NMEA.Sentence) != 3 {
		return Config{}, fmt.Errorf("nmea.sentence must be a 3-character tag, got %q", cfg.NMEA.Sentence)
	}
	if cfg.NMEA.RateHz == 0 {
		cfg.NMEA.RateHz = 10
	}
	if cfg.NMEA.RateHz < 0 {
		return Config{}, fmt.Errorf("nmea.rate_hz must be positive, got %d", cfg.NMEA.RateHz)
	}

	if cfg.Web.Addr == "" {
		cfg.Web.Addr = ":8080"
	}

	return cfg, nil
}
