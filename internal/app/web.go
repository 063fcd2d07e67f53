package app

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/novarover/gpsnode/internal/config"
	"github.com/novarover/gpsnode/internal/gps"
)

// RunWeb subscribes to the position topic and serves the latest
// position as JSON plus a websocket stream of updates for the base
// station map.
func RunWeb(cfg config.Config) error {
	var (
		mu           sync.RWMutex
		lastPosition gps.Position
		havePosition bool
	)

	upgrader := websocket.Upgrader{
		// The base station UI is served from another host on the rover
		// LAN.
		CheckOrigin: func(*http.Request) bool { return true },
	}
	var (
		clientsMu sync.Mutex
		clients   = map[*websocket.Conn]struct{}{}
	)

	broadcast := func(payload []byte) {
		clientsMu.Lock()
		defer clientsMu.Unlock()
		for conn := range clients {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(clients, conn)
			}
		}
	}

	// 1) Connect to MQTT broker
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTT.Broker).
		SetClientID(cfg.MQTT.WebID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: connected to MQTT broker at %s", cfg.MQTT.Broker)

	// 2) Subscribe to the position topic and fan updates out
	token := client.Subscribe(cfg.MQTT.PositionTopic, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var p gps.Position
		if err := json.Unmarshal(msg.Payload(), &p); err != nil {
			log.Printf("web: position unmarshal error: %v", err)
			return
		}
		mu.Lock()
		lastPosition = p
		havePosition = true
		mu.Unlock()
		broadcast(msg.Payload())
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: subscribed to %s", cfg.MQTT.PositionTopic)

	// 3) JSON API endpoint: latest position
	http.HandleFunc("/api/position", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !havePosition {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lastPosition); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	// 4) Websocket endpoint: live position stream
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: websocket upgrade error: %v", err)
			return
		}
		clientsMu.Lock()
		clients[conn] = struct{}{}
		clientsMu.Unlock()

		// Drain the connection so close and ping control frames are
		// processed; clients never send data we care about.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					clientsMu.Lock()
					delete(clients, conn)
					clientsMu.Unlock()
					conn.Close()
					return
				}
			}
		}()
	})

	// 5) Static files from ./web as the root
	fs := http.FileServer(http.Dir("web"))
	http.Handle("/", fs)

	log.Printf("web: server listening on %s", cfg.Web.Addr)
	return http.ListenAndServe(cfg.Web.Addr, nil)
}
