package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/elijahnyp/smarthouse/house"
	"github.com/elijahnyp/smarthouse/provider"
	"github.com/elijahnyp/smarthouse/report"
	. "github.com/elijahnyp/smarthouse/util"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// WebSocketMessage represents a message sent over WebSocket
type WebSocketMessage struct {
	Data interface{} `json:"data"`
	Type string      `json:"type"`
}

type WSClient struct {
	conn *websocket.Conn
	send chan WebSocketMessage
	hub  *WSHub
}

// WSHub keeps the connected clients and fans published reports out to them.
type WSHub struct {
	clients    map[*WSClient]bool
	broadcast  chan WebSocketMessage
	register   chan *WSClient
	unregister chan *WSClient
	quit       chan struct{}
	stopOnce   sync.Once
}

var state *houseState

var wsHub *WSHub

func NewHub() *WSHub {
	return &WSHub{
		clients:    make(map[*WSClient]bool),
		broadcast:  make(chan WebSocketMessage, 16),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
		quit:       make(chan struct{}),
	}
}

// Run serves the hub until Stop is called, then closes every client.
func (h *WSHub) Run() {
	for {
		select {
		case <-h.quit:
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			Logger.Info().Msg("Client connected to WebSocket")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				Logger.Info().Msg("Client disconnected from WebSocket")
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

func (h *WSHub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// BroadcastUpdate drops the update when the hub is backed up.
func (h *WSHub) BroadcastUpdate(messageType string, data interface{}) {
	select {
	case h.broadcast <- WebSocketMessage{Type: messageType, Data: data}:
	default:
		Logger.Debug().Msgf("websocket hub busy, dropping %s update", messageType)
	}
}

func (h *WSHub) BroadcastReport(pr PublishedReport) {
	h.BroadcastUpdate("report", pr)
}

func (c *WSClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.quit:
		}
		if err := c.conn.Close(); err != nil {
			Logger.Debug().Err(err).Msg("Error closing WebSocket connection")
		}
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *WSClient) writePump() {
	defer func() {
		if err := c.conn.Close(); err != nil {
			Logger.Debug().Err(err).Msg("Error closing WebSocket connection")
		}
	}()

	for message := range c.send {
		if err := c.conn.WriteJSON(message); err != nil {
			return
		}
	}
	if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
		Logger.Debug().Err(err).Msg("Error writing close message")
	}
}

func ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := &WSClient{
		conn: conn,
		send: make(chan WebSocketMessage, 256),
		hub:  wsHub,
	}
	select {
	case client.hub.register <- client:
	case <-client.hub.quit:
		if err := conn.Close(); err != nil {
			Logger.Debug().Err(err).Msg("Error closing WebSocket connection")
		}
		return
	}

	go client.writePump()
	go client.readPump()
}

func badMethod(w http.ResponseWriter) {
	w.WriteHeader(http.StatusBadRequest)
	if _, err := io.WriteString(w, "Bad Request Method\n"); err != nil {
		Logger.Error().Msgf("Error writing response: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		Logger.Error().Err(err).Msg("Error encoding response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// requestedProvider returns the provider for an ad-hoc report built from
// repeated room and device query parameters, or the configured provider
// when there are none.
func requestedProvider(r *http.Request, fallback report.InfoProvider) (report.InfoProvider, error) {
	q := r.URL.Query()
	rooms, devices := q["room"], q["device"]
	if len(rooms) == 0 && len(devices) == 0 {
		return fallback, nil
	}
	if len(rooms) != len(devices) {
		return nil, errors.New("room and device parameters must come in pairs")
	}
	entries := make([]report.Entry, 0, len(rooms))
	for i := range rooms {
		entries = append(entries, report.Entry{Room: rooms[i], Device: devices[i]})
	}
	return provider.NewFixed(entries...), nil
}

// ReportHandler serves the text report.
func ReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		badMethod(w)
		return
	}
	h, fallback := state.Snapshot()
	p, err := requestedProvider(r, fallback)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := report.Write(w, h, p); err != nil {
		Logger.Error().Msgf("Error writing report: %v", err)
	}
}

// APIReport serves the resolved report as JSON.
func APIReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		badMethod(w)
		return
	}
	h, fallback := state.Snapshot()
	p, err := requestedProvider(r, fallback)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, NewPublishedReport(report.Resolve(h, p)))
}

// APIHouse serves the whole house tree as JSON.
func APIHouse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		badMethod(w)
		return
	}
	h, _ := state.Snapshot()
	writeJSON(w, DescribeHouse(h))
}

// APIRoom serves one room and its devices.
func APIRoom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		badMethod(w)
		return
	}
	name := r.URL.Query().Get("room")
	if name == "" {
		http.Error(w, "Room name required", http.StatusBadRequest)
		return
	}
	h, _ := state.Snapshot()
	room, err := h.Room(name)
	if errors.Is(err, house.ErrRoomNotFound) {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}
	rc := RoomConfig{Name: room.Name(), Devices: []DeviceConfig{}}
	for _, d := range room.Devices() {
		rc.Devices = append(rc.Devices, DeviceConfig{Name: d.Name(), State: d.State()})
	}
	writeJSON(w, rc)
}

func registerHandlers(monitor *MonitorServer) {
	monitor.AddHandler("/report", ReportHandler)
	monitor.AddHandler("/api/report", APIReport)
	monitor.AddHandler("/api/house", APIHouse)
	monitor.AddHandler("/api/room", APIRoom)
	monitor.AddHandler("/ws", ServeWebSocket)
}
