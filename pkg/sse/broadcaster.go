package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/danghamo/zoo/internal/api/jsonrpcx"
	"github.com/danghamo/zoo/pkg/logger"
)

// Notification methods sent by the stream itself
const (
	MethodConnected = "stream.connected"
	MethodHeartbeat = "stream.heartbeat"
)

// Client is one connected event stream
type Client struct {
	ID         string
	Enclosures []string // empty means every enclosure
	Writer     http.ResponseWriter
	Flusher    http.Flusher
	Done       chan struct{}

	mu        sync.Mutex // serializes writes to this client
	lastSeen  time.Time
	closeOnce sync.Once
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.Done) })
}

// Watches reports whether the client receives events targeted at any of enclosures.
// Untargeted events reach every client.
func (c *Client) Watches(enclosures []string) bool {
	if len(c.Enclosures) == 0 || len(enclosures) == 0 {
		return true
	}
	for _, id := range enclosures {
		if slices.Contains(c.Enclosures, id) {
			return true
		}
	}
	return false
}

type message struct {
	enclosures []string
	data       []byte
}

// Option configures a Broadcaster
type Option func(*Broadcaster)

// WithHeartbeat sets how often idle streams receive a heartbeat
func WithHeartbeat(d time.Duration) Option {
	return func(b *Broadcaster) {
		if d > 0 {
			b.heartbeat = d
		}
	}
}

// WithStaleAfter sets how long a client may go without a successful write before it is dropped
func WithStaleAfter(d time.Duration) Option {
	return func(b *Broadcaster) {
		if d > 0 {
			b.staleAfter = d
		}
	}
}

// Broadcaster fans zoo notifications out to Server-Sent Events clients
type Broadcaster struct {
	logger     *logger.Logger
	heartbeat  time.Duration
	staleAfter time.Duration

	mu      sync.RWMutex
	clients map[string]*Client

	broadcast chan message
	shutdown  chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewBroadcaster creates a broadcaster and starts its delivery loops
func NewBroadcaster(logger *logger.Logger, opts ...Option) *Broadcaster {
	b := &Broadcaster{
		logger:    logger.WithComponent("sse-broadcaster"),
		heartbeat: 30 * time.Second,
		clients:   make(map[string]*Client),
		broadcast: make(chan message, 1000),
		shutdown:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.staleAfter == 0 {
		b.staleAfter = 2 * b.heartbeat
	}

	b.wg.Add(2)
	go b.broadcastLoop()
	go b.cleanupLoop()

	return b
}

// AddClient registers a client
func (b *Broadcaster) AddClient(client *Client) {
	client.lastSeen = time.Now()

	b.mu.Lock()
	b.clients[client.ID] = client
	b.mu.Unlock()

	b.logger.Debug("SSE client connected",
		zap.String("clientId", client.ID),
		zap.Strings("enclosures", client.Enclosures))
}

// RemoveClient unregisters a client and signals its stream to end
func (b *Broadcaster) RemoveClient(clientID string) {
	b.mu.Lock()
	client, exists := b.clients[clientID]
	delete(b.clients, clientID)
	b.mu.Unlock()

	if exists {
		client.close()
		b.logger.Debug("SSE client disconnected", zap.String("clientId", clientID))
	}
}

// BroadcastToAll queues a notification for every client
func (b *Broadcaster) BroadcastToAll(notification jsonrpcx.Notification) {
	b.enqueue(nil, notification)
}

// BroadcastToEnclosures queues a notification for clients watching any of enclosures
func (b *Broadcaster) BroadcastToEnclosures(enclosures []string, notification jsonrpcx.Notification) {
	if len(enclosures) == 0 {
		return
	}
	b.enqueue(enclosures, notification)
}

func (b *Broadcaster) enqueue(enclosures []string, notification jsonrpcx.Notification) {
	data, err := json.Marshal(notification)
	if err != nil {
		b.logger.Error("Failed to marshal JSON-RPC notification", zap.Error(err))
		return
	}

	select {
	case <-b.shutdown:
	case b.broadcast <- message{enclosures: enclosures, data: data}:
	default:
		b.logger.Warn("Broadcast channel full, dropping message",
			zap.String("method", notification.Method))
	}
}

func (b *Broadcaster) broadcastLoop() {
	defer b.wg.Done()

	for {
		select {
		case <-b.shutdown:
			return
		case msg := <-b.broadcast:
			for _, client := range b.snapshot() {
				if !client.Watches(msg.enclosures) {
					continue
				}
				if err := b.sendToClient(client, msg.data); err != nil {
					b.logger.Warn("Failed to send to client",
						zap.String("clientId", client.ID),
						zap.Error(err))
					b.RemoveClient(client.ID)
				}
			}
		}
	}
}

func (b *Broadcaster) snapshot() []*Client {
	b.mu.RLock()
	defer b.mu.RUnlock()
	clients := make([]*Client, 0, len(b.clients))
	for _, c := range b.clients {
		clients = append(clients, c)
	}
	return clients
}

// sendToClient writes one SSE data frame
func (b *Broadcaster) sendToClient(client *Client, data []byte) error {
	client.mu.Lock()
	defer client.mu.Unlock()

	select {
	case <-client.Done:
		return fmt.Errorf("client connection closed")
	default:
	}

	frame := fmt.Sprintf("data: %s\n\n", data)
	n, err := client.Writer.Write([]byte(frame))
	if err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	if n != len(frame) {
		return fmt.Errorf("incomplete write: wrote %d/%d bytes", n, len(frame))
	}

	client.Flusher.Flush()
	client.lastSeen = time.Now()
	return nil
}

func (b *Broadcaster) cleanupLoop() {
	defer b.wg.Done()

	ticker := time.NewTicker(b.staleAfter / 2)
	defer ticker.Stop()

	for {
		select {
		case <-b.shutdown:
			return
		case <-ticker.C:
			b.RemoveStale(time.Now())
		}
	}
}

// RemoveStale drops clients whose last successful write is older than the stale limit
func (b *Broadcaster) RemoveStale(now time.Time) int {
	var stale []string
	for _, client := range b.snapshot() {
		client.mu.Lock()
		idle := now.Sub(client.lastSeen)
		client.mu.Unlock()
		if idle > b.staleAfter {
			stale = append(stale, client.ID)
		}
	}

	for _, id := range stale {
		b.logger.Debug("Removing stale SSE client", zap.String("clientId", id))
		b.RemoveClient(id)
	}
	return len(stale)
}

// ClientCount returns the number of connected clients
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Close stops delivery and ends every open stream. It is safe to call more than once.
func (b *Broadcaster) Close() {
	b.closeOnce.Do(func() {
		close(b.shutdown)
		b.wg.Wait()

		b.mu.Lock()
		for id, client := range b.clients {
			client.close()
			delete(b.clients, id)
		}
		b.mu.Unlock()

		b.logger.Debug("SSE broadcaster shutdown complete")
	})
}

// HandleSSE streams notifications. Clients may narrow the stream with
// one or more enclosure query parameters, e.g. ?enclosure=E0,E1.
func (b *Broadcaster) HandleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		b.logger.Error("SSE: response writer does not support flushing")
		http.Error(w, "Server-Sent Events not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	client := &Client{
		ID:         uuid.NewString(),
		Enclosures: enclosureFilter(r),
		Writer:     w,
		Flusher:    flusher,
		Done:       make(chan struct{}),
	}

	b.AddClient(client)
	defer b.RemoveClient(client.ID)

	if err := b.sendNotification(client, jsonrpcx.NewNotification(MethodConnected, map[string]any{
		"client_id":  client.ID,
		"enclosures": client.Enclosures,
	})); err != nil {
		b.logger.Warn("Failed to send connected message", zap.String("clientId", client.ID), zap.Error(err))
		return
	}

	heartbeat := time.NewTicker(b.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-client.Done:
			return
		case <-r.Context().Done():
			b.logger.Debug("SSE request context cancelled", zap.String("clientId", client.ID))
			return
		case <-b.shutdown:
			return
		case now := <-heartbeat.C:
			n := jsonrpcx.NewNotification(MethodHeartbeat, map[string]string{"timestamp": now.UTC().Format(time.RFC3339)})
			if err := b.sendNotification(client, n); err != nil {
				b.logger.Warn("Failed to send heartbeat",
					zap.String("clientId", client.ID),
					zap.Error(err))
				return
			}
		}
	}
}

func (b *Broadcaster) sendNotification(client *Client, n jsonrpcx.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return b.sendToClient(client, data)
}

func enclosureFilter(r *http.Request) []string {
	var ids []string
	for _, v := range r.URL.Query()["enclosure"] {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" && !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
