/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Messages sent to spectators
type StateMessage struct {
	Type  string    `json:"type"` // "state"
	State gameState `json:"state"`
}

type NoticeMessage struct {
	Type    string `json:"type"` // "notice"
	Message string `json:"message"`
}

type spectator struct {
	conn *websocket.Conn
	send chan any
}

// spectators fans game updates out to read-only websocket observers.
// A spectator that cannot keep up is disconnected rather than slowing
// the game down.
type spectators struct {
	mu      sync.Mutex
	clients map[*spectator]bool
	last    *StateMessage
	closed  bool
}

func newSpectators() *spectators {
	return &spectators{
		clients: make(map[*spectator]bool),
	}
}

func (s *spectators) register(c *spectator) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	s.clients[c] = true
	if s.last != nil {
		c.send <- *s.last
	}

	return true
}

func (s *spectators) unregister(c *spectator) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}

// fanOutLocked assumes s.mu is already held.
func (s *spectators) fanOutLocked(msg any) {
	for c := range s.clients {
		select {
		case c.send <- msg:
		default:
			delete(s.clients, c)
			close(c.send)
		}
	}
}

func (s *spectators) state(st gameState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := StateMessage{Type: "state", State: st}
	s.last = &msg
	s.fanOutLocked(msg)
}

func (s *spectators) notice(text string) {
	text = strings.TrimRight(text, "\r\n")
	if text == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.fanOutLocked(NoticeMessage{Type: "notice", Message: text})
}

func (s *spectators) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.clients)
}

func (s *spectators) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func serveSpectator(cfg *Config, s *spectators) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		c := &spectator{
			conn: conn,
			send: make(chan any, 64),
		}

		if !s.register(c) {
			_ = conn.Close()
			return
		}

		logf(cfg, "SERVE: Spectator connected from %s", realIP(r))

		go c.writePump()
		c.readPump(s)
	}
}

// readPump only watches for the spectator going away; spectators cannot
// send anything to the game.
func (c *spectator) readPump(s *spectators) {
	defer func() {
		s.unregister(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *spectator) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
