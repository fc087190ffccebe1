/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Seednode/mancala/games/mancala"
	"github.com/google/uuid"
)

const (
	maxMessage = mancala.MaxName + 50

	greetingMsg    = "Welcome to Mancala. What is your name?\r\n"
	wrongTurnMsg   = "It is not your move.\r\n"
	invalidMoveMsg = "Invalid move, please try again.\r\n"
	moveMsg        = "Your move?\r\n"
	emptyNameMsg   = "Your name cannot be empty, please try again.\r\n"
	matchNameMsg   = "Another player has that name, please try again.\r\n"
)

// Peer is the hub's view of one client connection.
type Peer interface {
	Send(msg string) error
	Close() error
}

type tcpPeer struct {
	conn    net.Conn
	timeout time.Duration
}

func (p *tcpPeer) Send(msg string) error {
	if p.timeout > 0 {
		if err := p.conn.SetWriteDeadline(time.Now().Add(p.timeout)); err != nil {
			return err
		}
	}

	_, err := io.WriteString(p.conn, msg)

	return err
}

func (p *tcpPeer) Close() error {
	return p.conn.Close()
}

// Events delivered to the hub. A received event with no data means the
// peer closed its end or the read failed.
type connected struct {
	id   connID
	peer Peer
}

type received struct {
	id   connID
	data []byte
}

type acceptFailed struct {
	err error
}

// gameState is what the operator surface sees of a running game.
type gameState struct {
	ID          string           `json:"id"`
	StartedAt   time.Time        `json:"started_at"`
	Connections int              `json:"connections"`
	Pending     int              `json:"pending"`
	Board       mancala.Snapshot `json:"board"`
}

// Hub owns the registry and the board. Everything that touches either
// runs on the goroutine executing run.
type Hub struct {
	cfg        *Config
	id         string
	inbox      chan any
	quit       chan struct{}
	reg        *registry
	board      *mancala.Board
	spectators *spectators
	startedAt  time.Time

	dropped    []connID
	droppedSet map[connID]bool

	mu       sync.RWMutex
	snapshot gameState
}

func newHub(cfg *Config, specs *spectators) *Hub {
	now := time.Now()
	h := &Hub{
		cfg:        cfg,
		id:         uuid.NewString(),
		inbox:      make(chan any, 256),
		quit:       make(chan struct{}),
		reg:        newRegistry(),
		board:      mancala.NewBoard(),
		spectators: specs,
		startedAt:  now,
		droppedSet: make(map[connID]bool),
	}
	h.publish()

	return h
}

// state returns the most recently published snapshot. Safe for use from
// any goroutine.
func (h *Hub) state() gameState {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.snapshot
}

func (h *Hub) publish() {
	s := gameState{
		ID:          h.id,
		StartedAt:   h.startedAt,
		Connections: h.reg.len(),
		Pending:     len(h.reg.pending),
		Board:       h.board.Snapshot(),
	}

	h.mu.Lock()
	h.snapshot = s
	h.mu.Unlock()

	h.spectators.state(s)
}

// deliver hands an event to the hub, giving up once the hub has stopped.
func (h *Hub) deliver(ev any) bool {
	select {
	case <-h.quit:
		return false
	default:
	}

	select {
	case h.inbox <- ev:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) acceptLoop(l net.Listener) {
	next := connID(0)

	for {
		conn, err := l.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				h.deliver(acceptFailed{err: err})
			}
			return
		}

		id := next
		next++

		if !h.deliver(connected{id: id, peer: &tcpPeer{conn: conn, timeout: h.cfg.writeTimeout}}) {
			_ = conn.Close()
			return
		}

		go h.readPump(id, conn)
	}
}

func (h *Hub) readPump(id connID, conn net.Conn) {
	buf := make([]byte, maxMessage)

	for {
		n, err := conn.Read(buf)
		if n > 0 {
			if !h.deliver(received{id: id, data: bytes.Clone(buf[:n])}) {
				return
			}
		}
		if err != nil {
			h.deliver(received{id: id})
			return
		}
	}
}

// run processes events until the game ends, ctx is cancelled, or accepting
// a connection fails. Every connection still open is closed on return.
func (h *Hub) run(ctx context.Context) error {
	defer close(h.quit)
	defer h.closeAll()

	logf(h.cfg, "GAMES: Started game %s", h.id)

	for {
		select {
		case <-ctx.Done():
			logf(h.cfg, "GAMES: Stopping game %s", h.id)
			return nil
		case ev := <-h.inbox:
			if err := h.handleEvent(ev); err != nil {
				return err
			}
		}

		h.flushDropped()
		h.publish()

		if h.board.Over() {
			h.gameOver()
			return nil
		}
	}
}

func (h *Hub) handleEvent(ev any) error {
	switch e := ev.(type) {
	case connected:
		h.handleConnected(e)
	case received:
		h.handleReceived(e)
	case acceptFailed:
		return fmt.Errorf("accept: %w", e.err)
	}

	return nil
}

func (h *Hub) handleConnected(e connected) {
	if err := h.reg.register(e.id, e.peer); err != nil {
		printLog("ERROR: %v", err)
		_ = e.peer.Close()
		return
	}

	logf(h.cfg, "SERVE: Accepted connection %d", e.id)

	h.send(e.id, greetingMsg)
}

func (h *Hub) handleReceived(e received) {
	if h.droppedSet[e.id] {
		return
	}

	switch h.reg.lookup(e.id) {
	case statePending:
		h.handleName(e)
	case stateActive:
		h.handleInput(e)
	}
}

func (h *Hub) handleName(e received) {
	res := h.reg.pending[e.id].submit(e.data, h.board.NameTaken)

	switch res.status {
	case nameDisconnected:
		h.removeConn(e.id)
	case nameInvalid:
		if errors.Is(res.reason, mancala.ErrEmptyName) {
			h.send(e.id, emptyNameMsg)
		} else {
			h.send(e.id, matchNameMsg)
		}
	case nameAccepted:
		h.promote(e.id, res.name)
	}
}

// promote seats a pending connection whose name was accepted.
func (h *Hub) promote(id connID, name string) {
	h.broadcast(fmt.Sprintf("New player %s has joined.\r\n", name), noConn)

	if _, err := h.board.Seat(mancala.ID(id), name); err != nil {
		if errors.Is(err, mancala.ErrNameTaken) {
			h.send(id, matchNameMsg)
			return
		}

		printLog("ERROR: Seating connection %d: %v", id, err)
		h.removeConn(id)
		return
	}
	h.reg.promote(id, name)

	logf(h.cfg, "GAMES: %q joined %s", name, h.id)

	h.displayGameState()
}

func (h *Hub) handleInput(e received) {
	if len(e.data) == 0 {
		h.removeConn(e.id)
		return
	}

	a := h.reg.active[e.id]
	for _, line := range a.lines(e.data, maxMessage) {
		if line == "" {
			continue
		}
		if h.droppedSet[e.id] || h.board.Over() {
			return
		}

		h.handleMove(a, line)
	}
}

func (h *Hub) handleMove(a *activePlayer, line string) {
	if turn, ok := h.board.Turn(); !ok || turn.ID != mancala.ID(a.id) {
		h.send(a.id, wrongTurnMsg)
		return
	}

	pit, ok := parseMove(line)
	if !ok {
		h.send(a.id, invalidMoveMsg)
		return
	}

	m, err := h.board.Move(mancala.ID(a.id), pit)
	switch {
	case errors.Is(err, mancala.ErrNotYourTurn):
		h.send(a.id, wrongTurnMsg)
		return
	case err != nil:
		h.send(a.id, invalidMoveMsg)
		return
	}

	logf(h.cfg, "GAMES: %q played pit %d (%d pebbles) in %s", a.name, m.Pit, m.Sown, h.id)

	h.broadcast(fmt.Sprintf("%s played on pit %d.\r\n", a.name, m.Pit), noConn)
	h.displayGameState()
}

// parseMove reads the leading base-10 integer of line, allowing leading
// blanks and a sign.
func parseMove(line string) (int, bool) {
	s := strings.TrimLeft(line, " \t")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}

	return n, true
}

// removeConn closes id and forgets it. A seated player leaves the ring and
// the remaining players are told.
func (h *Hub) removeConn(id connID) {
	delete(h.droppedSet, id)

	peer, state := h.reg.forget(id)
	if peer != nil {
		if err := peer.Close(); err != nil {
			logf(h.cfg, "ERROR: Closing connection %d: %v", id, err)
		}
	}

	if state != stateActive {
		logf(h.cfg, "SERVE: Unnamed connection %d disconnected", id)
		return
	}

	p, _ := h.board.Lookup(mancala.ID(id))
	if err := h.board.Remove(mancala.ID(id)); err != nil {
		printLog("ERROR: Removing %q: %v", p.Name, err)
	}

	logf(h.cfg, "GAMES: %q disconnected from %s", p.Name, h.id)

	if h.board.Len() == 0 {
		return
	}

	h.broadcast(fmt.Sprintf("%s has disconnected.\r\n", p.Name), noConn)
	h.displayGameState()
}

// drop marks id for removal once the current event has been handled.
func (h *Hub) drop(id connID, err error) {
	if h.droppedSet[id] {
		return
	}

	logf(h.cfg, "SERVE: Write to connection %d failed: %v", id, err)

	h.droppedSet[id] = true
	h.dropped = append(h.dropped, id)
}

func (h *Hub) flushDropped() {
	for len(h.dropped) > 0 {
		id := h.dropped[0]
		h.dropped = h.dropped[1:]

		if h.droppedSet[id] {
			h.removeConn(id)
		}
	}
	h.dropped = nil
}

func (h *Hub) gameOver() {
	h.broadcast("\r\n", noConn)
	h.broadcast("Game over!\r\n", noConn)

	printLog("GAMES: Game over in %s", h.id)

	for _, p := range h.board.Players() {
		printLog("GAMES: %q has %d points", p.Name, p.Total())
		h.broadcast(fmt.Sprintf("%s has %d points\r\n", p.Name, p.Total()), noConn)
	}
}

func (h *Hub) closeAll() {
	for id, peer := range h.reg.peers {
		_ = peer.Close()
		delete(h.reg.peers, id)
	}
	h.reg.pending = make(map[connID]*pendingPlayer)
	h.reg.active = make(map[connID]*activePlayer)

	h.spectators.closeAll()
}
