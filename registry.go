/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"fmt"
)

type connID int

const noConn connID = -1

type connState int

const (
	stateUnknown connState = iota
	statePending
	stateActive
)

// activePlayer is the connection side of a seated player. Pits and turn
// order live on the board.
type activePlayer struct {
	id   connID
	name string
	line []byte
}

// lines splits buffered input into complete lines. A partial line stays
// buffered unless it has grown past limit, in which case it is returned
// as-is.
func (a *activePlayer) lines(data []byte, limit int) []string {
	a.line = append(a.line, data...)

	var out []string
	for {
		end := bytes.IndexAny(a.line, "\r\n")
		if end < 0 {
			break
		}
		out = append(out, string(a.line[:end]))
		a.line = a.line[end+1:]
	}

	if len(a.line) > limit {
		out = append(out, string(a.line))
		a.line = nil
	}
	if len(a.line) == 0 {
		a.line = nil
	}

	return out
}

// registry tracks every open connection and which collection owns it.
type registry struct {
	peers   map[connID]Peer
	pending map[connID]*pendingPlayer
	active  map[connID]*activePlayer
}

func newRegistry() *registry {
	return &registry{
		peers:   make(map[connID]Peer),
		pending: make(map[connID]*pendingPlayer),
		active:  make(map[connID]*activePlayer),
	}
}

func (r *registry) register(id connID, peer Peer) error {
	if _, ok := r.peers[id]; ok {
		return fmt.Errorf("connection %d already registered", id)
	}

	r.peers[id] = peer
	r.pending[id] = newPendingPlayer(id)

	return nil
}

func (r *registry) lookup(id connID) connState {
	if _, ok := r.pending[id]; ok {
		return statePending
	}
	if _, ok := r.active[id]; ok {
		return stateActive
	}
	return stateUnknown
}

func (r *registry) promote(id connID, name string) *activePlayer {
	delete(r.pending, id)

	a := &activePlayer{id: id, name: name}
	r.active[id] = a

	return a
}

// forget drops id from every collection and returns its peer, if any.
func (r *registry) forget(id connID) (Peer, connState) {
	state := r.lookup(id)

	peer := r.peers[id]
	delete(r.peers, id)
	delete(r.pending, id)
	delete(r.active, id)

	return peer, state
}

func (r *registry) len() int {
	return len(r.peers)
}
