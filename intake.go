/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"

	"github.com/Seednode/mancala/games/mancala"
)

type nameStatus int

const (
	nameIncomplete nameStatus = iota
	nameDisconnected
	nameInvalid
	nameAccepted
)

func (s nameStatus) String() string {
	switch s {
	case nameIncomplete:
		return "incomplete"
	case nameDisconnected:
		return "disconnected"
	case nameInvalid:
		return "invalid"
	case nameAccepted:
		return "accepted"
	default:
		return "unknown"
	}
}

// nameResult is the outcome of feeding bytes to a pending player.
// reason is set when status is nameInvalid.
type nameResult struct {
	status nameStatus
	name   string
	reason error
}

// pendingPlayer is a connection that has not yet chosen a usable name.
type pendingPlayer struct {
	id  connID
	buf [mancala.MaxName + 1]byte
	n   int
}

func newPendingPlayer(id connID) *pendingPlayer {
	return &pendingPlayer{id: id}
}

func (p *pendingPlayer) reset() {
	p.n = 0
}

// submit appends data to the name buffer and checks the whole buffer for
// a terminated name. Empty data means the peer closed the connection.
func (p *pendingPlayer) submit(data []byte, taken func(string) bool) nameResult {
	if len(data) == 0 {
		return nameResult{status: nameDisconnected}
	}

	p.n += copy(p.buf[p.n:], data)

	end := bytes.IndexAny(p.buf[:p.n], "\r\n")
	if end < 0 {
		if p.n >= len(p.buf) {
			return nameResult{status: nameDisconnected}
		}
		return nameResult{status: nameIncomplete}
	}

	name := string(p.buf[:end])
	p.reset()

	switch {
	case name == "":
		return nameResult{status: nameInvalid, reason: mancala.ErrEmptyName}
	case taken(name):
		return nameResult{status: nameInvalid, name: name, reason: mancala.ErrNameTaken}
	}

	return nameResult{status: nameAccepted, name: name}
}
