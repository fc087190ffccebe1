/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"strings"

	"github.com/Seednode/mancala/games/mancala"
)

// send writes msg to a single connection. A failed write drops it.
func (h *Hub) send(id connID, msg string) {
	if h.droppedSet[id] {
		return
	}

	peer, ok := h.reg.peers[id]
	if !ok {
		return
	}

	if err := peer.Send(msg); err != nil {
		h.drop(id, err)
	}
}

// broadcast writes msg to every seated player except exclude. Messages
// for the whole room are echoed to spectators.
func (h *Hub) broadcast(msg string, exclude connID) {
	for _, p := range h.board.Players() {
		id := connID(p.ID)
		if id == exclude {
			continue
		}
		if _, ok := h.reg.active[id]; !ok {
			continue
		}

		h.send(id, msg)
	}

	if exclude == noConn {
		h.spectators.notice(msg)
	}
}

func boardLine(p mancala.Player) string {
	var b strings.Builder

	b.WriteString(p.Name)
	b.WriteString(":  ")
	for i, n := range p.Pits {
		fmt.Fprintf(&b, "[%d]%d ", i, n)
	}
	fmt.Fprintf(&b, "[end pit]%d\r\n", p.Store)

	return b.String()
}

// displayGameState sends every row of the board to everyone, then tells
// the room whose move it is and prompts that player.
func (h *Hub) displayGameState() {
	for _, p := range h.board.Players() {
		h.broadcast(boardLine(p), noConn)
	}

	h.broadcast("\r\n", noConn)

	turn, ok := h.board.Turn()
	if !ok {
		return
	}

	h.broadcast(fmt.Sprintf("It is %s's move.\r\n", turn.Name), connID(turn.ID))
	h.send(connID(turn.ID), moveMsg)
}
