/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package mancala holds the shared game state for the mancala server:
// the turn ring, every seated player's pits, and the sowing rules.
//
// How to play
// - Each player sits at the table with six pits and one end pit (store)
// - Players take turns in ring order, newest player first
// - A move empties one of your own pits and sows its pebbles one at a time
//   into the following pits, continuing into the next player's row
// - Your own store is sown into, other players' stores are skipped
// - If the last pebble lands in your own store, you move again
// - The game ends as soon as any player's six pits are all empty
package mancala

import (
	"errors"
)

const (
	NPits    = 6  // sowing pits per player, not including the store
	NPebbles = 4  // pebbles per pit for the first player to sit down
	MaxName  = 80 // longest permitted player name, in bytes
)

var (
	ErrEmptyName   = errors.New("name cannot be empty")
	ErrNameTaken   = errors.New("name already taken")
	ErrDuplicateID = errors.New("player id already seated")
	ErrUnknownID   = errors.New("player id not seated")
	ErrNotYourTurn = errors.New("not your move")
	ErrInvalidMove = errors.New("invalid move")
	errCorruptRing = errors.New("turn ring is corrupt")
)

// ID identifies a seated player. The server uses connection handles.
type ID int

// NoPlayer is the empty ring link and the turn holder of an empty board.
const NoPlayer ID = -1

type Player struct {
	ID    ID
	Name  string
	Pits  [NPits]int
	Store int

	next ID
}

// Total is the player's final score: every pit plus the store.
func (p Player) Total() int {
	total := p.Store
	for _, n := range p.Pits {
		total += n
	}
	return total
}

func (p Player) empty() bool {
	for _, n := range p.Pits {
		if n != 0 {
			return false
		}
	}
	return true
}

// Board is the turn ring. Players live in an arena keyed by ID and link to
// their successor by ID; the successor of the last player is the head.
// A Board is not safe for concurrent use.
type Board struct {
	players map[ID]*Player
	head    ID
	turn    ID
}

func NewBoard() *Board {
	return &Board{
		players: make(map[ID]*Player),
		head:    NoPlayer,
		turn:    NoPlayer,
	}
}

func (b *Board) Len() int {
	return len(b.players)
}

// successor returns the ring successor of id, wrapping to the head.
func (b *Board) successor(id ID) ID {
	p, ok := b.players[id]
	if !ok || p.next == NoPlayer {
		return b.head
	}
	return p.next
}

// Successor is the player who moves after id when id does not play again.
func (b *Board) Successor(id ID) ID {
	if _, ok := b.players[id]; !ok {
		return NoPlayer
	}
	return b.successor(id)
}

// NameTaken reports whether a seated player already uses name.
// Comparison is exact and case-sensitive.
func (b *Board) NameTaken(name string) bool {
	for _, p := range b.players {
		if p.Name == name {
			return true
		}
	}
	return false
}

// AveragePebbles is the per-pit pebble count a newcomer receives: the
// ceiling of all sowing-pit pebbles over all seated pits.
func (b *Board) AveragePebbles() int {
	if len(b.players) == 0 {
		return NPebbles
	}

	total := 0
	for _, p := range b.players {
		for _, n := range p.Pits {
			total += n
		}
	}
	if total == 0 {
		return 0
	}

	return (total-1)/(len(b.players)*NPits) + 1
}

// Seat adds a player at the head of the ring. The first player to sit at
// an empty board takes the turn.
func (b *Board) Seat(id ID, name string) (Player, error) {
	if id == NoPlayer {
		return Player{}, ErrUnknownID
	}
	if _, ok := b.players[id]; ok {
		return Player{}, ErrDuplicateID
	}
	if name == "" {
		return Player{}, ErrEmptyName
	}
	if b.NameTaken(name) {
		return Player{}, ErrNameTaken
	}

	p := &Player{
		ID:   id,
		Name: name,
		next: b.head,
	}
	pebbles := b.AveragePebbles()
	for i := range p.Pits {
		p.Pits[i] = pebbles
	}

	b.players[id] = p
	b.head = id
	if p.next == NoPlayer {
		b.turn = id
	}

	return *p, nil
}

// Remove unlinks id from the ring. If it held the turn, the turn passes to
// its successor, or to the head if it was last, or to no one.
func (b *Board) Remove(id ID) error {
	p, ok := b.players[id]
	if !ok {
		return ErrUnknownID
	}

	if b.head == id {
		b.head = p.next
	} else {
		prev := b.head
		for prev != NoPlayer && b.players[prev].next != id {
			prev = b.players[prev].next
		}
		if prev == NoPlayer {
			return errCorruptRing
		}
		b.players[prev].next = p.next
	}
	delete(b.players, id)

	if b.turn == id {
		switch {
		case len(b.players) == 0:
			b.turn = NoPlayer
		case p.next != NoPlayer:
			b.turn = p.next
		default:
			b.turn = b.head
		}
	}

	return nil
}

// Lookup returns a copy of the seated player id.
func (b *Board) Lookup(id ID) (Player, bool) {
	p, ok := b.players[id]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

// Turn returns a copy of the player whose move it is.
func (b *Board) Turn() (Player, bool) {
	return b.Lookup(b.turn)
}

// Players returns copies of every seated player in ring order.
func (b *Board) Players() []Player {
	out := make([]Player, 0, len(b.players))
	for id := b.head; id != NoPlayer; id = b.players[id].next {
		out = append(out, *b.players[id])
	}
	return out
}

// Over reports whether any seated player's pits are all empty. An empty
// board is waiting for players, not finished.
func (b *Board) Over() bool {
	for _, p := range b.players {
		if p.empty() {
			return true
		}
	}
	return false
}
