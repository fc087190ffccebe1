/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package mancala

// SeatSnapshot is one row of the board as seen by observers.
type SeatSnapshot struct {
	Name  string `json:"name"`
	Pits  []int  `json:"pits"`
	Store int    `json:"store"`
	Total int    `json:"total"`
}

// Snapshot is a point-in-time copy of the board, safe to hand to other
// goroutines.
type Snapshot struct {
	Players []SeatSnapshot `json:"players"`
	Turn    string         `json:"turn,omitempty"`
	Over    bool           `json:"over"`
}

func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Players: make([]SeatSnapshot, 0, len(b.players)),
		Over:    b.Over(),
	}

	for _, p := range b.Players() {
		s.Players = append(s.Players, SeatSnapshot{
			Name:  p.Name,
			Pits:  append([]int(nil), p.Pits[:]...),
			Store: p.Store,
			Total: p.Total(),
		})
	}

	if t, ok := b.Turn(); ok {
		s.Turn = t.Name
	}

	return s
}
