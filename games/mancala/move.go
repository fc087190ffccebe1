/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package mancala

// Move describes an applied move.
type Move struct {
	Mover     ID
	Pit       int
	Sown      int
	ExtraTurn bool
}

// Move sows the pebbles from one of id's pits around the ring.
//
// Pebbles are dropped one per pit into the following pits of the mover's
// row, the mover's store, then the rows of each successor in ring order.
// Stores belonging to anyone but the mover are skipped. When the last
// pebble lands in the mover's store the mover keeps the turn.
func (b *Board) Move(id ID, pit int) (Move, error) {
	mover, ok := b.players[id]
	if !ok {
		return Move{}, ErrUnknownID
	}
	if b.turn != id {
		return Move{}, ErrNotYourTurn
	}
	if pit < 0 || pit >= NPits || mover.Pits[pit] == 0 {
		return Move{}, ErrInvalidMove
	}

	pebbles := mover.Pits[pit]
	mover.Pits[pit] = 0

	m := Move{Mover: id, Pit: pit, Sown: pebbles}

	cur := mover
	i := pit + 1
	for pebbles > 0 {
		// i only reaches NPits while sowing the mover's own row.
		if i == NPits {
			mover.Store++
			pebbles--
			if pebbles == 0 {
				m.ExtraTurn = true
			}
			cur = b.players[b.successor(cur.ID)]
			i = 0
			continue
		}

		cur.Pits[i]++
		pebbles--

		if i == NPits-1 && cur != mover {
			cur = b.players[b.successor(cur.ID)]
			i = 0
		} else {
			i++
		}
	}

	if !m.ExtraTurn {
		b.turn = b.successor(id)
	}

	return m, nil
}
