/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package mancala

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seat(t *testing.T, b *Board, id ID, name string) Player {
	t.Helper()
	p, err := b.Seat(id, name)
	require.NoError(t, err)
	return p
}

func pebbles(b *Board) int {
	total := 0
	for _, p := range b.Players() {
		total += p.Total()
	}
	return total
}

func TestSeatFirstPlayerGetsDefaultPebblesAndTurn(t *testing.T) {
	b := NewBoard()
	p := seat(t, b, 1, "alice")

	assert.Equal(t, [NPits]int{4, 4, 4, 4, 4, 4}, p.Pits)
	assert.Equal(t, 0, p.Store)

	turn, ok := b.Turn()
	require.True(t, ok)
	assert.Equal(t, ID(1), turn.ID)
}

func TestSeatPrependsAndKeepsTurn(t *testing.T) {
	b := NewBoard()
	seat(t, b, 1, "alice")
	seat(t, b, 2, "bob")
	seat(t, b, 3, "carol")

	names := []string{}
	for _, p := range b.Players() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"carol", "bob", "alice"}, names)

	turn, _ := b.Turn()
	assert.Equal(t, "alice", turn.Name)

	// alice is last in ring order, so she wraps to the head.
	assert.Equal(t, ID(3), b.Successor(1))
	assert.Equal(t, ID(2), b.Successor(3))
	assert.Equal(t, NoPlayer, b.Successor(42))
}

func TestSeatRejectsEmptyDuplicateAndTakenNames(t *testing.T) {
	b := NewBoard()
	seat(t, b, 1, "alice")

	_, err := b.Seat(2, "")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = b.Seat(2, "alice")
	assert.ErrorIs(t, err, ErrNameTaken)

	_, err = b.Seat(1, "bob")
	assert.ErrorIs(t, err, ErrDuplicateID)

	// Names are case-sensitive.
	_, err = b.Seat(2, "Alice")
	assert.NoError(t, err)

	assert.Equal(t, 2, b.Len())
}

func TestAveragePebbles(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, NPebbles, b.AveragePebbles())

	seat(t, b, 1, "alice")
	// 24 pebbles over 6 pits.
	assert.Equal(t, 4, b.AveragePebbles())

	b.players[1].Pits = [NPits]int{1, 0, 0, 0, 0, 0}
	assert.Equal(t, 1, b.AveragePebbles())

	b.players[1].Pits = [NPits]int{7, 0, 0, 0, 0, 0}
	assert.Equal(t, 2, b.AveragePebbles())

	b.players[1].Pits = [NPits]int{}
	assert.Equal(t, 0, b.AveragePebbles())
}

// Scenario C: a newcomer to a 24-pebble single-player game gets ceil(24/12).
func TestSecondPlayerGetsRoundedUpAverage(t *testing.T) {
	b := NewBoard()
	seat(t, b, 1, "alice")

	// Keep 24 pebbles in the pits but move them around.
	b.players[1].Pits = [NPits]int{10, 0, 3, 5, 5, 1}

	p := seat(t, b, 2, "bob")
	assert.Equal(t, [NPits]int{2, 2, 2, 2, 2, 2}, p.Pits)

	// 24 + 12 over 12 pits.
	assert.Equal(t, 3, b.AveragePebbles())
	b.players[2].Pits[0]++
	assert.Equal(t, 4, b.AveragePebbles())
}

// Scenario A: pit 2 holds four pebbles, the last one lands in the store.
func TestMoveLastPebbleInStoreKeepsTurn(t *testing.T) {
	b := NewBoard()
	seat(t, b, 1, "alice")

	m, err := b.Move(1, 2)
	require.NoError(t, err)
	assert.True(t, m.ExtraTurn)
	assert.Equal(t, 4, m.Sown)

	p, _ := b.Lookup(1)
	assert.Equal(t, [NPits]int{4, 4, 0, 5, 5, 5}, p.Pits)
	assert.Equal(t, 1, p.Store)

	turn, _ := b.Turn()
	assert.Equal(t, ID(1), turn.ID)
}

func TestMovePassesTurnToSuccessor(t *testing.T) {
	b := NewBoard()
	seat(t, b, 1, "alice")
	seat(t, b, 2, "bob")

	m, err := b.Move(1, 0)
	require.NoError(t, err)
	assert.False(t, m.ExtraTurn)

	turn, _ := b.Turn()
	assert.Equal(t, ID(2), turn.ID)
}

// Scenario B: sowing past the mover's store skips the other player's store.
func TestMoveSkipsOtherPlayersStore(t *testing.T) {
	b := NewBoard()
	seat(t, b, 1, "alice")
	seat(t, b, 2, "bob")
	// Ring order is bob, alice. alice holds the turn and bob follows her.

	b.players[1].Pits = [NPits]int{0, 0, 0, 0, 0, 9}
	b.players[2].Pits = [NPits]int{1, 1, 1, 1, 1, 1}
	before := pebbles(b)

	m, err := b.Move(1, 5)
	require.NoError(t, err)
	assert.False(t, m.ExtraTurn)

	alice, _ := b.Lookup(1)
	bob, _ := b.Lookup(2)

	// 1 into alice's store, 6 into bob's pits, bob's store skipped,
	// then 2 back into alice's first pits.
	assert.Equal(t, 1, alice.Store)
	assert.Equal(t, [NPits]int{1, 1, 0, 0, 0, 0}, alice.Pits)
	assert.Equal(t, [NPits]int{2, 2, 2, 2, 2, 2}, bob.Pits)
	assert.Equal(t, 0, bob.Store)

	assert.Equal(t, before, pebbles(b))

	turn, _ := b.Turn()
	assert.Equal(t, ID(2), turn.ID)
}

func TestMoveLapsTheRingIntoOwnStore(t *testing.T) {
	b := NewBoard()
	seat(t, b, 1, "alice")
	seat(t, b, 2, "bob")

	// From pit 5: store, bob's 6 pits, alice's 6 pits, store = 14.
	b.players[1].Pits = [NPits]int{0, 0, 0, 0, 0, 14}

	m, err := b.Move(1, 5)
	require.NoError(t, err)
	assert.True(t, m.ExtraTurn)

	alice, _ := b.Lookup(1)
	bob, _ := b.Lookup(2)
	assert.Equal(t, 2, alice.Store)
	assert.Equal(t, [NPits]int{1, 1, 1, 1, 1, 1}, alice.Pits)
	assert.Equal(t, 0, bob.Store)

	turn, _ := b.Turn()
	assert.Equal(t, ID(1), turn.ID)
}

func TestMoveRejections(t *testing.T) {
	b := NewBoard()
	seat(t, b, 1, "alice")
	seat(t, b, 2, "bob")
	b.players[1].Pits[3] = 0

	before := b.Snapshot()

	_, err := b.Move(2, 0)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	for _, pit := range []int{-1, NPits, 3} {
		_, err = b.Move(1, pit)
		assert.ErrorIs(t, err, ErrInvalidMove, "pit %d", pit)
	}

	_, err = b.Move(7, 0)
	assert.ErrorIs(t, err, ErrUnknownID)

	assert.Equal(t, before, b.Snapshot())
}

func TestMoveConservesPebblesAndNeverFeedsForeignStores(t *testing.T) {
	b := NewBoard()
	seat(t, b, 1, "alice")
	seat(t, b, 2, "bob")
	seat(t, b, 3, "carol")

	for step := 0; step < 200 && !b.Over(); step++ {
		turn, ok := b.Turn()
		require.True(t, ok)

		pit := -1
		for i, n := range turn.Pits {
			if n > 0 {
				pit = (i + step) % NPits
				if turn.Pits[pit] == 0 {
					pit = i
				}
				break
			}
		}
		require.NotEqual(t, -1, pit)

		stores := map[ID]int{}
		for _, p := range b.Players() {
			stores[p.ID] = p.Store
		}
		before := pebbles(b)

		m, err := b.Move(turn.ID, pit)
		require.NoError(t, err)

		assert.Equal(t, before, pebbles(b))
		for _, p := range b.Players() {
			if p.ID != m.Mover {
				assert.Equal(t, stores[p.ID], p.Store, "store of %s changed", p.Name)
			}
			for _, n := range p.Pits {
				assert.GreaterOrEqual(t, n, 0)
			}
		}

		next, _ := b.Turn()
		if m.ExtraTurn {
			assert.Equal(t, m.Mover, next.ID)
		} else {
			assert.Equal(t, b.Successor(m.Mover), next.ID)
		}
	}
}

func TestRemovePassesTurn(t *testing.T) {
	b := NewBoard()
	seat(t, b, 1, "alice")
	seat(t, b, 2, "bob")
	seat(t, b, 3, "carol")
	// Ring: carol(3), bob(2), alice(1). alice holds the turn.

	require.NoError(t, b.Remove(2))
	turn, _ := b.Turn()
	assert.Equal(t, ID(1), turn.ID)

	// alice is last in the ring, so the turn wraps to the head.
	require.NoError(t, b.Remove(1))
	turn, _ = b.Turn()
	assert.Equal(t, ID(3), turn.ID)

	require.NoError(t, b.Remove(3))
	_, ok := b.Turn()
	assert.False(t, ok)
	assert.Equal(t, 0, b.Len())
	assert.False(t, b.Over())

	assert.ErrorIs(t, b.Remove(3), ErrUnknownID)
}

func TestRemoveTurnHolderInMiddle(t *testing.T) {
	b := NewBoard()
	seat(t, b, 1, "alice")
	seat(t, b, 2, "bob")
	seat(t, b, 3, "carol")
	b.turn = 2

	require.NoError(t, b.Remove(2))
	turn, _ := b.Turn()
	assert.Equal(t, ID(1), turn.ID)
	assert.Equal(t, []string{"carol", "alice"}, []string{b.Players()[0].Name, b.Players()[1].Name})
}

func TestOver(t *testing.T) {
	b := NewBoard()
	assert.False(t, b.Over())

	seat(t, b, 1, "alice")
	seat(t, b, 2, "bob")
	assert.False(t, b.Over())

	b.players[2].Pits = [NPits]int{}
	b.players[2].Store = 9
	assert.True(t, b.Over())

	// Whose turn it is does not matter.
	assert.Equal(t, ID(1), b.turn)

	require.NoError(t, b.Remove(2))
	assert.False(t, b.Over())
}

func TestSnapshot(t *testing.T) {
	b := NewBoard()
	seat(t, b, 1, "alice")
	_, err := b.Move(1, 5)
	require.NoError(t, err)

	s := b.Snapshot()
	require.Len(t, s.Players, 1)
	assert.Equal(t, "alice", s.Turn)
	// Store, then around to the start of the only row.
	assert.Equal(t, []int{5, 5, 5, 4, 4, 0}, s.Players[0].Pits)
	assert.Equal(t, 1, s.Players[0].Store)
	assert.Equal(t, 24, s.Players[0].Total)
	assert.False(t, s.Over)
}

func TestLonePlayerCanClearTheirRow(t *testing.T) {
	b := NewBoard()
	seat(t, b, 1, "alice")

	moves := []int{2, 3, 4, 0, 5, 1, 2, 3, 5, 4, 5, 0, 5, 1, 5, 4, 5, 2, 5, 3, 5, 4, 5}
	for i, pit := range moves {
		require.False(t, b.Over(), "over before move %d", i)
		_, err := b.Move(1, pit)
		require.NoError(t, err, "move %d (pit %d)", i, pit)
	}

	assert.True(t, b.Over())
	p, _ := b.Lookup(1)
	assert.Equal(t, 24, p.Store)
	assert.Equal(t, 24, p.Total())
}
