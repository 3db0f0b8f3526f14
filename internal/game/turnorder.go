package game

import (
	"math/rand"

	"github.com/bryans04/rps-arena/internal/protocol"
)

// turnOrder is the randomized round-robin sequence of client ids used by
// turn-based play. It is rebuilt only at session start; mid-session
// departures shrink it in place.
type turnOrder struct {
	ids     []int64
	current int64
}

func newTurnOrder(ids []int64) *turnOrder {
	shuffled := make([]int64, len(ids))
	copy(shuffled, ids)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return &turnOrder{ids: shuffled, current: protocol.DefaultClientID}
}

func (t *turnOrder) len() int         { return len(t.ids) }
func (t *turnOrder) currentID() int64 { return t.current }
func (t *turnOrder) hasCurrent() bool { return t.current != protocol.DefaultClientID }

func (t *turnOrder) indexOf(id int64) int {
	for i, v := range t.ids {
		if v == id {
			return i
		}
	}
	return -1
}

// next advances circularly from the current holder and returns the new
// holder. With no holder set, the first entry is chosen.
func (t *turnOrder) next() (int64, error) {
	if len(t.ids) == 0 {
		return protocol.DefaultClientID, ErrNoCurrentPlayer
	}
	idx := 0
	if t.hasCurrent() {
		cur := t.indexOf(t.current)
		if cur < 0 {
			return protocol.DefaultClientID, ErrPlayerNotInOrder
		}
		idx = (cur + 1) % len(t.ids)
	}
	t.current = t.ids[idx]
	return t.current, nil
}

// isLast reports whether the current holder sits at the end of the order,
// which is what decides round end over turn advance.
func (t *turnOrder) isLast() (bool, error) {
	if !t.hasCurrent() {
		return false, ErrNoCurrentPlayer
	}
	idx := t.indexOf(t.current)
	if idx < 0 {
		return false, ErrPlayerNotInOrder
	}
	return idx == len(t.ids)-1, nil
}

// remove drops id from the order. When id holds the turn, the holder is
// rewound to its predecessor so the following next() lands on the correct
// successor.
func (t *turnOrder) remove(id int64) {
	i := t.indexOf(id)
	if i < 0 {
		return
	}
	if t.current == id {
		if len(t.ids) <= 1 {
			t.current = protocol.DefaultClientID
		} else {
			t.current = t.ids[(i-1+len(t.ids))%len(t.ids)]
		}
	}
	t.ids = append(t.ids[:i], t.ids[i+1:]...)
}

func (t *turnOrder) clear() {
	t.ids = nil
	t.current = protocol.DefaultClientID
}
