// Package ordering keeps user-defined item order as gap-free, zero-based positions.
package ordering

import (
	"slices"

	"github.com/pkg/errors"
)

// ErrOutOfRange is returned when a move references an index outside the collection.
var ErrOutOfRange = errors.New("position out of range")

// Ranked is satisfied by a pointer to an item that carries its own position.
type Ranked[T any] interface {
	*T
	Key() string
	Rank() int
	SetRank(pos int)
}

// Change is a position update to persist after a reorder.
type Change struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

// Append returns the position of an item added to a collection of n items.
func Append(n int) int {
	return n
}

// Move removes the item at `from` and reinserts it at `to`. `items` is left untouched.
func Move[T any](items []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return nil, ErrOutOfRange
	}
	moved := items[from]
	out := slices.Clone(items)
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, moved), nil
}

// Reorder moves an item then renumbers every item to its new index.
// The returned changes list every item whose position differs from what it carried before.
func Reorder[T any, P Ranked[T]](items []T, from, to int) ([]T, []Change, error) {
	out, err := Move(items, from, to)
	if err != nil {
		return nil, nil, err
	}
	return out, Renumber[T, P](out), nil
}

// Renumber assigns every item its index as position and reports the changed ones.
func Renumber[T any, P Ranked[T]](items []T) []Change {
	var changes []Change
	for i := range items {
		item := P(&items[i])
		if item.Rank() != i {
			item.SetRank(i)
			changes = append(changes, Change{ID: item.Key(), Position: i})
		}
	}
	return changes
}

// IndexOf returns the index of the item identified by `id`, or -1.
func IndexOf[T any, P Ranked[T]](items []T, id string) int {
	for i := range items {
		if P(&items[i]).Key() == id {
			return i
		}
	}
	return -1
}

// Request is a drag-and-drop move expressed with item IDs: `active` is dropped where `over` was.
type Request struct {
	Active string `json:"active" validate:"required"`
	Over   string `json:"over" validate:"required"`
}

// Indexes maps a Request onto the indexes of `items`.
func Indexes[T any, P Ranked[T]](items []T, req Request) (from, to int, err error) {
	from, to = IndexOf[T, P](items, req.Active), IndexOf[T, P](items, req.Over)
	if from < 0 || to < 0 {
		return 0, 0, ErrOutOfRange
	}
	return from, to, nil
}
