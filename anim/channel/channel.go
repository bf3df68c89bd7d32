package channel

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
)

var (
	// ErrItemsOverlap is returned when an item starts before the previous one ends.
	ErrItemsOverlap = errors.New("channel: items overlap")
	// ErrNegativeLength is returned for an item with a negative or NaN length.
	ErrNegativeLength = errors.New("channel: item length must be non-negative")
	// ErrInvalidTime is returned for an item with a non-finite start time.
	ErrInvalidTime = errors.New("channel: item time must be finite")
	// ErrItemNotFound is returned for an item index out of range.
	ErrItemNotFound = errors.New("channel: item not found")
)

// Event is what subscribers receive when an update fires.
type Event struct {
	// Time is the clock value passed to Consume.
	Time     float64
	Elapsed  float64
	Begin    float64
	End      float64
	Length   float64
	Value    float64
	Progress float64
	// Init is set on the first update that observes the item active.
	Init bool
	// Uninit is set on the update that completes the item.
	Uninit bool
}

type listener struct {
	id int
	fn func(Event)
}

// Channel is an ordered, non-overlapping sequence of items.
type Channel struct {
	items []Item
	head  int
	time  float64
	value float64

	listeners []listener
	nextID    int

	scratch []float64
}

// New returns a channel holding items, sorted by time.
func New(items ...Item) (*Channel, error) {
	c := &Channel{}
	c.Reset()

	if err := c.SetItems(items); err != nil {
		return nil, err
	}

	return c, nil
}

// SetItems replaces all items. The channel is reset.
func (c *Channel) SetItems(items []Item) error {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Item) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		default:
			return 0
		}
	})

	if err := validateItems(sorted); err != nil {
		return err
	}

	c.items = sorted
	c.Reset()

	return nil
}

// AddItem inserts item at its place in time. The channel is reset.
func (c *Channel) AddItem(item Item) error {
	at := sort.Search(len(c.items), func(i int) bool {
		return c.items[i].Time > item.Time
	})

	items := slices.Insert(slices.Clone(c.items), at, item)
	if err := validateItems(items); err != nil {
		return err
	}

	c.items = items
	c.Reset()

	return nil
}

// RemoveItem deletes the item at index. The channel is reset.
func (c *Channel) RemoveItem(index int) error {
	if index < 0 || index >= len(c.items) {
		return fmt.Errorf("%w: index %d of %d", ErrItemNotFound, index, len(c.items))
	}

	c.items = slices.Delete(c.items, index, index+1)
	c.Reset()

	return nil
}

// Items returns a copy of the items in time order.
func (c *Channel) Items() []Item {
	return slices.Clone(c.items)
}

// Len returns the number of items.
func (c *Channel) Len() int {
	return len(c.items)
}

// Reset forgets playback progress. Call it before seeking backward.
func (c *Channel) Reset() {
	c.time = math.Inf(-1)
	c.value = 0
	c.head = 0
}

// Value returns the value set by the last fired update.
func (c *Channel) Value() float64 {
	return c.value
}

// Time returns the clock value of the last Consume.
func (c *Channel) Time() float64 {
	return c.time
}

// Head returns the index of the first item not known to have ended.
func (c *Channel) Head() int {
	return c.head
}

// Sample returns the channel value at time without touching playback state.
// Before the first item it is 0; in a gap or past the end it holds the
// previous item's final value.
func (c *Channel) Sample(time float64) float64 {
	i := c.itemAt(time)
	if i < 0 {
		return 0
	}

	it := c.items[i]
	if it.End() < time {
		return it.ValueAt(it.Length)
	}
	return it.ValueAt(time - it.Time)
}

// itemAt returns the index of the last item starting at or before time, or
// -1 when time precedes every item.
func (c *Channel) itemAt(time float64) int {
	next := sort.Search(len(c.items), func(i int) bool {
		return c.items[i].Time > time
	})
	return next - 1
}

// Subscribe registers fn to be called on every fired update. The returned
// function removes it again.
func (c *Channel) Subscribe(fn func(Event)) func() {
	id := c.nextID
	c.nextID++
	c.listeners = append(c.listeners, listener{id: id, fn: fn})

	return func() {
		// Copy so a Fire in progress keeps iterating the old list.
		c.listeners = slices.DeleteFunc(slices.Clone(c.listeners), func(l listener) bool {
			return l.id == id
		})
	}
}

func validateItems(items []Item) error {
	for i, it := range items {
		if math.IsNaN(it.Time) || math.IsInf(it.Time, 0) {
			return fmt.Errorf("%w: item %d at %g", ErrInvalidTime, i, it.Time)
		}
		if !(it.Length >= 0) {
			return fmt.Errorf("%w: item %d has length %g", ErrNegativeLength, i, it.Length)
		}
		if i > 0 && items[i-1].End() > it.Time {
			return fmt.Errorf("%w: item %d ends at %g, item %d starts at %g",
				ErrItemsOverlap, i-1, items[i-1].End(), i, it.Time)
		}
	}
	return nil
}
