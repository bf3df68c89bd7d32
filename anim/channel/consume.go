package channel

// Update is one pending item update produced by Consume. Nothing changes on
// the channel until Fire is called.
type Update struct {
	// Time is when the update takes effect: the item start plus its elapsed
	// time, which is capped at the item length.
	Time float64

	ch       *Channel
	item     Item
	query    float64
	elapsed  float64
	progress float64
	init     bool
	uninit   bool
}

// Consume advances the channel to time and appends one Update for every item
// active at that time to dst. time must not be less than the time of the
// previous call unless Reset was called in between.
//
// An item whose end has been reached yields a completing update (progress 1,
// Uninit set) and, if it is the head, moves the head past it, so later calls
// never see it again.
func (c *Channel) Consume(time float64, dst []Update) []Update {
	prev := c.time

	for i := c.head; i < len(c.items); i++ {
		it := c.items[i]

		elapsed := time - it.Time
		if elapsed < 0 {
			break
		}

		u := Update{
			ch:    c,
			item:  it,
			query: time,
			init:  prev < it.Time,
		}

		if it.Length <= elapsed {
			elapsed = it.Length
			u.progress = 1
			u.uninit = true
			if i == c.head {
				c.head++
			}
		} else if it.Length != 0 {
			u.progress = elapsed / it.Length
		} else {
			u.progress = 1
		}

		u.elapsed = elapsed
		u.Time = it.Time + elapsed
		dst = append(dst, u)
	}

	c.time = time

	return dst
}

// Fire applies the update: the channel value becomes the item value at the
// update's elapsed time and every subscriber is notified.
func (u Update) Fire() {
	ev := u.Event()
	u.ch.value = ev.Value

	for _, l := range u.ch.listeners {
		l.fn(ev)
	}
}

// Event returns the event Fire would deliver, without applying it. It
// describes the item as it was when Consume produced the update, even if the
// channel's items have changed since.
func (u Update) Event() Event {
	it := u.item
	return Event{
		Time:     u.query,
		Elapsed:  u.elapsed,
		Begin:    it.Time,
		End:      it.End(),
		Length:   it.Length,
		Value:    it.ValueAt(u.elapsed),
		Progress: u.progress,
		Init:     u.init,
		Uninit:   u.uninit,
	}
}
