package channel

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-automaton/anim/curve"
	"github.com/cwbudde/algo-automaton/internal/testutil"
)

// identity samples as its own time argument.
type identity struct{ length float64 }

func (s identity) Sample(t float64) float64 { return t }
func (s identity) Length() float64          { return s.length }

func mustNew(t *testing.T, items ...Item) *Channel {
	t.Helper()

	c, err := New(items...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestItemValueAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		item  Item
		local float64
		want  float64
	}{
		{name: "constant", item: ConstantItem(0, 2, 0.5), local: 1, want: 0.5},
		{name: "constant past end", item: ConstantItem(0, 2, 0.5), local: 5, want: 0.5},
		{name: "reset past end", item: Item{Length: 2, Value: 0.5, Reset: true}, local: 2, want: 0},
		{name: "reset inside", item: Item{Length: 2, Value: 0.5, Reset: true}, local: 1.9, want: 0.5},
		{
			name:  "curve",
			item:  Item{Length: 4, Value: 1, Curve: identity{4}, Offset: 0.5, Speed: 2, Amp: 3},
			local: 1,
			want:  1 + 3*(0.5+1*2),
		},
		{name: "zero speed", item: Item{Length: 4, Curve: identity{4}, Offset: 0.25, Amp: 1}, local: 3, want: 0.25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			testutil.RequireNearlyEqual(t, "value", tc.item.ValueAt(tc.local), tc.want, 1e-12)
		})
	}
}

func TestCurveItemUsesCurveLength(t *testing.T) {
	t.Parallel()

	it := CurveItem(1, identity{2.5})
	if it.Length != 2.5 || it.End() != 3.5 || it.Speed != 1 || it.Amp != 1 {
		t.Fatalf("unexpected item %+v", it)
	}
}

func TestSingleItemConsumeSequence(t *testing.T) {
	t.Parallel()

	c := mustNew(t, ConstantItem(1, 2, 0.5))

	if got := c.Consume(0, nil); len(got) != 0 {
		t.Fatalf("consume(0) got %d updates, want 0", len(got))
	}

	got := c.Consume(1.5, nil)
	if len(got) != 1 {
		t.Fatalf("consume(1.5) got %d updates, want 1", len(got))
	}
	ev := got[0].Event()
	if ev.Progress != 0.25 || !ev.Init || ev.Uninit {
		t.Fatalf("consume(1.5) event %+v", ev)
	}
	if got[0].Time != 1.5 {
		t.Fatalf("update time got=%g want=1.5", got[0].Time)
	}

	got = c.Consume(3, nil)
	if len(got) != 1 {
		t.Fatalf("consume(3) got %d updates, want 1", len(got))
	}
	ev = got[0].Event()
	if ev.Progress != 1 || !ev.Uninit || ev.Init {
		t.Fatalf("consume(3) event %+v", ev)
	}
	if c.Head() != 1 {
		t.Fatalf("head got=%d want=1", c.Head())
	}

	if got := c.Consume(3, nil); len(got) != 0 {
		t.Fatalf("repeated consume(3) got %d updates, want 0", len(got))
	}
}

func TestCompletionFiresExactlyOnce(t *testing.T) {
	t.Parallel()

	items := []Item{
		ConstantItem(0, 1, 1),
		ConstantItem(1, 0.5, 2),
		ConstantItem(2, 0, 3),
		ConstantItem(2.25, 1, 4),
		ConstantItem(4, 0.1, 5),
	}

	steps := []float64{0.01, 0.1, 0.25, 0.3, 0.7, 1.3}
	for _, step := range steps {
		c := mustNew(t, items...)

		inits := make([]int, len(items))
		uninits := make([]int, len(items))
		c.Subscribe(func(ev Event) {
			for i, it := range items {
				if it.Time == ev.Begin {
					if ev.Init {
						inits[i]++
					}
					if ev.Uninit {
						uninits[i]++
					}
				}
			}
		})

		var buf []Update
		for k := 0; ; k++ {
			tm := float64(k) * step
			buf = c.Consume(tm, buf[:0])
			for _, u := range buf {
				u.Fire()
			}
			if tm > 6 {
				break
			}
		}

		for i := range items {
			if uninits[i] != 1 || inits[i] != 1 {
				t.Fatalf("step=%g item %d: inits=%d uninits=%d, want 1 and 1", step, i, inits[i], uninits[i])
			}
		}
		if c.Head() != len(items) {
			t.Fatalf("step=%g head got=%d want=%d", step, c.Head(), len(items))
		}
	}
}

func TestConsumeOrdersUpdatesByTime(t *testing.T) {
	t.Parallel()

	c := mustNew(t, ConstantItem(0, 1, 1), ConstantItem(1, 1, 2), ConstantItem(2.5, 2, 3))

	got := c.Consume(3, nil)
	want := []float64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %d updates, want %d", len(got), len(want))
	}
	for i, u := range got {
		if u.Time != want[i] {
			t.Fatalf("update %d time got=%g want=%g", i, u.Time, want[i])
		}
	}
	if c.Head() != 2 {
		t.Fatalf("head got=%d want=2", c.Head())
	}
}

func TestConsumeTimeAdvancesBeforeFire(t *testing.T) {
	t.Parallel()

	c := mustNew(t, ConstantItem(0, 1, 7))

	var seen float64
	c.Subscribe(func(Event) { seen = c.Time() })

	updates := c.Consume(0.5, nil)
	if c.Time() != 0.5 {
		t.Fatalf("time got=%g want=0.5", c.Time())
	}
	if c.Value() != 0 {
		t.Fatalf("value changed before Fire: %g", c.Value())
	}

	updates[0].Fire()
	if seen != 0.5 || c.Value() != 7 {
		t.Fatalf("seen=%g value=%g", seen, c.Value())
	}
}

func TestZeroLengthItem(t *testing.T) {
	t.Parallel()

	c := mustNew(t, ConstantItem(1, 0, 4))

	got := c.Consume(1, nil)
	if len(got) != 1 {
		t.Fatalf("got %d updates, want 1", len(got))
	}
	ev := got[0].Event()
	if ev.Progress != 1 || !ev.Init || !ev.Uninit || ev.Value != 4 {
		t.Fatalf("event %+v", ev)
	}
}

func TestResetAllowsSeekingBack(t *testing.T) {
	t.Parallel()

	c := mustNew(t, ConstantItem(1, 2, 0.5))
	for _, u := range c.Consume(3, nil) {
		u.Fire()
	}

	c.Reset()
	if c.Head() != 0 || !math.IsInf(c.Time(), -1) || c.Value() != 0 {
		t.Fatalf("reset state head=%d time=%g value=%g", c.Head(), c.Time(), c.Value())
	}

	got := c.Consume(1.5, nil)
	if len(got) != 1 || !got[0].Event().Init {
		t.Fatalf("after reset got %+v", got)
	}
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	t.Parallel()

	c := mustNew(t, ConstantItem(0, 10, 1))

	var a, b []Event
	unsubA := c.Subscribe(func(ev Event) { a = append(a, ev) })
	c.Subscribe(func(ev Event) { b = append(b, ev) })

	for _, u := range c.Consume(2, nil) {
		u.Fire()
	}
	unsubA()
	for _, u := range c.Consume(4, nil) {
		u.Fire()
	}

	if len(a) != 1 || len(b) != 2 {
		t.Fatalf("events a=%d b=%d, want 1 and 2", len(a), len(b))
	}
	want := Event{Time: 4, Elapsed: 4, Begin: 0, End: 10, Length: 10, Value: 1, Progress: 0.4}
	if b[1] != want {
		t.Fatalf("event got=%+v want=%+v", b[1], want)
	}
}

func TestUnsubscribeDuringFire(t *testing.T) {
	t.Parallel()

	c := mustNew(t, ConstantItem(0, 10, 1))

	calls := 0
	var unsub func()
	unsub = c.Subscribe(func(Event) {
		calls++
		unsub()
	})
	c.Subscribe(func(Event) { calls++ })

	for _, u := range c.Consume(1, nil) {
		u.Fire()
	}
	for _, u := range c.Consume(2, nil) {
		u.Fire()
	}

	if calls != 3 {
		t.Fatalf("calls got=%d want=3", calls)
	}
}

func TestQueuedUpdateKeepsItsItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []Item
	}{
		{name: "later item remains", items: []Item{ConstantItem(1, 1, 7), ConstantItem(5, 1, 9)}},
		{name: "channel emptied", items: []Item{ConstantItem(1, 1, 7)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := mustNew(t, ConstantItem(0, 10, 1))
			b := mustNew(t, tc.items...)

			a.Subscribe(func(Event) {
				if err := b.RemoveItem(0); err != nil {
					t.Errorf("RemoveItem: %v", err)
				}
			})

			var got []Event
			b.Subscribe(func(ev Event) { got = append(got, ev) })

			pending := a.Consume(3, nil)
			pending = b.Consume(3, pending)
			for _, u := range pending {
				u.Fire()
			}

			want := Event{Time: 3, Elapsed: 1, Begin: 1, End: 2, Length: 1, Value: 7, Progress: 1, Init: true, Uninit: true}
			if len(got) != 1 || got[0] != want {
				t.Fatalf("events got=%+v want=[%+v]", got, want)
			}
			if b.Value() != 7 {
				t.Fatalf("value got=%g want=7", b.Value())
			}
			if b.Len() != len(tc.items)-1 {
				t.Fatalf("len got=%d want=%d", b.Len(), len(tc.items)-1)
			}
		})
	}
}

func TestSample(t *testing.T) {
	t.Parallel()

	c := mustNew(t,
		ConstantItem(1, 1, 2),
		Item{Time: 3, Length: 2, Value: 1, Curve: identity{2}, Speed: 1, Amp: 2},
		Item{Time: 6, Length: 1, Value: 9, Reset: true},
	)

	tests := []struct {
		time float64
		want float64
	}{
		{time: -1, want: 0},
		{time: 0.99, want: 0},
		{time: 1, want: 2},
		{time: 1.5, want: 2},
		{time: 2.5, want: 2},
		{time: 3, want: 1},
		{time: 4, want: 1 + 2*1},
		{time: 5.5, want: 1 + 2*2},
		{time: 6.5, want: 9},
		{time: 7, want: 0},
		{time: 100, want: 0},
	}

	for _, tc := range tests {
		testutil.RequireNearlyEqual(t, "sample", c.Sample(tc.time), tc.want, 1e-12)
	}

	if c.Head() != 0 || !math.IsInf(c.Time(), -1) {
		t.Fatal("Sample mutated playback state")
	}
}

func TestSampleEmptyChannel(t *testing.T) {
	t.Parallel()

	c := mustNew(t)
	if got := c.Sample(3); got != 0 {
		t.Fatalf("sample got=%g want=0", got)
	}
	if got := c.Consume(3, nil); len(got) != 0 {
		t.Fatalf("consume got %d updates", len(got))
	}
}

func TestItemValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []Item
		want  error
	}{
		{name: "overlap", items: []Item{ConstantItem(0, 2, 1), ConstantItem(1, 1, 1)}, want: ErrItemsOverlap},
		{name: "negative length", items: []Item{ConstantItem(0, -1, 1)}, want: ErrNegativeLength},
		{name: "nan length", items: []Item{ConstantItem(0, math.NaN(), 1)}, want: ErrNegativeLength},
		{name: "infinite time", items: []Item{ConstantItem(math.Inf(1), 1, 1)}, want: ErrInvalidTime},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tc.items...)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err=%v want %v", err, tc.want)
			}
		})
	}
}

func TestMutationsKeepOrderAndReset(t *testing.T) {
	t.Parallel()

	c := mustNew(t, ConstantItem(2, 1, 2), ConstantItem(0, 1, 1))
	if items := c.Items(); items[0].Time != 0 || items[1].Time != 2 {
		t.Fatalf("items not sorted: %+v", items)
	}

	for _, u := range c.Consume(5, nil) {
		u.Fire()
	}

	if err := c.AddItem(ConstantItem(1, 1, 3)); err != nil {
		t.Fatalf("AddItem touching neighbours: %v", err)
	}
	if c.Head() != 0 || c.Value() != 0 || !math.IsInf(c.Time(), -1) {
		t.Fatal("AddItem did not reset")
	}
	if items := c.Items(); items[1].Value != 3 || c.Len() != 3 {
		t.Fatalf("items after add: %+v", items)
	}

	if err := c.AddItem(ConstantItem(0.5, 1, 4)); !errors.Is(err, ErrItemsOverlap) {
		t.Fatalf("overlapping AddItem err=%v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("failed AddItem changed items: %d", c.Len())
	}

	if err := c.RemoveItem(3); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("RemoveItem(3) err=%v", err)
	}
	if err := c.RemoveItem(0); err != nil {
		t.Fatalf("RemoveItem(0): %v", err)
	}
	if items := c.Items(); len(items) != 2 || items[0].Time != 1 {
		t.Fatalf("items after remove: %+v", items)
	}
}

func TestRenderMatchesSample(t *testing.T) {
	t.Parallel()

	cv, err := curve.New(testutil.Nodes([2]float64{0, 0}, [2]float64{0.5, 1}, [2]float64{1, 0.25}), nil, nil)
	if err != nil {
		t.Fatalf("curve.New: %v", err)
	}

	c := mustNew(t,
		ConstantItem(0.2, 0.3, -1),
		Item{Time: 0.5, Length: 1, Value: 0.5, Curve: cv, Speed: 1, Amp: 2},
		Item{Time: 2, Length: 0.4, Curve: cv, Offset: 0.25, Speed: 0.5, Amp: -1, Reset: true},
	)

	times := testutil.Times(-0.1, 0.013, 230)
	got := make([]float64, len(times))
	c.Render(got, times[0], 0.013)

	want := make([]float64, len(times))
	for i, tm := range times {
		want[i] = c.Sample(tm)
	}

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}
