package channel

// Sampler is the curve an item plays back.
type Sampler interface {
	Sample(time float64) float64
	Length() float64
}

// Item is one timed slot of a channel. With Curve set, the item plays the
// curve starting at Offset, Speed times as fast, scaled by Amp and shifted by
// Value. Otherwise it holds Value. Reset drops the value to 0 once the item
// has ended.
type Item struct {
	Time   float64
	Length float64
	Value  float64
	Reset  bool
	Curve  Sampler
	Offset float64
	Speed  float64
	Amp    float64
}

// ConstantItem returns an item holding value.
func ConstantItem(time, length, value float64) Item {
	return Item{Time: time, Length: length, Value: value, Speed: 1, Amp: 1}
}

// CurveItem returns an item playing c at normal speed and amplitude. The
// item lasts as long as the curve.
func CurveItem(time float64, c Sampler) Item {
	return Item{Time: time, Length: c.Length(), Curve: c, Speed: 1, Amp: 1}
}

// End returns the time at which the item ends.
func (it Item) End() float64 {
	return it.Time + it.Length
}

// ValueAt returns the item value at local time, measured from the item start.
func (it Item) ValueAt(local float64) float64 {
	if it.Reset && it.Length <= local {
		return 0
	}
	if it.Curve != nil {
		return it.Value + it.Amp*it.Curve.Sample(it.curveTime(local))
	}
	return it.Value
}

func (it Item) curveTime(local float64) float64 {
	return it.Offset + local*it.Speed
}
