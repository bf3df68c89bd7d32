package curve

// FxSection is a time-bounded fx pass over a curve. Row only orders sections
// visually in an editor; evaluation follows declaration order.
type FxSection struct {
	Time   float64
	Length float64
	Row    int
	Def    string
	Params map[string]any
	Bypass bool
}

// End returns the time at which the section ends.
func (s FxSection) End() float64 {
	return s.Time + s.Length
}

func cloneSections(in []FxSection) []FxSection {
	if len(in) == 0 {
		return nil
	}
	out := make([]FxSection, len(in))
	copy(out, in)
	return out
}
