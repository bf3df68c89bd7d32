package bezier

// Node is a time/value anchor of a curve. The in and out handles are offsets
// relative to the node.
type Node struct {
	Time     float64
	Value    float64
	InTime   float64
	InValue  float64
	OutTime  float64
	OutValue float64
}

// Ease evaluates the segment between n0 and n1 at time, using n0's out handle
// and n1's in handle.
func Ease(n0, n1 Node, time float64) float64 {
	return Solve(
		ControlPoints{
			P0: n0.Time,
			P1: n0.Time + n0.OutTime,
			P2: n1.Time + n1.InTime,
			P3: n1.Time,
		},
		ControlPoints{
			P0: n0.Value,
			P1: n0.Value + n0.OutValue,
			P2: n1.Value + n1.InValue,
			P3: n1.Value,
		},
		time,
	)
}
