package testutil

import "github.com/cwbudde/algo-automaton/anim/bezier"

// Nodes builds handle-less curve nodes from (time, value) pairs.
func Nodes(points ...[2]float64) []bezier.Node {
	out := make([]bezier.Node, len(points))
	for i, p := range points {
		out[i] = bezier.Node{Time: p[0], Value: p[1]}
	}
	return out
}

// Times returns n query times starting at start, step apart.
func Times(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
