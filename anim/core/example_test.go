package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-automaton/anim/core"
)

func ExampleApplyOptions() {
	cfg := core.ApplyOptions(core.WithResolution(60))

	fmt.Printf("resolution=%d samples=%d\n", cfg.Resolution, core.TableLength(cfg.Resolution, 2))

	// Output:
	// resolution=60 samples=121
}
