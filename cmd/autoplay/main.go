// Command autoplay plays an automaton document and prints channel values.
//
// Usage:
//
//	autoplay [flags] document.json
//
// Every frame advances the timeline with Update, exactly like a realtime
// host would, and prints one row with the value of each channel. With
// --render the values are sampled offline instead, without firing events.
//
// Examples:
//
//	autoplay scene.json
//	autoplay --fps 30 --duration 4 --channel camera.x --channel camera.y scene.json
//	autoplay --resolution 1000 --render scene.json
//	autoplay --list-fx
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-automaton/anim/automaton"
	"github.com/cwbudde/algo-automaton/anim/channel"
)

var errUsage = errors.New("usage")

type options struct {
	fps        float64
	duration   float64
	resolution int
	channels   []string
	dump       bool
	render     bool
	listFx     bool
	verbose    bool
}

func main() {
	logger := log.New(os.Stderr, "autoplay: ", 0)

	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if errors.Is(err, errUsage) {
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var opts options

	fs := pflag.NewFlagSet("autoplay", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64VarP(&opts.fps, "fps", "f", 60, "frames per second")
	fs.Float64VarP(&opts.duration, "duration", "d", 0, "seconds to play (0 plays until the last item ends)")
	fs.IntVarP(&opts.resolution, "resolution", "r", 0, "override the document curve resolution")
	fs.StringSliceVarP(&opts.channels, "channel", "c", nil, "channel to print, repeatable (default all)")
	fs.BoolVar(&opts.dump, "dump", false, "dump the decoded document to stderr")
	fs.BoolVar(&opts.render, "render", false, "sample channels offline instead of playing them")
	fs.BoolVar(&opts.listFx, "list-fx", false, "list the built-in fx definitions and exit")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log curve diagnostics to stderr")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: autoplay [flags] document.json\n\n")
		fmt.Fprintf(stderr, "Plays an automaton document and prints channel values per frame.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if opts.listFx {
		a, err := automaton.New()
		if err != nil {
			return err
		}
		return printFx(stdout, a)
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}
	if !(opts.fps > 0) || math.IsInf(opts.fps, 0) {
		return fmt.Errorf("fps must be > 0 and finite: %g", opts.fps)
	}

	a, err := load(fs.Arg(0), opts, stderr)
	if err != nil {
		return err
	}

	if opts.dump {
		spew.Fdump(stderr, a.Data())
	}

	for i, c := range a.Curves() {
		for _, s := range c.Statuses() {
			fmt.Fprintf(stderr, "warning: curve %d: %s\n", i, s)
		}
	}

	names, err := selectChannels(a, opts.channels)
	if err != nil {
		return err
	}

	duration := opts.duration
	if duration <= 0 {
		duration = timelineLength(a)
	}

	if opts.render {
		return printRendered(stdout, a, names, duration, opts.fps)
	}
	return printPlayback(stdout, a, names, duration, opts.fps)
}

func load(path string, opts options, stderr io.Writer) (*automaton.Automaton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var aopts []automaton.Option
	if opts.resolution > 0 {
		aopts = append(aopts, automaton.WithResolution(opts.resolution))
	}
	if opts.verbose {
		h := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		aopts = append(aopts, automaton.WithLogger(slog.New(h)))
	}

	a, err := automaton.Load(f, aopts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

func selectChannels(a *automaton.Automaton, wanted []string) ([]string, error) {
	if len(wanted) == 0 {
		return a.ChannelNames(), nil
	}
	for _, name := range wanted {
		if _, err := a.Channel(name); err != nil {
			return nil, err
		}
	}
	return wanted, nil
}

// timelineLength returns the end of the last item over all channels.
func timelineLength(a *automaton.Automaton) float64 {
	end := 0.0
	for _, name := range a.ChannelNames() {
		ch, _ := a.Channel(name)
		items := ch.Items()
		if len(items) > 0 {
			end = max(end, items[len(items)-1].End())
		}
	}
	return end
}

func frameCount(duration, fps float64) int {
	return int(math.Floor(duration*fps+1e-9)) + 1
}

func printPlayback(w io.Writer, a *automaton.Automaton, names []string, duration, fps float64) error {
	chans := make([]*channel.Channel, len(names))
	for i, name := range names {
		chans[i], _ = a.Channel(name)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeHeader(tw, names)

	row := make([]float64, len(names))
	for frame := range frameCount(duration, fps) {
		t := float64(frame) / fps
		a.Update(t)
		for i, ch := range chans {
			row[i] = ch.Value()
		}
		writeRow(tw, t, row)
	}

	return tw.Flush()
}

func printRendered(w io.Writer, a *automaton.Automaton, names []string, duration, fps float64) error {
	n := frameCount(duration, fps)
	columns := make([][]float64, len(names))
	for i, name := range names {
		ch, _ := a.Channel(name)
		columns[i] = make([]float64, n)
		ch.Render(columns[i], 0, 1/fps)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeHeader(tw, names)

	row := make([]float64, len(names))
	for frame := range n {
		for i := range columns {
			row[i] = columns[i][frame]
		}
		writeRow(tw, float64(frame)/fps, row)
	}

	return tw.Flush()
}

func writeHeader(w io.Writer, names []string) {
	fmt.Fprint(w, "Time")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)
}

func writeRow(w io.Writer, t float64, values []float64) {
	fmt.Fprintf(w, "%.4f", t)
	for _, v := range values {
		fmt.Fprintf(w, "\t%.6f", v)
	}
	fmt.Fprintln(w)
}

func printFx(w io.Writer, a *automaton.Automaton) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tParams\tDescription")

	for _, id := range a.FxDefinitionIDs() {
		def, _ := a.FxDefinition(id)
		keys := make([]string, 0, len(def.Params()))
		for _, p := range def.Params() {
			keys = append(keys, fmt.Sprintf("%s:%s=%g", p.Key, p.Type, p.Default))
		}
		fmt.Fprintf(tw, "%s\t%s\t%v\t%s\n", id, def.Name(), keys, def.Description())
	}

	return tw.Flush()
}
