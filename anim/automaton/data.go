package automaton

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/cwbudde/algo-automaton/anim/bezier"
	"github.com/cwbudde/algo-automaton/anim/channel"
	"github.com/cwbudde/algo-automaton/anim/curve"
)

// DataVersion is written into documents produced by Data.
const DataVersion = "4.0.0"

// ErrInvalidData is returned for documents that cannot be decoded.
var ErrInvalidData = errors.New("automaton: invalid data")

// Data is the serialized form of an automaton.
type Data struct {
	Version    string         `json:"version,omitempty"`
	Resolution int            `json:"resolution"`
	Curves     []CurveData    `json:"curves"`
	Channels   []ChannelEntry `json:"channels"`
}

// CurveData is a serialized curve.
type CurveData struct {
	Nodes []NodeData      `json:"nodes"`
	Fxs   []FxSectionData `json:"fxs,omitempty"`
}

// NodeData is a node as [time, value, inTime, inValue, outTime, outValue].
// Missing trailing fields decode as 0 and trailing zeros are omitted on
// encode.
type NodeData [6]float64

// UnmarshalJSON decodes a node array of up to six numbers.
func (n *NodeData) UnmarshalJSON(b []byte) error {
	var raw []float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) > len(n) {
		return fmt.Errorf("%w: node has %d fields, at most %d allowed", ErrInvalidData, len(raw), len(n))
	}

	*n = NodeData{}
	copy(n[:], raw)

	return nil
}

// MarshalJSON encodes the node, dropping trailing zero handle fields.
func (n NodeData) MarshalJSON() ([]byte, error) {
	end := len(n)
	for end > 2 && n[end-1] == 0 {
		end--
	}
	return json.Marshal(n[:end])
}

// Node converts n to a bezier node.
func (n NodeData) Node() bezier.Node {
	return bezier.Node{
		Time:     n[0],
		Value:    n[1],
		InTime:   n[2],
		InValue:  n[3],
		OutTime:  n[4],
		OutValue: n[5],
	}
}

func nodeData(n bezier.Node) NodeData {
	return NodeData{n.Time, n.Value, n.InTime, n.InValue, n.OutTime, n.OutValue}
}

// FxSectionData is a serialized fx section.
type FxSectionData struct {
	Def    string         `json:"def"`
	Params map[string]any `json:"params,omitempty"`
	Time   float64        `json:"time"`
	Length float64        `json:"length"`
	Row    int            `json:"row,omitempty"`
	Bypass bool           `json:"bypass,omitempty"`
}

// ChannelEntry is a named channel, serialized as a [name, data] pair.
type ChannelEntry struct {
	Name string
	Data ChannelData
}

// UnmarshalJSON decodes a [name, data] pair.
func (e *ChannelEntry) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: channel entry has %d elements, want [name, data]", ErrInvalidData, len(pair))
	}

	if err := json.Unmarshal(pair[0], &e.Name); err != nil {
		return fmt.Errorf("%w: channel name: %w", ErrInvalidData, err)
	}
	return json.Unmarshal(pair[1], &e.Data)
}

// MarshalJSON encodes the entry as a [name, data] pair.
func (e ChannelEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Name, e.Data})
}

// ChannelData is a serialized channel.
type ChannelData struct {
	Items []ItemData `json:"items"`
}

// ItemData is a serialized channel item. Unset Speed and Amp mean 1; unset
// Length means the length of the referenced curve, or 0.
type ItemData struct {
	Time   float64  `json:"time,omitempty"`
	Length *float64 `json:"length,omitempty"`
	Value  float64  `json:"value,omitempty"`
	Offset float64  `json:"offset,omitempty"`
	Speed  *float64 `json:"speed,omitempty"`
	Amp    *float64 `json:"amp,omitempty"`
	Reset  bool     `json:"reset,omitempty"`
	Curve  *int     `json:"curve,omitempty"`
}

// Load decodes a JSON document from r and builds an automaton from it.
func Load(r io.Reader, opts ...Option) (*Automaton, error) {
	var data Data
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	return FromData(data, opts...)
}

// FromData builds an automaton from a decoded document. The document
// resolution applies unless opts set one.
func FromData(data Data, opts ...Option) (*Automaton, error) {
	all := make([]Option, 0, len(opts)+1)
	if data.Resolution > 0 {
		all = append(all, WithResolution(data.Resolution))
	}
	all = append(all, opts...)

	a, err := New(all...)
	if err != nil {
		return nil, err
	}

	for _, cd := range data.Curves {
		nodes := make([]bezier.Node, len(cd.Nodes))
		for i, n := range cd.Nodes {
			nodes[i] = n.Node()
		}

		sections := make([]curve.FxSection, len(cd.Fxs))
		for i, s := range cd.Fxs {
			sections[i] = curve.FxSection{
				Time:   s.Time,
				Length: s.Length,
				Row:    s.Row,
				Def:    s.Def,
				Params: s.Params,
				Bypass: s.Bypass,
			}
		}

		if _, err := a.AddCurve(nodes, sections); err != nil {
			return nil, err
		}
	}

	for _, entry := range data.Channels {
		items := make([]channel.Item, len(entry.Data.Items))
		for i, d := range entry.Data.Items {
			it, err := a.item(d)
			if err != nil {
				return nil, fmt.Errorf("automaton: channel %q item %d: %w", entry.Name, i, err)
			}
			items[i] = it
		}

		if _, err := a.AddChannel(entry.Name, items...); err != nil {
			return nil, err
		}
	}

	a.cfg.logger.Debug("automaton loaded",
		slog.String("version", data.Version),
		slog.Int("resolution", a.cfg.resolution),
		slog.Int("curves", len(a.curves)),
		slog.Int("channels", len(a.channels)),
	)

	return a, nil
}

func (a *Automaton) item(d ItemData) (channel.Item, error) {
	it := channel.Item{
		Time:   d.Time,
		Value:  d.Value,
		Offset: d.Offset,
		Reset:  d.Reset,
		Speed:  1,
		Amp:    1,
	}
	if d.Speed != nil {
		it.Speed = *d.Speed
	}
	if d.Amp != nil {
		it.Amp = *d.Amp
	}

	if d.Curve != nil {
		c, err := a.Curve(*d.Curve)
		if err != nil {
			return channel.Item{}, err
		}
		it.Curve = c
		it.Length = c.Length()
	}
	if d.Length != nil {
		it.Length = *d.Length
	}

	return it, nil
}

// Data serializes the current state. Items whose curve does not belong to
// the automaton are written without a curve reference.
func (a *Automaton) Data() Data {
	data := Data{
		Version:    DataVersion,
		Resolution: a.cfg.resolution,
		Curves:     make([]CurveData, len(a.curves)),
		Channels:   make([]ChannelEntry, len(a.channels)),
	}

	index := make(map[*curve.Curve]int, len(a.curves))
	for i, c := range a.curves {
		index[c] = i

		cd := CurveData{}
		for _, n := range c.Nodes() {
			cd.Nodes = append(cd.Nodes, nodeData(n))
		}
		for _, s := range c.FxSections() {
			cd.Fxs = append(cd.Fxs, FxSectionData{
				Def:    s.Def,
				Params: s.Params,
				Time:   s.Time,
				Length: s.Length,
				Row:    s.Row,
				Bypass: s.Bypass,
			})
		}
		data.Curves[i] = cd
	}

	for i, ch := range a.channels {
		cd := ChannelData{Items: []ItemData{}}
		for _, it := range ch.Items() {
			cd.Items = append(cd.Items, itemData(it, index))
		}
		data.Channels[i] = ChannelEntry{Name: a.names[i], Data: cd}
	}

	return data
}

func itemData(it channel.Item, index map[*curve.Curve]int) ItemData {
	d := ItemData{
		Time:   it.Time,
		Length: ptr(it.Length),
		Value:  it.Value,
		Offset: it.Offset,
		Reset:  it.Reset,
	}
	if it.Speed != 1 {
		d.Speed = ptr(it.Speed)
	}
	if it.Amp != 1 {
		d.Amp = ptr(it.Amp)
	}
	if c, ok := it.Curve.(*curve.Curve); ok {
		if i, owned := index[c]; owned {
			d.Curve = ptr(i)
		}
	}
	return d
}

func ptr[T any](v T) *T {
	return &v
}
