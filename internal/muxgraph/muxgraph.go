// Package muxgraph models the internal switching network of a multiplexer as
// a directed graph from its inputs to its single output. Every edge is a
// pass gate controlled by one configuration-memory bit, possibly through an
// inverter, so the path from an input to the output fixes the value of the
// memory bits along it.
package muxgraph

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/vk/tilegen/internal/circuit"
	"github.com/vk/tilegen/internal/fabricerr"
)

// NodeKind tells the role of a switching-network node.
type NodeKind int

const (
	Input NodeKind = iota
	Internal
	Output
)

// Edge is one pass gate from node From to node To, controlled by memory
// bit MemBit. An inverted edge conducts when its bit is 0.
type Edge struct {
	From     int
	To       int
	MemBit   int
	Inverted bool
}

// Graph is a built switching network. It is never mutated after Build.
type Graph struct {
	kinds   []NodeKind
	edges   []Edge
	fanout  [][]int
	inputs  []int
	outputs []int
	memBits int
}

func (g *Graph) addNode(kind NodeKind) int {
	g.kinds = append(g.kinds, kind)
	g.fanout = append(g.fanout, nil)
	id := len(g.kinds) - 1
	switch kind {
	case Input:
		g.inputs = append(g.inputs, id)
	case Output:
		g.outputs = append(g.outputs, id)
	}
	return id
}

func (g *Graph) addEdge(from, to, bit int, inverted bool) {
	g.edges = append(g.edges, Edge{From: from, To: to, MemBit: bit, Inverted: inverted})
	g.fanout[from] = append(g.fanout[from], len(g.edges)-1)
}

// Build creates the switching network of a numInputs-input multiplexer.
// numLevels is only used by the multi-level structure.
func Build(structure circuit.Structure, numInputs, numLevels int) (*Graph, error) {
	if numInputs < 2 {
		return nil, fabricerr.Config("muxgraph.Build", fmt.Sprint(numInputs), "a multiplexer needs at least 2 inputs")
	}
	g := &Graph{}
	for i := 0; i < numInputs; i++ {
		g.addNode(Input)
	}

	switch structure {
	case circuit.OneLevel:
		g.buildOneLevel()
	case circuit.Tree:
		g.buildTree()
	case circuit.MultiLevel:
		if numLevels < 1 {
			return nil, fabricerr.Config("muxgraph.Build", structure.String(), "num_levels must be positive, got %d", numLevels)
		}
		g.buildMultiLevel(numLevels)
	default:
		return nil, fabricerr.Config("muxgraph.Build", structure.String(), "unsupported mux structure")
	}

	if err := g.Validate(); err != nil {
		return nil, errors.Wrapf(err, "building %s mux with %d inputs", structure, numInputs)
	}
	return g, nil
}

func (g *Graph) buildOneLevel() {
	out := g.addNode(Output)
	for i, in := range g.inputs {
		g.addEdge(in, out, i, false)
	}
	g.memBits = len(g.inputs)
}

// buildTree pairs nodes level by level. Both edges of a pair share the
// level's memory bit; the first conducts on 0, the second on 1.
func (g *Graph) buildTree() {
	current := append([]int(nil), g.inputs...)
	level := 0
	for len(current) > 1 {
		var next []int
		for i := 0; i+1 < len(current); i += 2 {
			n := g.addNode(Internal)
			g.addEdge(current[i], n, level, true)
			g.addEdge(current[i+1], n, level, false)
			next = append(next, n)
		}
		if len(current)%2 == 1 {
			next = append(next, current[len(current)-1])
		}
		current = next
		level++
	}
	g.kinds[current[0]] = Output
	g.outputs = append(g.outputs, current[0])
	g.memBits = level
}

// buildMultiLevel groups nodes by radix at every level with one-hot bits per
// level.
func (g *Graph) buildMultiLevel(levels int) {
	radix := Radix(len(g.inputs), levels)
	current := append([]int(nil), g.inputs...)
	for l := 0; l < levels && len(current) > 1; l++ {
		var next []int
		for start := 0; start < len(current); start += radix {
			group := current[start:min(start+radix, len(current))]
			if len(group) == 1 {
				next = append(next, group[0])
				continue
			}
			n := g.addNode(Internal)
			for j, in := range group {
				g.addEdge(in, n, l*radix+j, false)
			}
			next = append(next, n)
		}
		current = next
	}
	g.kinds[current[0]] = Output
	g.outputs = append(g.outputs, current[0])
	g.memBits = levels * radix
}

// Radix is the smallest r >= 2 with r^levels >= numInputs.
func Radix(numInputs, levels int) int {
	r := 2
	for pow(r, levels) < numInputs {
		r++
	}
	return r
}

func pow(base, exp int) int {
	p := 1
	for i := 0; i < exp; i++ {
		p *= base
		if p < 0 {
			return int(^uint(0) >> 1)
		}
	}
	return p
}

// Inputs is the number of input terminals.
func (g *Graph) Inputs() int { return len(g.inputs) }

// Outputs is the number of output terminals.
func (g *Graph) Outputs() int { return len(g.outputs) }

// NumMemoryBits is the length of every bitstream decoded from the graph.
func (g *Graph) NumMemoryBits() int { return g.memBits }

// Edges returns a copy of the gate list.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// DecodeMemoryBits returns the memory-bit values that route input in to
// output out: every bit starts at 0, then each gate on the path sets its bit
// so that the gate conducts.
func (g *Graph) DecodeMemoryBits(in, out int) ([]bool, error) {
	if in < 0 || in >= len(g.inputs) {
		return nil, fabricerr.Bounds("muxgraph.DecodeMemoryBits", fmt.Sprint(in), "mux has %d inputs", len(g.inputs))
	}
	if out < 0 || out >= len(g.outputs) {
		return nil, fabricerr.Bounds("muxgraph.DecodeMemoryBits", fmt.Sprint(out), "mux has %d outputs", len(g.outputs))
	}

	bits := make([]bool, g.memBits)
	target := g.outputs[out]
	node := g.inputs[in]
	for steps := 0; node != target; steps++ {
		if len(g.fanout[node]) != 1 || steps > len(g.kinds) {
			return nil, fabricerr.Invariant("muxgraph.DecodeMemoryBits", fmt.Sprint(in),
				"no unique path from input to output (node %d has %d gates)", node, len(g.fanout[node]))
		}
		e := g.edges[g.fanout[node][0]]
		bits[e.MemBit] = !e.Inverted
		node = e.To
	}
	return bits, nil
}

// Validate checks that the network is acyclic, has exactly one output, and
// that every input reaches it.
func (g *Graph) Validate() error {
	if len(g.outputs) != 1 {
		return fabricerr.Invariant("muxgraph.Validate", "", "mux graph has %d outputs, want 1", len(g.outputs))
	}

	permanent := make(map[int]bool)
	temporary := make(map[int]bool)
	var visit func(n int) error
	visit = func(n int) error {
		if permanent[n] {
			return nil
		}
		if temporary[n] {
			return fabricerr.Invariant("muxgraph.Validate", fmt.Sprint(n), "cycle in switching network")
		}
		temporary[n] = true
		for _, e := range g.fanout[n] {
			if err := visit(g.edges[e].To); err != nil {
				return err
			}
		}
		delete(temporary, n)
		permanent[n] = true
		return nil
	}
	for n := range g.kinds {
		if err := visit(n); err != nil {
			return err
		}
	}

	for i := range g.inputs {
		if _, err := g.DecodeMemoryBits(i, 0); err != nil {
			return errors.Wrapf(err, "input %d", i)
		}
	}
	return nil
}
