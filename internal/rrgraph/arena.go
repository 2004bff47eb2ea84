package rrgraph

import (
	"fmt"

	"github.com/vk/tilegen/internal/fabricerr"
	"github.com/vk/tilegen/internal/rrnode"
)

// Arena is node storage with a capacity fixed at creation.
type Arena struct {
	nodes  []rrnode.Node
	fanout [][]rrnode.ID
	edges  int
}

// NewArena allocates storage for exactly capacity nodes.
func NewArena(capacity int) *Arena {
	return &Arena{
		nodes:  make([]rrnode.Node, 0, capacity),
		fanout: make([][]rrnode.ID, 0, capacity),
	}
}

// Len is the number of populated nodes.
func (a *Arena) Len() int { return len(a.nodes) }

// Cap is the capacity fixed at creation.
func (a *Arena) Cap() int { return cap(a.nodes) }

// NumEdges is the number of edges added so far.
func (a *Arena) NumEdges() int { return a.edges }

// Add stores n and returns its id. Adding past capacity is an invariant
// violation: the census under-predicted.
func (a *Arena) Add(n rrnode.Node) (rrnode.ID, error) {
	if len(a.nodes) == cap(a.nodes) {
		return 0, fabricerr.Invariant("rrgraph.Arena.Add", n.String(), "node storage is full at %d nodes", cap(a.nodes))
	}
	a.nodes = append(a.nodes, n)
	a.fanout = append(a.fanout, nil)
	return rrnode.ID(len(a.nodes) - 1), nil
}

func (a *Arena) check(op string, id rrnode.ID) error {
	if id < 0 || int(id) >= len(a.nodes) {
		return fabricerr.Bounds(op, fmt.Sprint(int(id)), "graph has %d nodes", len(a.nodes))
	}
	return nil
}

// Node returns a copy of the node with the given id.
func (a *Arena) Node(id rrnode.ID) (rrnode.Node, error) {
	if err := a.check("rrgraph.Arena.Node", id); err != nil {
		return rrnode.Node{}, err
	}
	return a.nodes[id], nil
}

// AddEdge records a possible signal path from one node to another.
func (a *Arena) AddEdge(from, to rrnode.ID) error {
	if err := a.check("rrgraph.Arena.AddEdge", from); err != nil {
		return err
	}
	if err := a.check("rrgraph.Arena.AddEdge", to); err != nil {
		return err
	}
	a.fanout[from] = append(a.fanout[from], to)
	a.edges++
	return nil
}

// Fanout returns a copy of the nodes driven by id.
func (a *Arena) Fanout(id rrnode.ID) ([]rrnode.ID, error) {
	if err := a.check("rrgraph.Arena.Fanout", id); err != nil {
		return nil, err
	}
	out := make([]rrnode.ID, len(a.fanout[id]))
	copy(out, a.fanout[id])
	return out, nil
}

// CountByType tallies the populated nodes per category.
func (a *Arena) CountByType() rrnode.Counts {
	var c rrnode.Counts
	for _, n := range a.nodes {
		c[n.Type]++
	}
	return c
}
