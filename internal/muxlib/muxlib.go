package muxlib

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/vk/tilegen/internal/circuit"
	"github.com/vk/tilegen/internal/fabricerr"
	"github.com/vk/tilegen/internal/muxgraph"
)

// Key identifies one library entry.
type Key struct {
	Model string
	Size  int
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%d", k.Model, k.Size)
}

// Builder collects graphs until it is frozen.
type Builder struct {
	graphs map[Key]*muxgraph.Graph
	frozen bool
}

// NewBuilder returns an empty, open Builder.
func NewBuilder() *Builder {
	return &Builder{graphs: make(map[Key]*muxgraph.Graph)}
}

// Add builds the graph of model with implementedSize inputs unless it is
// already present.
func (b *Builder) Add(model circuit.Model, implementedSize int) error {
	key := Key{Model: model.Name, Size: implementedSize}
	if b.frozen {
		return fabricerr.Invariant("muxlib.Builder.Add", key.String(), "library is frozen")
	}
	if _, ok := b.graphs[key]; ok {
		return nil
	}
	g, err := muxgraph.Build(model.Structure, implementedSize, model.NumLevels)
	if err != nil {
		return errors.Wrapf(err, "mux library entry %s", key)
	}
	b.graphs[key] = g
	return nil
}

// Freeze closes the builder and returns the finished library.
func (b *Builder) Freeze() *Library {
	b.frozen = true
	graphs := make(map[Key]*muxgraph.Graph, len(b.graphs))
	for k, g := range b.graphs {
		graphs[k] = g
	}
	return &Library{graphs: graphs}
}

// Library is the immutable, shareable set of built graphs.
type Library struct {
	graphs map[Key]*muxgraph.Graph
}

// Graph returns the graph of model at implementedSize.
func (l *Library) Graph(model string, implementedSize int) (*muxgraph.Graph, error) {
	key := Key{Model: model, Size: implementedSize}
	g, ok := l.graphs[key]
	if !ok {
		return nil, fabricerr.Invariant("muxlib.Library.Graph", key.String(), "no such mux in library")
	}
	return g, nil
}

// Len is the number of entries.
func (l *Library) Len() int { return len(l.graphs) }

// Keys lists every entry, ordered by model then size.
func (l *Library) Keys() []Key {
	keys := make([]Key, 0, len(l.graphs))
	for k := range l.graphs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Model != keys[j].Model {
			return keys[i].Model < keys[j].Model
		}
		return keys[i].Size < keys[j].Size
	})
	return keys
}
