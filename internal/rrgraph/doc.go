// Package rrgraph assembles the tileable routing-resource graph.
//
// Assembly runs in a fixed order. The node census is taken first and the
// node storage is allocated once, sized to the census total. Pin nodes and
// channel nodes are then instantiated into that storage, and the populated
// counts are checked category by category against the census. Only a graph
// whose storage is exactly full leaves Build.
//
// After population the assembler resolves the Fc of every pin against the
// channel the pin faces, builds the node lookup and the switch-block peer
// tables, and hands the graph to any registered Connectors. Connectors are
// the external collaborators that wire pins to tracks and tracks to tracks;
// they may add edges but never nodes.
package rrgraph
