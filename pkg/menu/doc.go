// Package menu defines the serialization format handed to renderers.
//
// A [Menu] is everything needed to draw one substitution menu: the centre
// chord, every positioned node, and a connector edge from the centre to each
// node. Renderers need no further computation.
//
// The format is JSON and round-trips: Marshal → Unmarshal produces an equal
// value, which is what lets the pipeline cache menus and serve them over
// HTTP unchanged.
//
//	data, err := menu.Marshal(m)
//	...
//	m, err := menu.Unmarshal(data)
package menu
