// Package widgets contains dumb render primitives for the signage screens.
//
// Allowed here:
// - stateless drawing/composition helpers (stacks, grids, cards, badge overlay)
//
// Not allowed here:
// - timers, snapshot access, rotation state or screen policy
package widgets
