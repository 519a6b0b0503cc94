// Package crafting holds the pure rules of the crafting box: which recipe is
// active, whether a craft has finished, and how the nine ingredient slots are
// filled and edited. Nothing here reads a clock, keeps state, or talks to the
// game-state owner; callers pass in a snapshot and get values back.
package crafting
