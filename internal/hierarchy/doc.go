// Package hierarchy implements the section/item operations of an estimate
// grid as pure functions. Every operation takes the current section sequence
// and returns a freshly allocated replacement; inputs are never mutated, and
// a returned error means the input should be kept as-is.
package hierarchy
