// Package history holds Record, the immutable fact emitted when a work order
// leaves a stage. Records are append-only; they are never edited after the
// transition that produced them.
package history
