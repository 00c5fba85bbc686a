// Package model provides the mutable class graph the wrapper pass rewrites.
//
// The graph is host-supplied: a schema compiler front end builds it (or the
// driver loads it from a YAML description with LoadFile) and the pass mutates
// it in place through the operations on Model.
//
// Key types:
//   - ClassID: package + local class name
//   - Class: one generated class, optionally nested in an outer class
//   - Property: one field-like member with multiplicity and content kind
//   - Episode: reusable class references for separate compilation
//
// Every mutation is journaled while a transaction is open (Begin), so a
// failing rewrite can be rolled back without leaving half-linked classes.
package model
