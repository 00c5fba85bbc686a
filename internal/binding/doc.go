// Package binding is a small XML binder driven by a class model.
//
// It reads a document into an Instance tree following the classes of the
// model and writes the tree back. Wrapper references are inline: the wrapper
// instance consumes its children from the element of the owner, so a document
// reads and writes the same before and after the wrapper pass.
package binding
