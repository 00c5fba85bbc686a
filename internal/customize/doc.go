// Package customize resolves one wrapping directive per candidate property
// from the layered sources of customization:
//
//  1. control file entry for the property path
//  2. in-schema annotation on the property
//  3. in-schema annotation on the owning class
//  4. command-line options
//  5. built-in defaults
//
// Each attribute is looked up independently; the first layer that sets it wins.
// The directive remembers which layer supplied each attribute.
package customize
