// Package plan runs the element wrapper pass over a class model.
//
// Pass pipeline:
//  1. Validate the control file against the model (every entry must match)
//  2. Select candidates: repeated, wildcard, mixed, and substitution-head
//     properties, each with its resolved directive
//  3. Synthesize one wrapper class per selected candidate and relink the
//     property through an inline reference
//  4. Resolve placement: keep qualified class names unique
//  5. Commit, or roll the model back on the first error
//
// All configuration errors surface in steps 1-2, before the model changes.
package plan
