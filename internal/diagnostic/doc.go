// Package diagnostic provides the error kinds, warnings, and run summary of
// the wrapper pass.
//
// Key capabilities:
//   - ConfigurationError for bad control files, annotations, and options
//   - PlacementError when a unique class name cannot be found
//   - InvariantError for internal state-machine violations
//   - Summary counters and the summary file writer
package diagnostic
