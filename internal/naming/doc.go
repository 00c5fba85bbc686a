// Package naming derives identifiers for wrapper classes, wrapped fields, and
// wrapper references, and keeps them unique within a scope.
//
// The pipeline for one repeated element:
//  1. Tokenize the element name (CamelCase and separators).
//  2. Capitalize, then pluralize the last token (or append "s"/"List").
//  3. Escape reserved words.
//  4. Claim the result in the target Scope, suffixing on collision.
package naming
