// Package errsumrules defines the canonical ERS-series rule codes reported by errsum.
//
// Every diagnostic errsum emits names the rule it is about. The codes give each
// failure a stable numeric and textual identity so diagnostics can be grepped,
// filtered in CI logs and referenced from documentation.
//
// # Structure
//
// Rule codes follow the format “ERS<NNN>: <Name>” and are grouped by area:
//
//	000–009  Directive placement and source file shape
//	010–019  Variant naming and type identity
//	020–029  Type resolution
//	030–039  Annotated function shape
//	040–049  Generated output state
//
// Example:
//
//	errsumrules.ERS010NameCollision.String()      → "ERS010: NameCollision"
//	errsumrules.ERS010NameCollision.Description() → "Two error types derive the same variant name."
//
// # Notes
//
//   - Rule identifiers are stable; never renumber existing codes.
//   - New rules take the next free slot of their group.
package errsumrules
