// Package errsumrules defines the canonical rule codes (ERS-series) reported by errsum.
// Each rule represents a distinct reason for refusing to synthesize an aggregate error.
//
// Rule numbering scheme:
//
//	000–009  Directive placement and source file shape
//	010–019  Variant naming and type identity
//	020–029  Type resolution
//	030–039  Annotated function shape
//	040–049  Generated output state
package errsumrules

import "fmt"

// Rule represents an errsum rule code (ERS-series).
type Rule int

const (
	ruleInvalid Rule = iota

	ERS000DirectiveNotOnFunction
	ERS001EmptySources
	ERS002MalformedReference
	ERS003DuplicateDirective
	ERS004InactiveDirective
	ERS005DisjunctiveConstraint
	ERS010NameCollision
	ERS011IdenticalTypes
	ERS012AggregateRedeclared
	ERS013ShadowedVariant
	ERS020UnresolvedReference
	ERS021NotAnErrorType
	ERS030MissingBody
	ERS031ErrorAlreadyDeclared
	ERS032ReservedFunction
	ERS040StaleOutput
)

// String returns the canonical code and short name of the rule.
// Example: "ERS010: NameCollision"
func (r Rule) String() string {
	switch r {
	case ERS000DirectiveNotOnFunction:
		return "ERS000: DirectiveNotOnFunction"
	case ERS001EmptySources:
		return "ERS001: EmptySources"
	case ERS002MalformedReference:
		return "ERS002: MalformedReference"
	case ERS003DuplicateDirective:
		return "ERS003: DuplicateDirective"
	case ERS004InactiveDirective:
		return "ERS004: InactiveDirective"
	case ERS005DisjunctiveConstraint:
		return "ERS005: DisjunctiveConstraint"
	case ERS010NameCollision:
		return "ERS010: NameCollision"
	case ERS011IdenticalTypes:
		return "ERS011: IdenticalTypes"
	case ERS012AggregateRedeclared:
		return "ERS012: AggregateRedeclared"
	case ERS013ShadowedVariant:
		return "ERS013: ShadowedVariant"
	case ERS020UnresolvedReference:
		return "ERS020: UnresolvedReference"
	case ERS021NotAnErrorType:
		return "ERS021: NotAnErrorType"
	case ERS030MissingBody:
		return "ERS030: MissingBody"
	case ERS031ErrorAlreadyDeclared:
		return "ERS031: ErrorAlreadyDeclared"
	case ERS032ReservedFunction:
		return "ERS032: ReservedFunction"
	case ERS040StaleOutput:
		return "ERS040: StaleOutput"
	default:
		return fmt.Sprintf("rule-unknown(%d)", r)
	}
}

// Code returns just the numeric code of the rule, like "ERS010".
func (r Rule) Code() string {
	s := r.String()
	if len(s) > 6 && s[:3] == "ERS" {
		return s[:6]
	}
	return s
}

// Description returns the human-readable explanation of the rule.
func (r Rule) Description() string {
	switch r {
	case ERS000DirectiveNotOnFunction:
		return "The errors directive can only be used in a function doc comment."
	case ERS001EmptySources:
		return "The errors directive must list at least one error type."
	case ERS002MalformedReference:
		return "Error type reference cannot be parsed."
	case ERS003DuplicateDirective:
		return "A function can carry only one errors directive."
	case ERS004InactiveDirective:
		return "The errors directive has no effect in a file built without the errsum tag."
	case ERS005DisjunctiveConstraint:
		return "The build constraint of a source file must require the errsum tag in every configuration."
	case ERS010NameCollision:
		return "Two error types derive the same variant name."
	case ERS011IdenticalTypes:
		return "Two entries refer to the identical error type."
	case ERS012AggregateRedeclared:
		return "A generated declaration takes a name already declared in the file."
	case ERS013ShadowedVariant:
		return "An interface error type catches values of a type listed after it."
	case ERS020UnresolvedReference:
		return "Error type reference does not resolve to a type."
	case ERS021NotAnErrorType:
		return "Referenced type does not implement error."
	case ERS030MissingBody:
		return "Annotated function must have a body."
	case ERS031ErrorAlreadyDeclared:
		return "Annotated function must declare its success results only."
	case ERS032ReservedFunction:
		return "Function signature cannot be changed."
	case ERS040StaleOutput:
		return "Generated file is missing or out of date."
	default:
		return fmt.Sprintf("unknown-rule(%d)", r)
	}
}

// All returns every rule in code order.
func All() []Rule {
	var res []Rule
	for r := ERS000DirectiveNotOnFunction; r <= ERS040StaleOutput; r++ {
		res = append(res, r)
	}
	return res
}

// Canonical constructors — for readability and stable call sites.

func DirectiveNotOnFunction() Rule { return ERS000DirectiveNotOnFunction }
func EmptySources() Rule           { return ERS001EmptySources }
func MalformedReference() Rule     { return ERS002MalformedReference }
func DuplicateDirective() Rule     { return ERS003DuplicateDirective }
func InactiveDirective() Rule      { return ERS004InactiveDirective }
func DisjunctiveConstraint() Rule  { return ERS005DisjunctiveConstraint }
func NameCollision() Rule          { return ERS010NameCollision }
func IdenticalTypes() Rule         { return ERS011IdenticalTypes }
func AggregateRedeclared() Rule    { return ERS012AggregateRedeclared }
func ShadowedVariant() Rule        { return ERS013ShadowedVariant }
func UnresolvedReference() Rule    { return ERS020UnresolvedReference }
func NotAnErrorType() Rule         { return ERS021NotAnErrorType }
func MissingBody() Rule            { return ERS030MissingBody }
func ErrorAlreadyDeclared() Rule   { return ERS031ErrorAlreadyDeclared }
func ReservedFunction() Rule       { return ERS032ReservedFunction }
func StaleOutput() Rule            { return ERS040StaleOutput }
