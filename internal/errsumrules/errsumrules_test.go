package errsumrules

import (
	"strings"
	"testing"
)

func TestRuleStrings(t *testing.T) {
	rules := []Rule{
		DirectiveNotOnFunction(),
		EmptySources(),
		MalformedReference(),
		DuplicateDirective(),
		InactiveDirective(),
		DisjunctiveConstraint(),
		NameCollision(),
		IdenticalTypes(),
		AggregateRedeclared(),
		ShadowedVariant(),
		UnresolvedReference(),
		NotAnErrorType(),
		MissingBody(),
		ErrorAlreadyDeclared(),
		ReservedFunction(),
		StaleOutput(),
	}

	if len(rules) != len(All()) {
		t.Fatalf("All returns %d rules, want %d", len(All()), len(rules))
	}
	for i, r := range All() {
		if r != rules[i] {
			t.Errorf("All()[%d] = %s, want %s", i, r, rules[i])
		}
	}

	seen := map[string]Rule{}
	for _, r := range rules {
		t.Run(r.String(), func(t *testing.T) {
			if !strings.HasPrefix(r.String(), "ERS") {
				t.Fatalf("unexpected rule string %q", r.String())
			}
			if strings.HasPrefix(r.Description(), "unknown-rule") {
				t.Fatalf("rule %s has no description", r)
			}
			if prev, ok := seen[r.Code()]; ok {
				t.Fatalf("code %s is shared by %s and %s", r.Code(), prev, r)
			}
			seen[r.Code()] = r
		})
	}
}

func TestRuleUnknown(t *testing.T) {
	if got := Rule(1000).String(); got != "rule-unknown(1000)" {
		t.Errorf("got %q", got)
	}
	if got := ruleInvalid.Description(); got != "unknown-rule(0)" {
		t.Errorf("got %q", got)
	}
	if got := ERS010NameCollision.Code(); got != "ERS010" {
		t.Errorf("got %q", got)
	}
}
