package config

import (
	"fmt"
)

// ResolveMode describes varieties of type reference resolution.
type ResolveMode int

const (
	ResolveModeInvalid ResolveMode = iota

	// ResolveAssumed takes package names from import paths and never loads anything.
	ResolveAssumed

	// ResolvePackages loads referenced packages and checks the types exist and implement error.
	ResolvePackages
)

var resolveModeValueMap = map[ResolveMode]string{
	ResolveAssumed:  "assumed",
	ResolvePackages: "packages",
}

func (m ResolveMode) String() string {
	v, ok := resolveModeValueMap[m]
	if !ok {
		return fmt.Sprintf("invalid(%d)", m)
	}

	return v
}

// UnmarshalText for setting values with configs, CLI, etc.
func (m *ResolveMode) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for k, v := range resolveModeValueMap {
		if v == text {
			*m = k
			return nil
		}
	}

	return fmt.Errorf("unknown resolve mode %q", text)
}

func (m ResolveMode) MarshalText() ([]byte, error) {
	v, ok := resolveModeValueMap[m]
	if !ok {
		return nil, fmt.Errorf("invalid resolve mode %d", m)
	}

	return []byte(v), nil
}

// Set and Type let the mode be used as a command line flag value.
func (m *ResolveMode) Set(s string) error {
	return m.UnmarshalText([]byte(s))
}

func (m ResolveMode) Type() string {
	return "mode"
}
