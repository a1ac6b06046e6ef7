// Package readint shows errsum at work: readint.go is the source file built with the errsum
// tag and readint_errsum.go is what errsum generates from it.
package readint

//go:generate go run github.com/sirkon/errsum generate
