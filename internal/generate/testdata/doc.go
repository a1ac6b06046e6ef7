// Package cases holds errsum source files and their expected outputs. The directory is
// embedded by tests of the generate package and is never built.
package cases
