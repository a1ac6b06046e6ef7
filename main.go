// Command errsum generates aggregate error types for functions annotated with the errors directive.
package main

import "github.com/sirkon/errsum/internal/cli"

func main() {
	cli.Execute()
}
