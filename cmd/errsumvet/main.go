// Command errsumvet runs the errsum analyzer standalone or as a go vet tool:
//
//	go vet -vettool=$(which errsumvet) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/sirkon/errsum/internal/vet"
)

func main() {
	singlechecker.Main(vet.Analyzer)
}
