// Command pathcheck is a linter that reports dereferences of nil values.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/mpyw/pathcheck"
)

func main() {
	singlechecker.Main(pathcheck.Analyzer)
}
