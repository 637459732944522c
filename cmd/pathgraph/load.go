package main

import (
	"github.com/pkg/errors"
	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// load type-checks the packages matching patterns.
func load(patterns []string) ([]*packages.Package, error) {
	cfg := &packages.Config{Mode: loadMode, Tests: tests}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "loading packages")
	}
	if n := packages.PrintErrors(pkgs); n > 0 {
		return nil, errors.Errorf("%d errors while loading packages", n)
	}
	if len(pkgs) == 0 {
		return nil, errors.New("no packages matched")
	}
	return pkgs, nil
}
