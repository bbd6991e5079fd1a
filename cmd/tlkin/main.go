// Command tlkin evaluates Total Lagrangian kinematics (F, Green-Lagrange
// strain and B0) for the points of a TOML case file.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
