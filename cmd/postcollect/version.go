package main

import (
	"fmt"

	"github.com/mrjoshuak/postcollect"
)

// Run executes the version command.
func (c *VersionCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "%s version %s\n", postcollect.Name, postcollect.Version)
	return nil
}
