package main

import (
	pmstyaml "github.com/fwojciec/pmst/yaml"
)

// Run executes the config command.
func (c *DefaultsCmd) Run(deps *Dependencies) error {
	return pmstyaml.WriteConfig(deps.Stdout, deps.Config)
}
