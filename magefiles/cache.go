//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Cache groups targets that drive the cached data through the built CLI.
type Cache mg.Namespace

func cli(args ...string) error {
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

// Refresh fetches publications and scholar metrics now.
func (Cache) Refresh() error {
	mg.Deps(Build)
	if err := cli("publications", "refresh", "--diff"); err != nil {
		return err
	}
	return cli("stats", "refresh")
}

// Info shows the age and expiry of both cache entries.
func (Cache) Info() error {
	mg.Deps(Build)
	if err := cli("publications", "info"); err != nil {
		return err
	}
	return cli("stats", "info")
}

// Clear removes both cache entries.
func (Cache) Clear() error {
	mg.Deps(Build)
	if err := cli("publications", "clear"); err != nil {
		return err
	}
	return cli("stats", "clear")
}
