package node

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Package is the subset of a package.json that is needed to inspect dependencies.
type Package struct {
	Name            string            `json:"name,omitempty"`
	Version         string            `json:"version,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// PackageFromFile reads the package.json at filename.
func PackageFromFile(filename string) (Package, error) {
	var p Package

	fd, err := os.Open(filename)
	if err != nil {
		return p, err
	}
	defer fd.Close()

	err = json.NewDecoder(fd).Decode(&p)
	return p, err
}

// InstalledPackage reads the package.json of the package name installed in the node_modules of dir.
func InstalledPackage(dir, name string) (Package, error) {
	return PackageFromFile(filepath.Join(dir, "node_modules", filepath.FromSlash(name), "package.json"))
}

// DependencyVersion returns the version range that p declares for the dependency name. Dev dependencies take precedence.
func (p Package) DependencyVersion(name string) (string, bool) {
	if v, ok := p.DevDependencies[name]; ok {
		return v, true
	}
	v, ok := p.Dependencies[name]
	return v, ok
}
