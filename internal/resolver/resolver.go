// Package resolver maps a test target to the WebdriverIO configuration file that belongs to it.
package resolver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/saucelabs/wdiorun/internal/fpath"
	"github.com/saucelabs/wdiorun/internal/msg"
	"github.com/saucelabs/wdiorun/internal/target"
)

// DefaultConfigDir is the directory, relative to the working directory, that holds the target configurations.
var DefaultConfigDir = filepath.Join("wdio", "configs")

// ConfigSuffix is the suffix every target configuration file carries in front of its extension.
const ConfigSuffix = ".config"

// CandidatePattern matches all files in the config directory that can be selected as a target.
const CandidatePattern = "*" + ConfigSuffix + ".{ts,js}"

// ErrMissingTarget is returned when no target was given.
var ErrMissingTarget = errors.New(msg.MissingTarget)

// Mode describes whether the configs are run from source or from pre-built artifacts.
type Mode string

// Supported modes.
const (
	ModeAuto     Mode = "auto"
	ModeSource   Mode = "source"
	ModeCompiled Mode = "compiled"
)

// Ext returns the file extension of configuration files in the given mode.
func (m Mode) Ext() string {
	if m == ModeCompiled {
		return ".js"
	}
	return ".ts"
}

// ParseMode converts s into a Mode. An empty value is treated as ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeSource, ModeCompiled:
		return m, nil
	}
	return "", fmt.Errorf(msg.InvalidMode, s)
}

// DetectMode resolves ModeAuto by looking for a tsconfig.json in workDir. Pre-built artifacts ship without one.
func DetectMode(m Mode, workDir string) Mode {
	if m != ModeAuto {
		return m
	}
	if fpath.Exists(filepath.Join(workDir, "tsconfig.json")) {
		return ModeSource
	}
	return ModeCompiled
}

// NotFoundError is returned when the configuration file of a target does not exist.
type NotFoundError struct {
	Path string
	// Candidates lists the target names that are available in the config directory.
	Candidates []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf(msg.ConfigNotFound, e.Path)
}

// Resolution is the outcome of a successful Resolve.
type Resolution struct {
	Target target.Target
	Mode   Mode
	Path   string
}

// Resolver resolves targets against a config directory.
type Resolver struct {
	ConfigDir string
	Mode      Mode
}

// New returns a Resolver for configDir. An empty configDir falls back to DefaultConfigDir.
func New(configDir string, mode Mode) Resolver {
	if configDir == "" {
		configDir = DefaultConfigDir
	}
	return Resolver{ConfigDir: configDir, Mode: mode}
}

// Path returns the configuration path for t without checking whether it exists.
// Device farm targets always use compiled configs, local targets follow the resolver's mode.
func (r Resolver) Path(t target.Target) string {
	ext := r.Mode.Ext()
	if t.IsDeviceFarm() {
		ext = ModeCompiled.Ext()
	}
	return filepath.Join(r.ConfigDir, t.Name+ConfigSuffix+ext)
}

// Resolve returns the configuration path for t. It fails with ErrMissingTarget if t is empty and with a
// *NotFoundError if the file does not exist.
func (r Resolver) Resolve(t target.Target) (Resolution, error) {
	if t.IsEmpty() {
		return Resolution{}, ErrMissingTarget
	}

	p := r.Path(t)
	if _, err := os.Stat(p); err != nil {
		if !os.IsNotExist(err) {
			return Resolution{}, fmt.Errorf("failed to inspect configuration %s: %w", p, err)
		}
		candidates, _ := r.Candidates()
		return Resolution{}, &NotFoundError{Path: p, Candidates: candidates}
	}

	mode := r.Mode
	if t.IsDeviceFarm() {
		mode = ModeCompiled
	}

	return Resolution{Target: t, Mode: mode, Path: p}, nil
}

// Candidates lists the names of all targets that have a configuration file in the config directory.
// Names are unique and sorted; a target present in both .ts and .js form is listed once.
// The result is nil only if the directory could not be read.
func (r Resolver) Candidates() ([]string, error) {
	files, err := fpath.FindFiles(r.ConfigDir, CandidatePattern)
	if err != nil {
		return nil, err
	}

	names := []string{}
	seen := map[string]bool{}
	for _, f := range files {
		name := TargetName(f)
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	return names, nil
}

// TargetName strips the ".config.<ext>" suffix from a configuration file name.
func TargetName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(strings.TrimSuffix(base, filepath.Ext(base)), ConfigSuffix)
}
