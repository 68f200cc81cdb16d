// Copyright 2023 Astrodyne
// License: MIT

// Ephepath: locating ephemeris data files.
//
// The search path is an ordered list of directories, configured
// directly, through a PATH-style environment variable, or both.  The
// separator convention is autodetected: a ';' anywhere in the raw list
// selects Windows semantics, otherwise Unix ':' applies.  An optional
// built-in resource directory is searched last, after any configured
// directories.
package ephepath

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// EnvVar is the environment variable naming the ephemeris search path.
const EnvVar = "SE_EPHE_PATH"

// DefaultDir is the built-in resource-path fallback.
const DefaultDir = "/usr/share/sweph"

// ErrConfigurationInvalid is returned when a file is required but the
// search-path list is empty.
var ErrConfigurationInvalid = errors.New("ephepath: no usable search path")

// ErrFileNotFound is returned when no configured directory holds the
// requested file.
var ErrFileNotFound = errors.New("ephepath: file not found")

// Config is an ordered directory search list.
type Config struct {
	Dirs        []string
	UseFallback bool // append DefaultDir to the search order
}

// ParseList splits a raw path list on the autodetected separator.
// Empty elements are dropped.
func ParseList(raw string) []string {
	sep := ":"
	if strings.Contains(raw, ";") {
		sep = ";"
	}
	var dirs []string
	for _, d := range strings.Split(raw, sep) {
		if d = strings.TrimSpace(d); d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// FromEnvironment builds a Config from EnvVar.  An empty or unset
// variable yields only the fallback resource path.
func FromEnvironment() Config {
	return Config{
		Dirs:        ParseList(os.Getenv(EnvVar)),
		UseFallback: true,
	}
}

// searchOrder returns the effective directory list.
func (c Config) searchOrder() []string {
	dirs := c.Dirs
	if c.UseFallback {
		dirs = append(append([]string{}, dirs...), DefaultDir)
	}
	return dirs
}

// Find returns the full path of name in the first directory holding
// it.
//
// With no directories configured at all the error is
// ErrConfigurationInvalid; with directories configured but the file
// absent everywhere it is ErrFileNotFound.
func (c Config) Find(name string) (string, error) {
	dirs := c.searchOrder()
	if len(dirs) == 0 {
		return "", errors.Wrapf(ErrConfigurationInvalid, "looking for %s", name)
	}
	for _, d := range dirs {
		p := filepath.Join(d, name)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, nil
		}
	}
	return "", errors.Wrapf(ErrFileNotFound, "%s in %v", name, dirs)
}
