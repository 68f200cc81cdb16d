// Copyright 2023 Astrodyne
// License: MIT

package ephepath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"/a", "/b"}, ParseList("/a:/b"))
	assert.Equal(t, []string{`C:\eph`, `D:\eph`}, ParseList(`C:\eph;D:\eph`))
	assert.Equal(t, []string{"/a"}, ParseList("/a"))
	assert.Nil(t, ParseList(""))
	// a single ';' switches the whole list to Windows semantics, so a
	// colon stays inside the element
	assert.Equal(t, []string{`C:\eph`}, ParseList(`C:\eph;`))
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	name := "sepl_20.se1"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))

	c := Config{Dirs: []string{t.TempDir(), dir}}
	p, err := c.Find(name)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, name), p)

	_, err = c.Find("missing.se1")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestFindNoConfiguration(t *testing.T) {
	c := Config{}
	_, err := c.Find("sepl_20.se1")
	assert.ErrorIs(t, err, ErrConfigurationInvalid)
}

func TestFromEnvironment(t *testing.T) {
	t.Setenv(EnvVar, "/x:/y")
	c := FromEnvironment()
	assert.Equal(t, []string{"/x", "/y"}, c.Dirs)
	assert.True(t, c.UseFallback)

	t.Setenv(EnvVar, "")
	c = FromEnvironment()
	assert.Nil(t, c.Dirs)
}
