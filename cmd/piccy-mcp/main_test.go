package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartProfile(t *testing.T) {
	t.Chdir(t.TempDir())

	assert.Nil(t, startProfile(""))
	assert.Nil(t, startProfile("flame"))

	stop := startProfile("CPU")
	require.NotNil(t, stop)
	stop()

	info, err := os.Stat("cpu.pprof")
	require.NoError(t, err, "stop flushes the profile")
	assert.Greater(t, info.Size(), int64(0))
}

func TestRun_ConfigErrorReturns(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(envProfile, "")

	err := run(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
