package profilers

import (
	"os"
	"path/filepath"
	"runtime/pprof"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestProfileFiles(t *testing.T) {
	dir := t.TempDir()
	cpuFile := filepath.Join(dir, "cpu.prof")
	require.NoError(t, startCPUProfile(cpuFile))
	pprof.StopCPUProfile()
	memFile := filepath.Join(dir, "mem.prof")
	require.NoError(t, writeHeapProfile(memFile))
	for _, fileName := range []string{cpuFile, memFile} {
		info, err := os.Stat(fileName)
		require.NoError(t, err)
		require.Greater(t, info.Size(), int64(0), "%s", fileName)
	}

	err := writeHeapProfile(filepath.Join(dir, "missing", "mem.prof"))
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
}
