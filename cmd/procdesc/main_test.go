package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procdesc/internal/sched"
)

func TestRun(t *testing.T) {
	cfg := sched.DefaultConfig()
	cfg.CSVTrace = filepath.Join(t.TempDir(), "trace.csv")
	table := sched.NewTable(nil)

	require.NoError(t, run(cfg, nil, table))
	require.NoError(t, table.Close())
	assert.Equal(t, 3, table.Len())

	data, err := os.ReadFile(cfg.CSVTrace)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "timestamp,event,pid,remaining,descriptor", lines[0])
	assert.Contains(t, lines[len(lines)-1], ",Finish,1,0,1 0 3 1")
}

func TestRun_TraceError(t *testing.T) {
	cfg := sched.DefaultConfig()
	cfg.CSVTrace = filepath.Join(t.TempDir(), "missing", "trace.csv")
	table := sched.NewTable(nil)

	assert.Error(t, run(cfg, nil, table))
	assert.NoError(t, table.Close())
	assert.Equal(t, 0, table.Len())
}
