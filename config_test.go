package parselect

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rektorphi/parselect/par"
)

func TestExampleConfigRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConfig(&buf, ExampleConfig()))
	if !strings.Contains(buf.String(), "maxMemory: 4G") {
		t.Fatalf("unexpected example config:\n%s", buf.String())
	}
	cfg, err := LoadConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, ExampleConfig(), cfg)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader("workers: 3\n"))
	require.NoError(t, err)
	want := DefaultConfig()
	want.Workers = 3
	assert.Equal(t, want, cfg)
	assert.Equal(t, par.Options{Workers: 3}, cfg.Options())

	cfg, err = LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigInvalid(t *testing.T) {
	for _, doc := range []string{
		"workers: -1\n",
		"grain: -5\n",
		"iterations: -2\n",
		"iterations: 0\n",
		"low: 10\nhigh: 5\n",
		"maxMemory: lots\n",
		"workers: [1, 2]\n",
	} {
		if _, err := LoadConfig(strings.NewReader(doc)); err == nil {
			t.Fatalf("expected error for config %q", doc)
		}
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "lab.yaml")
	require.NoError(t, os.WriteFile(name, []byte("iterations: 7\nmaxMemory: 64M\n"), 0o600))
	cfg, err := LoadConfigFromFile(name)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Iterations)
	mm, err := cfg.maxMemory()
	require.NoError(t, err)
	assert.Equal(t, uint64(64<<20), mm)

	_, err = LoadConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
