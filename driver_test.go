package parselect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rektorphi/parselect/util"
)

func TestParseLength(t *testing.T) {
	n, err := ParseLength([]string{"1000"})
	require.NoError(t, err)
	assert.Equal(t, 1000, n)

	_, err = ParseLength(nil)
	assert.True(t, errors.Is(err, ErrMissingLength))
	_, err = ParseLength([]string{"1", "2"})
	assert.True(t, errors.Is(err, ErrMissingLength))
	_, err = ParseLength([]string{"ten"})
	assert.Error(t, err)
	_, err = ParseLength([]string{"-4"})
	assert.Error(t, err)
}

func TestLoadConfigOrDefault(t *testing.T) {
	cfg, err := LoadConfigOrDefault("", util.NopLogger{})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
