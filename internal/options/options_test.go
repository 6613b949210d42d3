package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	dedup bool
	limit int
}

func TestApply(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg,
		NoError(func(c *testConfig) { c.dedup = true }),
		New(func(c *testConfig) error {
			c.limit = 10
			return nil
		}),
	)

	require.NoError(t, err)
	assert.True(t, cfg.dedup)
	assert.Equal(t, 10, cfg.limit)
}

func TestApplyStopsAtFirstError(t *testing.T) {
	cfg := &testConfig{}
	boom := errors.New("boom")

	err := Apply(cfg,
		New(func(c *testConfig) error { return boom }),
		NoError(func(c *testConfig) { c.limit = 10 }),
	)

	require.ErrorIs(t, err, boom)
	assert.Zero(t, cfg.limit)
}

func TestApplyNoOptions(t *testing.T) {
	require.NoError(t, Apply(&testConfig{}))
}
