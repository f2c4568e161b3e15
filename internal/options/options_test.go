package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	window  int
	name    string
	applied []string
}

var errNegative = errors.New("window cannot be negative")

func withWindow(v int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if v < 0 {
			return errNegative
		}
		c.window = v
		c.applied = append(c.applied, "window")

		return nil
	})
}

func withName(name string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.name = name
		c.applied = append(c.applied, "name")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		c := &testConfig{}
		err := Apply(c, withWindow(3), withName("meter"), withWindow(5))

		require.NoError(t, err)
		require.Equal(t, 5, c.window)
		require.Equal(t, "meter", c.name)
		require.Equal(t, []string{"window", "name", "window"}, c.applied)
	})

	t.Run("stops at first error", func(t *testing.T) {
		c := &testConfig{}
		err := Apply(c, withWindow(2), withWindow(-1), withName("unused"))

		require.ErrorIs(t, err, errNegative)
		require.Equal(t, 2, c.window)
		require.Empty(t, c.name)
	})

	t.Run("skips nil options", func(t *testing.T) {
		c := &testConfig{}
		err := Apply(c, nil, withName("x"))

		require.NoError(t, err)
		require.Equal(t, "x", c.name)
	})

	t.Run("no options", func(t *testing.T) {
		c := &testConfig{}
		require.NoError(t, Apply(c))
		require.Empty(t, c.applied)
	})
}
