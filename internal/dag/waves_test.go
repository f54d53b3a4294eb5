package dag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaves(t *testing.T) {
	t.Run("linear chain yields one wave per package", func(t *testing.T) {
		g := Build(context.Background(), makeCatalog(map[string][]string{
			"a": nil,
			"b": {"a"},
			"c": {"a", "b"},
		}))

		waves, err := Waves(g)
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"a"}, {"b"}, {"c"}}, waves)
	})

	t.Run("independent packages share a wave", func(t *testing.T) {
		g := Build(context.Background(), makeCatalog(map[string][]string{
			"base":  nil,
			"left":  {"base"},
			"right": {"base"},
			"top":   {"left", "right"},
		}))

		waves, err := Waves(g)
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"base"}, {"left", "right"}, {"top"}}, waves)
	})

	t.Run("every node lands strictly after its dependencies", func(t *testing.T) {
		g := Build(context.Background(), makeCatalog(map[string][]string{
			"a": nil,
			"b": {"a"},
			"c": {"a"},
			"d": {"b", "c"},
			"e": {"d", "a"},
		}))

		waves, err := Waves(g)
		require.NoError(t, err)

		waveOf := make(map[string]int)
		for i, wave := range waves {
			for _, name := range wave {
				_, seen := waveOf[name]
				require.False(t, seen, "node %s appeared in more than one wave", name)
				waveOf[name] = i
			}
		}
		require.Len(t, waveOf, g.Len())
		for name := range waveOf {
			for _, dep := range g.Dependencies(name) {
				assert.Less(t, waveOf[dep], waveOf[name], "%s must be published before %s", dep, name)
			}
		}
	})

	t.Run("two-node cycle stalls", func(t *testing.T) {
		g := Build(context.Background(), makeCatalog(map[string][]string{
			"x": {"y"},
			"y": {"x"},
		}))

		waves, err := Waves(g)
		require.Error(t, err)
		assert.Nil(t, waves)
		assert.ErrorIs(t, err, ErrCycle)

		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, []string{"x", "y"}, cycleErr.Remaining)
	})

	t.Run("cycle stalls only after satisfiable nodes run", func(t *testing.T) {
		g := Build(context.Background(), makeCatalog(map[string][]string{
			"free": nil,
			"x":    {"y"},
			"y":    {"x"},
		}))

		_, err := Waves(g)
		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, []string{"x", "y"}, cycleErr.Remaining, "free must not be in the stalled set")
	})

	t.Run("empty graph yields no waves", func(t *testing.T) {
		g := Build(context.Background(), makeCatalog(nil))
		waves, err := Waves(g)
		require.NoError(t, err)
		assert.Empty(t, waves)
	})
}
