package prompts

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryKey(t *testing.T) {
	assert.Equal(t, "startup", CategoryKey("startup_1700000000000_abc123"))
	assert.Equal(t, "blog", CategoryKey("blog"))
	assert.Equal(t, "", CategoryKey("_1_a"))
	assert.Equal(t, "unknown", CategoryKey("unknown_1_a"))
}

func TestLookup(t *testing.T) {
	for _, key := range []string{"startup", "automation", "blog", "youtube", "project"} {
		c, ok := Lookup(key)
		require.True(t, ok, key)
		require.Equal(t, key, c.Key)
		require.NotEmpty(t, c.Label)
		require.True(t, strings.HasSuffix(c.System, outputRule), key)
	}
	_, ok := Lookup("unknown")
	require.False(t, ok)
	_, ok = Lookup("")
	require.False(t, ok)
}

func TestListKeepsDisplayOrder(t *testing.T) {
	list := List()
	require.Len(t, list, 5)
	require.Equal(t, "startup", list[0].Key)
	require.Equal(t, "project", list[4].Key)
}

func TestBoosterUsesSeedModulo(t *testing.T) {
	require.Len(t, Boosters, 10)
	assert.Equal(t, Boosters[0], Booster(0))
	assert.Equal(t, Boosters[3], Booster(9993))
	assert.Equal(t, Boosters[7], Booster(-7))
}

func TestUserPromptCarriesEntropy(t *testing.T) {
	c, _ := Lookup("youtube")
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := UserPrompt(c, Booster(42), now, 42)
	assert.Contains(t, p, Boosters[2])
	assert.Contains(t, p, "youtube")
	assert.Contains(t, p, "2024-03-01T12:00:00Z")
	assert.Contains(t, p, "random seed: 42")
}

func TestDeriveTitle(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Solar Pet Feeder", DeriveTitle("intro\n# Solar Pet Feeder\n## Problem", "Startup", now))
	assert.Equal(t, "Problem", DeriveTitle("##   Problem  \ntext", "Startup", now))
	assert.Equal(t, "Blog - 2024-03-01", DeriveTitle("no headings here", "Blog", now))
	assert.Equal(t, "Blog - 2024-03-01", DeriveTitle("#\n", "Blog", now))
}
