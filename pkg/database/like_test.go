package database

import (
	"context"
	"testing"

	"github.com/shishobooks/stacks/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsPattern(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in       string
		expected string
	}{
		{"Shore", "%Shore%"},
		{"100%", `%100\%%`},
		{"snake_case", `%snake\_case%`},
		{`back\slash`, `%back\\slash%`},
		{"", "%%"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, ContainsPattern(tc.in), tc.in)
	}
}

func TestContainsPattern_MatchesLiterally(t *testing.T) {
	t.Parallel()

	db, err := New(config.NewForTest())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	match := func(value, search string) bool {
		var n int
		err := db.QueryRowContext(ctx, `SELECT ? LIKE ? ESCAPE '\'`, value, ContainsPattern(search)).Scan(&n)
		require.NoError(t, err)
		return n == 1
	}

	assert.True(t, match("The Farthest Shore", "shore"))
	assert.True(t, match("snake_case", "_"))
	assert.False(t, match("Tehanu", "_"))
	assert.False(t, match("Tehanu", "%"))
	assert.True(t, match("100% cotton", "0%"))
	assert.False(t, match("1000 cotton", "0%"))
	assert.True(t, match(`C:\books`, `\`))
	assert.False(t, match("C:/books", `\`))
}
