package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		username string
		score    int
		want     string
		wantErr  bool
	}{
		{"uppercases", "ace", 250, "ACE", false},
		{"trims", "  bob  ", 0, "BOB", false},
		{"ten runes", "abcdefghij", 1, "ABCDEFGHIJ", false},
		{"unicode counts runes", "ёжик", 5, "ЁЖИК", false},
		{"empty", "", 10, "", true},
		{"blank", "   ", 10, "", true},
		{"too long", "abcdefghijk", 10, "", true},
		{"negative", "ace", -1, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.username, tt.score)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsValidationWrapped(t *testing.T) {
	err := fmt.Errorf("api: %w", &ValidationError{Message: "nope"})
	assert.True(t, IsValidation(err))
	assert.False(t, IsValidation(errors.New("boom")))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("redis", "")
	require.ErrorIs(t, err, ErrUnknownDriver)
}

func TestDriversRegistered(t *testing.T) {
	assert.Equal(t, []string{"memory", "postgres", "sqlite"}, Drivers())
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register("memory", func(string) (Leaderboard, error) { return NewMemoryStore(), nil })
	})
}

// leaderboardContract runs the behaviour every backend must share.
func leaderboardContract(t *testing.T, open func(t *testing.T) Leaderboard) {
	ctx := context.Background()

	t.Run("empty is not nil", func(t *testing.T) {
		lb := open(t)
		records, err := lb.TopScores(ctx, 10)
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("submit normalizes", func(t *testing.T) {
		lb := open(t)
		r, err := lb.SubmitScore(ctx, " ace ", 250)
		require.NoError(t, err)
		assert.Equal(t, "ACE", r.Username)
		assert.Equal(t, 250, r.Score)
		assert.NotZero(t, r.ID)
		assert.False(t, r.CreatedAt.IsZero())

		records, err := lb.TopScores(ctx, 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, r.ID, records[0].ID)
		assert.Equal(t, "ACE", records[0].Username)
	})

	t.Run("rejects invalid", func(t *testing.T) {
		lb := open(t)
		_, err := lb.SubmitScore(ctx, "", 10)
		assert.True(t, IsValidation(err))
		_, err = lb.SubmitScore(ctx, "ace", -5)
		assert.True(t, IsValidation(err))

		records, err := lb.TopScores(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("ordering and limit", func(t *testing.T) {
		lb := open(t)
		for i := 0; i < 12; i++ {
			_, err := lb.SubmitScore(ctx, fmt.Sprintf("P%d", i), i*10)
			require.NoError(t, err)
		}

		records, err := lb.TopScores(ctx, 0)
		require.NoError(t, err)
		require.Len(t, records, DefaultLimit)
		assert.Equal(t, 110, records[0].Score)
		assert.Equal(t, 20, records[9].Score)
		for i := 1; i < len(records); i++ {
			assert.GreaterOrEqual(t, records[i-1].Score, records[i].Score)
		}

		records, err = lb.TopScores(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, records, 3)

		records, err = lb.TopScores(ctx, 50)
		require.NoError(t, err)
		assert.Len(t, records, DefaultLimit)
	})

	t.Run("ties keep earliest first", func(t *testing.T) {
		lb := open(t)
		first, err := lb.SubmitScore(ctx, "FIRST", 100)
		require.NoError(t, err)
		second, err := lb.SubmitScore(ctx, "SECOND", 100)
		require.NoError(t, err)
		_, err = lb.SubmitScore(ctx, "LOW", 10)
		require.NoError(t, err)

		records, err := lb.TopScores(ctx, 10)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, first.ID, records[0].ID)
		assert.Equal(t, second.ID, records[1].ID)
		assert.Equal(t, "LOW", records[2].Username)
	})

	t.Run("concurrent submits", func(t *testing.T) {
		lb := open(t)
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := lb.SubmitScore(ctx, fmt.Sprintf("C%d", i), i)
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		records, err := lb.TopScores(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, records, 8)
	})
}
