package match

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtrajkov/attendance-tracker/internal/entity"
)

type mapRoster map[string]struct{}

func (m mapRoster) Contains(_ context.Context, name string) (bool, error) {
	_, ok := m[name]
	return ok, nil
}

type failingRoster struct{}

func (failingRoster) Contains(context.Context, string) (bool, error) {
	return false, errors.New("db gone")
}

func TestMatchPreservesOrderAndLength(t *testing.T) {
	roster := mapRoster{"Ana Petrova": {}, "Ivan Ivanov": {}}
	m := NewMatcher(roster, nil)

	results, err := m.Match(context.Background(), []string{"Ana Petrova", "Mira Iloska"})
	require.NoError(t, err)
	assert.Equal(t, []entity.MatchResult{
		{Name: "Ana Petrova", IsPresent: true},
		{Name: "Mira Iloska", IsPresent: false},
	}, results)
}

func TestMatchTrimsBeforeLookup(t *testing.T) {
	roster := mapRoster{"Ana Petrova": {}}
	m := NewMatcher(roster, nil)

	results, err := m.Match(context.Background(), []string{"  Ana Petrova \t"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Ana Petrova", results[0].Name)
	assert.True(t, results[0].IsPresent)
}

func TestMatchIsCaseSensitive(t *testing.T) {
	roster := mapRoster{"Ana Petrova": {}}
	m := NewMatcher(roster, nil)

	results, err := m.Match(context.Background(), []string{"ana petrova"})
	require.NoError(t, err)
	assert.False(t, results[0].IsPresent)
}

func TestMatchKeepsBlankLines(t *testing.T) {
	roster := mapRoster{"Ana Petrova": {}}
	m := NewMatcher(roster, nil)

	results, err := m.Match(context.Background(), []string{"Ana Petrova", "   ", "Ivan Ivanov"})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, entity.MatchResult{Name: "", IsPresent: false}, results[1])
}

func TestMatchPropagatesRosterErrors(t *testing.T) {
	m := NewMatcher(failingRoster{}, nil)

	_, err := m.Match(context.Background(), []string{"Ana Petrova"})
	require.Error(t, err)
}
