package match

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dtrajkov/attendance-tracker/internal/entity"
)

// RosterDirectory is the read-only roster view the matcher needs.
type RosterDirectory interface {
	Contains(ctx context.Context, name string) (bool, error)
}

// Matcher checks extracted lines against the roster. It holds no mutable
// state; concurrent Match calls are safe.
type Matcher struct {
	roster RosterDirectory
	logger *slog.Logger
}

func NewMatcher(roster RosterDirectory, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{roster: roster, logger: logger}
}

// Match produces one result per input line, in input order. Each line is
// trimmed of surrounding whitespace, then compared for exact, case-sensitive
// equality with some roster name. Lines that trim to empty stay in the
// sequence with IsPresent=false; they still occupy a row during matching.
func (m *Matcher) Match(ctx context.Context, lines []string) ([]entity.MatchResult, error) {
	results := make([]entity.MatchResult, 0, len(lines))
	for _, line := range lines {
		name := strings.TrimSpace(line)
		present := false
		if name != "" {
			var err error
			present, err = m.roster.Contains(ctx, name)
			if err != nil {
				m.logger.Error("roster lookup failed", "name", name, "error", err)
				return nil, err
			}
		}
		results = append(results, entity.MatchResult{Name: name, IsPresent: present})
	}
	m.logger.Debug("matched lines", "lines", len(lines))
	return results, nil
}
