package repository

import (
	"context"
	"log/slog"
	"strings"
)

// RosterRepository is the authoritative set of known participant names.
// ReplaceAll is a one-shot bulk load; the pipeline only ever reads.
type RosterRepository interface {
	ReplaceAll(ctx context.Context, names []string) (int, error)
	Contains(ctx context.Context, name string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type rosterRepository struct {
	db  *DB
	log *slog.Logger
}

func NewRosterRepository(db *DB, log *slog.Logger) RosterRepository {
	if log == nil {
		log = slog.Default()
	}
	return &rosterRepository{db: db, log: log}
}

// ReplaceAll swaps the whole roster for the given names in one transaction.
// Names are stored trimmed; blanks are skipped. Returns the number stored.
func (r *rosterRepository) ReplaceAll(ctx context.Context, names []string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM roster_entries`); err != nil {
		r.log.Error("roster replace: delete failed", "error", err)
		return 0, err
	}

	stored := 0
	insert := r.db.rebind(`INSERT INTO roster_entries (name) VALUES (?)`)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, insert, name); err != nil {
			r.log.Error("roster replace: insert failed", "name", name, "error", err)
			return 0, err
		}
		stored++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	r.log.Info("roster replaced", "entries", stored)
	return stored, nil
}

// Contains checks exact membership of the given name. Comparison is
// case-sensitive; callers trim before asking.
func (r *rosterRepository) Contains(ctx context.Context, name string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		r.db.rebind(`SELECT COUNT(1) FROM roster_entries WHERE name = ?`), name,
	).Scan(&n)
	if err != nil {
		r.log.Error("roster lookup failed", "error", err)
		return false, err
	}
	return n > 0, nil
}

func (r *rosterRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM roster_entries`).Scan(&n)
	return n, err
}
