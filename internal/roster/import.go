package roster

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dtrajkov/attendance-tracker/internal/repository"
)

// Importer bulk-loads the roster from tabular input, replacing whatever was
// there before. It runs out-of-band; the pipeline never writes the roster.
type Importer struct {
	roster repository.RosterRepository
	logger *slog.Logger
}

func NewImporter(roster repository.RosterRepository, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{roster: roster, logger: logger}
}

// ImportFile replaces the roster from a CSV or XLSX file. The first column
// holds names; a leading "name" header row is tolerated and skipped. Returns
// the number of entries stored.
func (i *Importer) ImportFile(ctx context.Context, path string) (int, error) {
	var names []string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		names, err = readCSV(path)
	case ".xlsx":
		names, err = readXLSX(path)
	default:
		return 0, fmt.Errorf("unsupported roster format: %s", filepath.Ext(path))
	}
	if err != nil {
		i.logger.Error("roster file read failed", "path", path, "error", err)
		return 0, err
	}

	n, err := i.roster.ReplaceAll(ctx, names)
	if err != nil {
		return 0, err
	}
	i.logger.Info("roster imported", "path", path, "entries", n)
	return n, nil
}

func readCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var names []string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) == 0 {
			continue
		}
		names = append(names, rec[0])
	}
	return dropHeader(names), nil
}

func readXLSX(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	var names []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		names = append(names, row[0])
	}
	return dropHeader(names), nil
}

func dropHeader(names []string) []string {
	if len(names) > 0 && strings.EqualFold(strings.TrimSpace(names[0]), "name") {
		return names[1:]
	}
	return names
}
