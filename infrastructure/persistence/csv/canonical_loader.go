package csv

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"coursegraph/domain/core/entities"
	pkgerrors "coursegraph/pkg/errors"

	"go.uber.org/zap"
)

type canonicalRecord struct {
	CanonicalID string `mapstructure:"Canonical_ID"`
	Codes       string `mapstructure:"Course_Codes"`
	Subjects    string `mapstructure:"Subject"`
	Title       string `mapstructure:"Title"`
	Description string `mapstructure:"Course Description"`
	Campus      string `mapstructure:"Campus"`
}

// CanonicalLoader reads the canonical equivalence table.
// Row order in the file is the embedding row order.
type CanonicalLoader struct {
	path   string
	logger *zap.Logger
}

// NewCanonicalLoader creates a loader for the table at path
func NewCanonicalLoader(path string, logger *zap.Logger) *CanonicalLoader {
	return &CanonicalLoader{path: path, logger: logger}
}

// LoadCanonical reads every row of the table
func (l *CanonicalLoader) LoadCanonical(ctx context.Context) ([]*entities.CanonicalCourse, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, pkgerrors.NewDataLoadError(l.path, err)
	}
	defer f.Close()

	table, err := l.Read(ctx, f)
	if err != nil {
		return nil, pkgerrors.NewDataLoadError(l.path, err)
	}
	return table, nil
}

// Read parses a canonical table stream. Rows with an unusable id are skipped;
// every record keeps its position as its embedding row.
func (l *CanonicalLoader) Read(ctx context.Context, r io.Reader) ([]*entities.CanonicalCourse, error) {
	records, err := readRecords[canonicalRecord](r)
	if err != nil {
		return nil, err
	}

	table := make([]*entities.CanonicalCourse, 0, len(records))
	var skipped int
	for row, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		id, err := ParseCanonicalID(rec.CanonicalID)
		if err != nil {
			l.logger.Debug("Skipping canonical row", zap.Int("row", row), zap.Error(err))
			skipped++
			continue
		}
		table = append(table, entities.NewCanonicalCourse(id, rec.Campus, rec.Codes, rec.Subjects, rec.Title, rec.Description, row))
	}

	l.logger.Info("Loaded canonical table",
		zap.String("path", l.path),
		zap.Int("rows", len(table)),
		zap.Int("skipped_rows", skipped),
	)
	return table, nil
}

// ParseCanonicalID accepts integer ids and float-formatted ones such as "12.0"
func ParseCanonicalID(raw string) (entities.CanonicalID, error) {
	raw = strings.TrimSpace(raw)
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return entities.CanonicalID(id), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid canonical id %q", raw)
	}
	return entities.CanonicalID(int64(f)), nil
}
