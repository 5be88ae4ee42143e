package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/simaogato/bonds-calculator/internal/domain"
)

// Options controls how rows are turned into bonds
type Options struct {
	// Strict aborts the whole load on the first malformed row.
	// Otherwise malformed rows are logged and skipped.
	Strict bool
	Clock  domain.Clock
	Logger zerolog.Logger
}

// bondRepository implements domain.BondRepository over a CSV file
type bondRepository struct {
	path string
	opts Options
}

// NewBondRepository creates a repository reading the CSV file at path.
// The file's first row is a header and is skipped.
func NewBondRepository(path string, opts Options) domain.BondRepository {
	return &bondRepository{path: path, opts: opts}
}

// List reads the file on every call
func (r *bondRepository) List(ctx context.Context) (*domain.Bonds, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bonds file: %w", err)
	}
	defer f.Close()

	bonds, err := Read(ctx, f, r.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.path, err)
	}
	return bonds, nil
}

// Read parses comma-separated, double-quoted rows from src
func Read(ctx context.Context, src io.Reader, opts Options) (*domain.Bonds, error) {
	if opts.Clock == nil {
		opts.Clock = domain.SystemClock{}
	}

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		items   []*domain.Bond
		skipped int
		header  = true
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}
		if header {
			header = false
			continue
		}

		line, _ := reader.FieldPos(0)
		bond, err := domain.ParseRow(row, opts.Clock)
		if err != nil {
			if opts.Strict {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			skipped++
			opts.Logger.Warn().Err(err).Int("line", line).Msg("skipping malformed bond row")
			continue
		}
		items = append(items, bond)
	}

	opts.Logger.Debug().Int("loaded", len(items)).Int("skipped", skipped).Msg("bonds loaded")
	return domain.NewBonds(items...), nil
}
