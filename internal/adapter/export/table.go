package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/simaogato/bonds-calculator/internal/domain"
)

// ErrNotCSV is returned when the export target does not end in .csv
var ErrNotCSV = errors.New("export target must end in .csv")

// WriteText renders the table as space-aligned columns
func WriteText(w io.Writer, table *domain.Table) error {
	if table == nil || len(table.Columns) == 0 {
		_, err := fmt.Fprintln(w, "No bonds found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(table.Columns, "\t"))
	for _, row := range table.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// WriteCSV writes the header row followed by every record
func WriteCSV(w io.Writer, table *domain.Table) error {
	if table == nil {
		return nil
	}
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(table.Records()); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// SaveCSV writes the table to path, replacing any existing file.
// Paths without a .csv suffix are rejected and nothing is written.
func SaveCSV(path string, table *domain.Table) error {
	if !strings.HasSuffix(strings.ToLower(path), ".csv") {
		return fmt.Errorf("%w: %s", ErrNotCSV, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteCSV(f, table); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
