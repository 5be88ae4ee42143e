package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simaogato/bonds-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *domain.Table {
	return &domain.Table{
		Columns: []string{"Ticker", "Company"},
		Rows: [][]string{
			{"ACME1", "Acme Holdings, PLC"},
			{"B2", "Beta"},
		},
	}
}

func TestWriteText_AlignsColumns(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteText(&buf, sampleTable()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Ticker  Company", lines[0])
	assert.Equal(t, "ACME1   Acme Holdings, PLC", lines[1])
	assert.Equal(t, "B2      Beta", lines[2])
}

func TestWriteText_NilTable(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteText(&buf, nil))

	assert.Equal(t, "No bonds found.\n", buf.String())
}

func TestWriteCSV_QuotesFields(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, sampleTable()))

	assert.Equal(t, "Ticker,Company\nACME1,\"Acme Holdings, PLC\"\nB2,Beta\n", buf.String())
}

func TestSaveCSV(t *testing.T) {
	dir := t.TempDir()

	t.Run("writes csv file", func(t *testing.T) {
		path := filepath.Join(dir, "bonds.csv")

		require.NoError(t, SaveCSV(path, sampleTable()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "Ticker,Company\n"))
	})

	t.Run("rejects other extensions", func(t *testing.T) {
		path := filepath.Join(dir, "bonds.xlsx")

		err := SaveCSV(path, sampleTable())

		assert.ErrorIs(t, err, ErrNotCSV)
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})
}
