package tabular

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	input := "refPeriod,Indicator Code,Value\n2019,DT.DOD.DECT.CD,1000\n2020,DT.DOD.DECT.CD,1100\n"

	table, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"refPeriod", "Indicator Code", "Value"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"2019", "DT.DOD.DECT.CD", "1000"}, table.Rows[0])
}

func TestParseCSV_HeaderOnlyFails(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("refPeriod,Indicator Code,Value\n"))
	assert.Error(t, err)
}

func TestParseCSV_RaggedRowsTolerated(t *testing.T) {
	input := "refPeriod,Indicator Code,Value\n2019,X\n2020,X,5\n"

	table, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestDataReader_ReadsCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "Year,Indicator_Code,Amount\n2019,X,5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := NewDataReader(path).ReadTable()
	require.NoError(t, err)
	assert.Equal(t, []string{"Year", "Indicator_Code", "Amount"}, table.Columns)
	assert.Len(t, table.Rows, 1)
}

func TestDataReader_MissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "nope.csv")).ReadTable()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDataReader_TrimsHeaderWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := " refPeriod ,Indicator Code,Value\n2019,X,5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := NewDataReader(path).ReadTable()
	require.NoError(t, err)
	assert.Equal(t, "refPeriod", table.Columns[0])
}
