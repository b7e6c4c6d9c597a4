package importing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOpenSource_CSV(t *testing.T) {
	path := writeTempCSV(t, "amount,date,email\n10.00,2024-01-01,a@b.com\n20.00,2024-01-02,b@c.com\n")

	src, err := OpenSource(path)
	require.NoError(t, err)
	require.Equal(t, []string{"amount", "date", "email"}, src.Header)
	require.Len(t, src.Records, 2)
	require.Equal(t, []string{"10.00", "2024-01-01", "a@b.com"}, src.Records[0])
}

func TestOpenSource_CSVStripsBOM(t *testing.T) {
	path := writeTempCSV(t, "\xEF\xBB\xBFamount,date\n10.00,2024-01-01\n")

	src, err := OpenSource(path)
	require.NoError(t, err)
	require.Equal(t, []string{"amount", "date"}, src.Header)
}

func TestOpenSource_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	_, err := OpenSource(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing header")
}

func TestOpenSource_MissingFile(t *testing.T) {
	_, err := OpenSource(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestOpenSource_RaggedRowsAreKept(t *testing.T) {
	path := writeTempCSV(t, "amount,date,email\n10.00,2024-01-01\n")

	src, err := OpenSource(path)
	require.NoError(t, err)
	require.Len(t, src.Records, 1)
	require.Len(t, src.Records[0], 2)
}
