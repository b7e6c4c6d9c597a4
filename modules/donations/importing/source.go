package importing

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// Source is a fully read payment-processor export: one header row and
// the raw data records that follow it.
type Source struct {
	Header  []string
	Records [][]string
}

// OpenSource reads a processor export from disk. CSV and XLSX are
// supported, chosen by file extension.
func OpenSource(path string) (*Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return openXLSX(path)
	default:
		return openCSV(path)
	}
}

func openCSV(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	br := stripUTF8BOM(bufio.NewReader(f))
	r := csv.NewReader(br)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		if len(rec) == 0 {
			continue
		}
		records = append(records, rec)
	}

	return &Source{Header: header, Records: records}, nil
}

func openXLSX(path string) (*Source, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets in %s", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("missing header")
	}

	header := rows[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	return &Source{Header: header, Records: rows[1:]}, nil
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}

func readHeader(r *csv.Reader) ([]string, error) {
	h, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("missing header")
		}
		return nil, err
	}
	for i := range h {
		h[i] = strings.TrimSpace(h[i])
		if !utf8.ValidString(h[i]) {
			return nil, fmt.Errorf("invalid header encoding")
		}
	}
	return h, nil
}
