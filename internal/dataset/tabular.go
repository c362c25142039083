package dataset

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	apperrors "micmac/internal/errors"
)

// Table is a sequence of rows of untyped cells, the common shape produced by
// CSV and spreadsheet readers. All validation runs against this shape so
// format-specific libraries stay swappable.
type Table [][]string

// ReadCSV reads a delimited-text table. A UTF-8 BOM is stripped and the
// delimiter is detected between comma and semicolon from the first line,
// since spreadsheet exports in comma-decimal locales use semicolons.
func ReadCSV(r io.Reader) (Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ImportInvalid, "failed to read file", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = detectDelimiter(raw)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ImportInvalid, "malformed CSV", err)
	}
	return Table(rows), nil
}

// WriteCSV writes a table as comma-delimited text.
func WriteCSV(w io.Writer, t Table) error {
	writer := csv.NewWriter(w)
	for _, row := range t {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func detectDelimiter(raw []byte) rune {
	line := raw
	if idx := bytes.IndexByte(raw, '\n'); idx >= 0 {
		line = raw[:idx]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

// sheetFor finds the first sheet whose name contains the given fragment,
// case-insensitively. Workbooks name their sheets conventionally
// ("variables", "Matriz", ...), so a substring match is the contract.
func sheetFor(sheets []string, fragment string) (string, bool) {
	for _, name := range sheets {
		if strings.Contains(strings.ToLower(name), fragment) {
			return name, true
		}
	}
	return "", false
}
