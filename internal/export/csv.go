package export

import (
	"bytes"
	"strings"
)

// csvBOM lets spreadsheet applications detect UTF-8
const csvBOM = "\ufeff"

// EncodeCSV writes rows as RFC 4180 CSV with a UTF-8 BOM and CRLF line ends
func EncodeCSV(rows Rows) []byte {
	var buf bytes.Buffer
	buf.WriteString(csvBOM)
	for i, row := range rows {
		if i > 0 {
			buf.WriteString("\r\n")
		}
		for j, cell := range row {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(escapeCSV(cell))
		}
	}
	return buf.Bytes()
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
	}
	return s
}
