package obj

import (
	"bufio"
	"bytes"
	"strings"
)

// record is one logical directive line: the original 1-based line number,
// the leading keyword and the remaining whitespace-separated arguments.
type record struct {
	line    int
	keyword string
	args    []string
}

// maxRecordBytes bounds a single input line. Faces can reference many
// vertices, so the bufio default of 64KB is too tight for real files.
const maxRecordBytes = 4 << 20

// recordScanner yields records from line-oriented directive text. Blank
// lines and comment lines are skipped, but the reported line numbers
// always refer to the original input so diagnostics stay accurate.
// Unknown keywords are passed through untouched. Callers must check Err
// after the scan loop; a line over maxRecordBytes stops the scan with
// bufio.ErrTooLong instead of truncating the input. Scanning is
// restartable by constructing a new scanner over the same bytes.
type recordScanner struct {
	s    *bufio.Scanner
	line int
	rec  record
}

func newRecordScanner(data []byte) *recordScanner {
	s := bufio.NewScanner(bytes.NewReader(data))
	s.Buffer(make([]byte, 0, 64*1024), maxRecordBytes)
	return &recordScanner{s: s}
}

// Scan advances to the next directive record. It returns false at end of
// input.
func (rs *recordScanner) Scan() bool {
	for rs.s.Scan() {
		rs.line++

		text := strings.TrimSpace(rs.s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		rs.rec = record{
			line:    rs.line,
			keyword: fields[0],
			args:    fields[1:],
		}
		return true
	}
	return false
}

// Record returns the record produced by the last successful Scan.
func (rs *recordScanner) Record() record {
	return rs.rec
}

// Err returns the error that stopped the scan, or nil after a clean end
// of input. The failure is on the line after the last consumed one.
func (rs *recordScanner) Err() error {
	return rs.s.Err()
}
