package rcgraph

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds bufio.Scanner's internal buffer; routing records are
// short, but a pathologically long line should not panic the scanner.
const maxLineSize = 1 << 20

// ParseLine parses one raw bucket/input line into a Record. It returns
// false for empty lines or lines with fewer than four '|'-separated
// fields (trim trailing \n\r, skip empty, split on '|' with at most four
// fields).
func ParseLine(line string) (Record, bool) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return Record{}, false
	}
	parts := strings.SplitN(line, "|", 4)
	if len(parts) < 4 {
		return Record{}, false
	}
	return Record{
		Source:      parts[0],
		Destination: parts[1],
		Group:       GroupKey{ClaimID: parts[2], StatusCode: parts[3]},
	}, true
}

// ForEachRecord parses every line of r, invoking fn for each well-formed
// record. Malformed and empty lines are silently skipped; no counters are
// kept here.
func ForEachRecord(r io.Reader, fn func(Record)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if rec, ok := ParseLine(scanner.Text()); ok {
			fn(rec)
		}
	}
	return scanner.Err()
}

// ForEachRecordFile opens path and streams its records through fn.
func ForEachRecordFile(path string, fn func(Record)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ForEachRecord(f, fn)
}
