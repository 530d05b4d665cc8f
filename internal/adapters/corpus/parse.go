package corpus

import (
	"bufio"
	"io"
	"slices"
	"strconv"
	"strings"

	"labelit/internal/core/annotate"
	perr "labelit/internal/platform/errors"

	"golang.org/x/text/unicode/norm"
)

const (
	// LineBreak separates lines inside one record, written literally as backslash n
	LineBreak = `\n`

	// FieldSep splits a line into its order prefix and text
	FieldSep = "|"

	// FieldJoin replaces every FieldSep in the presented line
	FieldJoin = ": "

	maxRecordSize = 4 * 1024 * 1024
)

// ParseSamples reads one paragraph per record
// every line of a record must carry at least one FieldSep
func ParseSamples(r io.Reader) ([]annotate.Paragraph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxRecordSize)

	var out []annotate.Paragraph
	rec := 0
	for sc.Scan() {
		rec++
		raw := strings.TrimSuffix(sc.Text(), "\r")
		p, err := ParseRecord(raw)
		if err != nil {
			return nil, perr.WithField(err, "record "+strconv.Itoa(rec))
		}
		out = append(out, p)
	}
	if err := sc.Err(); err != nil {
		return nil, perr.IOf("corpus: read samples: %v", err)
	}
	return out, nil
}

// ParseRecord splits one record into lines and formats each
func ParseRecord(raw string) (annotate.Paragraph, error) {
	parts := strings.Split(raw, LineBreak)
	p := make(annotate.Paragraph, 0, len(parts))
	for i, line := range parts {
		if !strings.Contains(line, FieldSep) {
			return nil, perr.InvalidArgf("corpus: line %d has no %q separator: %q", i+1, FieldSep, line)
		}
		p = append(p, FormatLine(line))
	}
	return p, nil
}

// FormatLine renders "1|hello" as "1: hello"
func FormatLine(line string) string {
	return strings.ReplaceAll(line, FieldSep, FieldJoin)
}

// ParseLabels reads one label per line, trimmed and NFC normalized
// empty lines are dropped, duplicates collapsed and the result sorted
func ParseLabels(r io.Reader) (annotate.LabelSet, error) {
	sc := bufio.NewScanner(r)
	seen := map[string]struct{}{}
	var out annotate.LabelSet
	for sc.Scan() {
		l := norm.NFC.String(strings.TrimSpace(sc.Text()))
		if l == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	if err := sc.Err(); err != nil {
		return nil, perr.IOf("corpus: read labels: %v", err)
	}
	slices.Sort(out)
	return out, nil
}
