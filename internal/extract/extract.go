// Package extract recovers question records from unstructured document text.
package extract

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Ateebshaikh21/Thinkora/internal/model"
	"github.com/Ateebshaikh21/Thinkora/internal/similarity"
)

const (
	minLineLen  = 10
	minTextLen  = 10
	pass2Cutoff = 5
)

// markedPattern recovers text and marks from a line with an explicit mark
// annotation. A zero group index means the group is absent.
type markedPattern struct {
	name                      string
	re                        *regexp.Regexp
	numIdx, textIdx, marksIdx int
}

// Priority order matters: the first pattern yielding an accepted candidate wins.
var markedPatterns = []markedPattern{
	{"numbered-bracket-marks", regexp.MustCompile(`(?i)(\d+)\.\s*(.+?)[\[\(](\d+)\s*marks?[\]\)]`), 1, 2, 3},
	{"q-dash-marks", regexp.MustCompile(`(?i)Q(\d+)\.?\s*(.+?)\s*[-–]\s*(\d+)\s*marks?`), 1, 2, 3},
	{"bracket-number", regexp.MustCompile(`(?i)(.+?)[\[\(](\d+)[\]\)](?:\s*marks?)?`), 0, 1, 2},
	{"marks-prefix", regexp.MustCompile(`(?i)(\d+)\s*marks?[:\-]\s*(.+)`), 0, 2, 1},
}

// numberedPattern recovers "<marker> <text>" where the text runs until the
// next marker on the line or the end of the line.
type numberedPattern struct {
	name   string
	marker *regexp.Regexp
	stop   *regexp.Regexp
}

var numberedPatterns = []numberedPattern{
	{"numbered", regexp.MustCompile(`(\d+)\.\s*`), regexp.MustCompile(`\d+\.`)},
	{"q-numbered", regexp.MustCompile(`(?i)Q(\d+)[:.]?\s*`), regexp.MustCompile(`(?i)Q\d+`)},
}

// Extract scans text line by line and returns the question records it finds,
// in discovery order, with near-duplicates removed. Empty or unrecognizable
// input yields an empty result.
func Extract(text string) []model.QuestionRecord {
	lines := candidateLines(text)

	var records []model.QuestionRecord
	consumed := make(map[string]bool)
	for _, line := range lines {
		if rec, ok := matchMarked(line, len(records)+1); ok {
			records = append(records, rec)
			consumed[line] = true
		}
	}
	explicit := len(records)

	if len(records) < pass2Cutoff {
		for _, line := range lines {
			if consumed[line] {
				continue
			}
			if rec, ok := matchNumbered(line); ok {
				records = append(records, rec)
				consumed[line] = true
			}
		}
	}

	unique := Dedup(records)
	slog.Debug("extracted questions",
		"lines", len(lines),
		"explicit", explicit,
		"inferred", len(records)-explicit,
		"unique", len(unique),
	)
	return unique
}

func candidateLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) < minLineLen {
			continue
		}
		out = append(out, line)
	}
	return out
}

func accepted(text string) bool {
	return utf8.RuneCountInString(text) > minTextLen
}

func matchMarked(line string, nextNumber int) (model.QuestionRecord, bool) {
	for _, p := range markedPatterns {
		for _, m := range p.re.FindAllStringSubmatch(line, -1) {
			text := strings.TrimSpace(m[p.textIdx])
			if !accepted(text) {
				continue
			}
			marks, err := strconv.Atoi(m[p.marksIdx])
			if err != nil {
				continue
			}
			num := nextNumber
			if p.numIdx > 0 {
				if n, err := strconv.Atoi(m[p.numIdx]); err == nil {
					num = n
				}
			}
			return model.QuestionRecord{
				Text:           text,
				Marks:          marks,
				QuestionNumber: num,
				SourceLine:     line,
			}, true
		}
	}
	return model.QuestionRecord{}, false
}

func matchNumbered(line string) (model.QuestionRecord, bool) {
	for _, p := range numberedPatterns {
		for pos := 0; pos < len(line); {
			loc := p.marker.FindStringSubmatchIndex(line[pos:])
			if loc == nil {
				break
			}
			numStr := line[pos+loc[2] : pos+loc[3]]
			start := pos + loc[1]
			if start >= len(line) {
				break
			}
			// The text is at least one character and ends before the next marker.
			end := len(line)
			if _, size := utf8.DecodeRuneInString(line[start:]); start+size < len(line) {
				if s := p.stop.FindStringIndex(line[start+size:]); s != nil {
					end = start + size + s[0]
				}
			}
			text := strings.TrimSpace(line[start:end])
			if accepted(text) {
				num, _ := strconv.Atoi(numStr)
				return model.QuestionRecord{
					Text:           text,
					Marks:          InferMarks(text),
					QuestionNumber: num,
					SourceLine:     line,
					MarksInferred:  true,
				}, true
			}
			pos = end
		}
	}
	return model.QuestionRecord{}, false
}

// Dedup keeps records in order, dropping any whose text is a near-duplicate
// of an already kept record.
func Dedup(records []model.QuestionRecord) []model.QuestionRecord {
	out := make([]model.QuestionRecord, 0, len(records))
	for _, r := range records {
		dup := false
		for _, k := range out {
			if similarity.Duplicate(r.Text, k.Text) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, r)
		}
	}
	return out
}
