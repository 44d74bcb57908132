// Package docs turns uploaded study files into plain text.
package docs

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrUnsupported is returned for file types that cannot be read.
var ErrUnsupported = errors.New("unsupported file type")

type reader func(ctx context.Context, data []byte) (string, error)

var readers = map[string]reader{
	".txt":  plain,
	".md":   plain,
	".rtf":  plain,
	".csv":  csvText,
	".html": htmlText,
	".htm":  htmlText,
	".docx": docxText,
	".pdf":  pdfText,
	".xlsx": xlsxText,
}

// Supported reports whether filename has a readable extension.
func Supported(filename string) bool {
	_, ok := readers[ext(filename)]
	return ok
}

// SupportedExtensions lists the readable extensions in sorted order.
func SupportedExtensions() []string {
	out := make([]string, 0, len(readers))
	for e := range readers {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Extract returns the text content of a file, dispatching on its extension.
func Extract(ctx context.Context, filename string, data []byte) (string, error) {
	read, ok := readers[ext(filename)]
	if !ok {
		return "", fmt.Errorf("%s: %w", filename, ErrUnsupported)
	}
	text, err := read(ctx, data)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	return strings.TrimSpace(text), nil
}

func ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

func plain(_ context.Context, data []byte) (string, error) {
	return string(data), nil
}

func csvText(_ context.Context, data []byte) (string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var lines []string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse csv: %w", err)
		}
		var cells []string
		for _, c := range rec {
			if c = strings.TrimSpace(c); c != "" {
				cells = append(cells, c)
			}
		}
		if len(cells) > 0 {
			lines = append(lines, strings.Join(cells, " "))
		}
	}
	return strings.Join(lines, "\n"), nil
}

const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, td, th, pre, blockquote"

func htmlText(_ context.Context, data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	var lines []string
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// nested blocks are emitted by their innermost element
		if s.Find(blockSelector).Length() > 0 {
			return
		}
		if t := strings.Join(strings.Fields(s.Text()), " "); t != "" {
			lines = append(lines, t)
		}
	})
	if len(lines) == 0 {
		return strings.Join(strings.Fields(doc.Find("body").Text()), " "), nil
	}
	return strings.Join(lines, "\n"), nil
}
