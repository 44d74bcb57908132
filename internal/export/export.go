// Package export renders quizzes and question sets as CSV and PDF downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Ateebshaikh21/Thinkora/internal/model"
)

var csvHeader = []string{
	"Question Number", "Question",
	"Option A", "Option B", "Option C", "Option D",
	"Correct Answer", "Explanation", "Topic", "Marks",
}

// OptionLetter returns the letter label for an option index.
func OptionLetter(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}

// WriteCSV writes one row per quiz item, with the correct answer rendered
// as "<letter> - <text>".
func WriteCSV(w io.Writer, items []model.QuizItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, item := range items {
		row := []string{strconv.Itoa(i + 1), item.Text}
		for j := 0; j < 4; j++ {
			opt := ""
			if j < len(item.Options) {
				opt = item.Options[j]
			}
			row = append(row, opt)
		}
		row = append(row,
			OptionLetter(item.CorrectIndex)+" - "+item.CorrectOption(),
			item.Explanation,
			item.Topic,
			strconv.Itoa(item.Marks),
		)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
