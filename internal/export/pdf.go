package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Ateebshaikh21/Thinkora/internal/model"
)

func newDoc(title, subtitle string) (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr(title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, tr(subtitle), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	return pdf, tr
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// QuizPDF renders quiz items with their options, followed by an answer key.
func QuizPDF(title string, items []model.QuizItem) ([]byte, error) {
	pdf, tr := newDoc(title, fmt.Sprintf("%d questions | Generated %s", len(items), time.Now().Format("2006-01-02")))

	for i, item := range items {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, item.Text)), "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
		for j, opt := range item.Options {
			pdf.CellFormat(8, 6, "", "", 0, "L", false, 0, "")
			pdf.MultiCell(0, 6, tr(OptionLetter(j)+") "+opt), "", "L", false)
		}
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Topic: %s | Marks: %d | Difficulty: %s", item.Topic, item.Marks, item.Difficulty)), "", 1, "L", false, 0, "")
		pdf.Ln(3)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Answer Key", "", 1, "L", false, 0, "")
	for i, item := range items {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("%d. %s - %s", i+1, OptionLetter(item.CorrectIndex), item.CorrectOption())), "", 1, "L", false, 0, "")
		if item.Explanation != "" {
			pdf.SetFont("Helvetica", "", 9)
			pdf.MultiCell(0, 5, tr(item.Explanation), "", "L", false)
		}
		pdf.Ln(1)
	}
	return output(pdf)
}

// QuestionSetPDF renders the four category buckets of a question set.
func QuestionSetPDF(title string, set model.QuestionSet) ([]byte, error) {
	pdf, tr := newDoc(title, fmt.Sprintf("%d predicted exam questions", set.Len()))

	for _, cat := range model.Categories {
		questions := set.Bucket(cat)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("%s questions (%d)", string(cat), len(questions))), "B", 1, "L", false, 0, "")
		pdf.Ln(2)
		for i, q := range questions {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s [%d marks]", i+1, q.Text, q.Marks)), "", "L", false)
			pdf.SetFont("Helvetica", "I", 8)
			pdf.CellFormat(0, 5, tr(fmt.Sprintf("Topic: %s | Difficulty: %s | Confidence: %.2f", q.Topic, q.Difficulty, q.Confidence)), "", 1, "L", false, 0, "")
			pdf.Ln(1)
		}
		pdf.Ln(4)
	}
	return output(pdf)
}
