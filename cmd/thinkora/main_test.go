package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ateebshaikh21/Thinkora/internal/model"
	"github.com/Ateebshaikh21/Thinkora/internal/quizgen"
)

const paper = `1. Define an operating system and list its functions [2 marks]
2. Explain the difference between a process and a thread [5 marks]
3. Describe the working of paging with a neat diagram [8 marks]
4. Analyze the performance of FCFS and SJF scheduling algorithms [12 marks]
5. Discuss the future trends in distributed operating systems [10 marks]
A process is a program in execution. Paging is a memory management scheme.`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writePaper(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "os_pyq.txt")
	require.NoError(t, os.WriteFile(p, []byte(paper), 0o644))
	return p
}

func TestHashToken(t *testing.T) {
	out, err := run(t, "hash-token", "s3cret")
	require.NoError(t, err)
	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}

func TestAnalyzeCommand(t *testing.T) {
	in := writePaper(t)
	outPath := filepath.Join(t.TempDir(), "report.json")

	_, err := run(t, "analyze", in, "-o", outPath, "--log-level", "error")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var report struct {
		Extracted int               `json:"questions_extracted"`
		Questions model.QuestionSet `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 5, report.Extracted)
	assert.Equal(t, 22, report.Questions.Len())
}

func TestQuizCommand(t *testing.T) {
	in := writePaper(t)
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "quiz.json")
	_, err := run(t, "quiz", in, "-n", "4", "--seed", "9", "--true-false", "1", "-o", jsonPath, "--log-level", "error")
	require.NoError(t, err)
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var items []model.QuizItem
	require.NoError(t, json.Unmarshal(data, &items))
	assert.Len(t, items, 5)

	csvPath := filepath.Join(dir, "quiz.csv")
	_, err = run(t, "quiz", in, "-n", "3", "--seed", "9", "--format", "csv", "-o", csvPath, "--log-level", "error")
	require.NoError(t, err)
	data, err = os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Question Number,"))

	_, err = run(t, "quiz", in, "--format", "docx", "--log-level", "error")
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, "quiz", in, "-n", "40", "--log-level", "error")
	assert.Error(t, err)

	_, err = run(t, "quiz", in, "--count=-1", "--log-level", "error")
	assert.ErrorIs(t, err, quizgen.ErrInvalidCount)
}

func TestQuizCommandNoReadableFiles(t *testing.T) {
	p := filepath.Join(t.TempDir(), "scan.png")
	require.NoError(t, os.WriteFile(p, []byte{0x89}, 0o644))
	_, err := run(t, "quiz", p, "--log-level", "error")
	assert.ErrorContains(t, err, "no readable files")
}
