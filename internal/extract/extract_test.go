package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ateebshaikh21/Thinkora/internal/model"
)

func TestExtractExplicitMarks(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		text  string
		marks int
		num   int
	}{
		{
			name:  "numbered with bracket marks",
			line:  "1. Define machine learning and explain its types. [8 marks]",
			text:  "Define machine learning and explain its types.",
			marks: 8,
			num:   1,
		},
		{
			name:  "numbered with paren marks",
			line:  "3. Explain the working of a transformer (10 marks)",
			text:  "Explain the working of a transformer",
			marks: 10,
			num:   3,
		},
		{
			name:  "q format with dash",
			line:  "Q4. Describe the TCP handshake - 6 marks",
			text:  "Describe the TCP handshake",
			marks: 6,
			num:   4,
		},
		{
			name:  "bare bracket number",
			line:  "Write short notes on virtual memory [4]",
			text:  "Write short notes on virtual memory",
			marks: 4,
			num:   1,
		},
		{
			name:  "marks prefix",
			line:  "5 marks: Explain the concept of overfitting.",
			text:  "Explain the concept of overfitting.",
			marks: 5,
			num:   1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.line)
			require.Len(t, got, 1)
			assert.Equal(t, tt.text, got[0].Text)
			assert.Equal(t, tt.marks, got[0].Marks)
			assert.Equal(t, tt.num, got[0].QuestionNumber)
			assert.Equal(t, tt.line, got[0].SourceLine)
			assert.False(t, got[0].MarksInferred)
		})
	}
}

func TestExtractEmptyInput(t *testing.T) {
	assert.Empty(t, Extract(""))
	assert.Empty(t, Extract("short\n\n   \nnope"))
}

func TestExtractShortCandidateRejected(t *testing.T) {
	// The captured text is exactly ten characters, which is not enough.
	assert.Empty(t, Extract("2 marks: Define RAM"))
}

func TestExtractInferredPass(t *testing.T) {
	text := "Unit 3 questions\n" +
		"1. Explain the process of photosynthesis in plants\n" +
		"Q2: Define the term ecosystem clearly\n" +
		"2. Analyze the causes of the French Revolution"
	got := Extract(text)
	require.Len(t, got, 3)

	assert.Equal(t, "Explain the process of photosynthesis in plants", got[0].Text)
	assert.Equal(t, 8, got[0].Marks)
	assert.Equal(t, 1, got[0].QuestionNumber)
	assert.True(t, got[0].MarksInferred)

	assert.Equal(t, "Define the term ecosystem clearly", got[1].Text)
	assert.Equal(t, 2, got[1].Marks)
	assert.Equal(t, 2, got[1].QuestionNumber)

	assert.Equal(t, 15, got[2].Marks)
}

func TestExtractInferredStopsAtNextNumber(t *testing.T) {
	got := Extract("1. Describe stacks and queues 2. Explain binary search trees")
	require.Len(t, got, 1)
	assert.Equal(t, "Describe stacks and queues", got[0].Text)
}

func TestExtractSkipsPass2WhenEnoughExplicit(t *testing.T) {
	text := "1. Define an operating system kernel [2 marks]\n" +
		"2. Explain process scheduling algorithms [8 marks]\n" +
		"3. Describe paging and segmentation [6 marks]\n" +
		"4. Analyze deadlock prevention strategies [12 marks]\n" +
		"5. Discuss file system allocation methods [10 marks]\n" +
		"6. What is thrashing in virtual memory systems"
	got := Extract(text)
	require.Len(t, got, 5)
	for _, r := range got {
		assert.False(t, r.MarksInferred)
	}
}

func TestExtractPass2SkipsConsumedLines(t *testing.T) {
	text := "1. Define an operating system kernel [2 marks]\n" +
		"2. What is thrashing in virtual memory systems"
	got := Extract(text)
	require.Len(t, got, 2)
	assert.False(t, got[0].MarksInferred)
	assert.True(t, got[1].MarksInferred)
	assert.Equal(t, "What is thrashing in virtual memory systems", got[1].Text)
}

func TestExtractDeduplicates(t *testing.T) {
	text := "1. Explain the working of a compiler in detail [8 marks]\n" +
		"7. Explain the working of a compiler in detail [10 marks]"
	got := Extract(text)
	require.Len(t, got, 1)
	assert.Equal(t, 8, got[0].Marks)
}

func TestExtractDeterministic(t *testing.T) {
	text := "Q1. Describe the TCP handshake - 6 marks\n3. Explain routing tables [5 marks]"
	assert.Equal(t, Extract(text), Extract(text))
}

func TestInferMarks(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"Critically examine the role of RBI", 15},
		{"Compare and contrast TCP and UDP", 15},
		{"Describe the OSI model", 8},
		{"Why does ice float on water", 5},
		{"Name the planets of the solar system", 2},
		{"Write a note on Mughal architecture and its influence on later Indian buildings and gardens", 5},
		{"Write a note on Mughal architecture and its influence on later Indian buildings, gardens, forts and tombs", 8},
		{"Write a note on RAM", 2},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, InferMarks(tt.text))
		})
	}
}

func TestDedupKeepsFirst(t *testing.T) {
	in := []model.QuestionRecord{
		{Text: "what is a process", Marks: 2},
		{Text: "What is a process", Marks: 5},
		{Text: "what is a thread", Marks: 2},
	}
	got := Dedup(in)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Marks)
	assert.Equal(t, "what is a thread", got[1].Text)
}
