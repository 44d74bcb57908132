package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ateebshaikh21/Thinkora/internal/analysis"
	"github.com/Ateebshaikh21/Thinkora/internal/docs"
	"github.com/Ateebshaikh21/Thinkora/internal/export"
	"github.com/Ateebshaikh21/Thinkora/internal/model"
	"github.com/Ateebshaikh21/Thinkora/internal/quizgen"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Extract and classify exam questions from study files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAnalyze,
	}
	cmd.Flags().StringP("output", "o", "-", "Output file path (- for stdout)")
	addLogFlags(cmd)
	return cmd
}

func quizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz FILE...",
		Short: "Generate a multiple-choice quiz from study files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runQuiz,
	}
	f := cmd.Flags()
	f.IntP("count", "n", 20, "Number of multiple-choice questions")
	f.Uint64("seed", 0, "Random seed (0 = time based)")
	f.Int("true-false", 0, "Number of extra true/false questions")
	f.String("format", "json", "Output format (json, csv, pdf)")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	addLogFlags(cmd)
	return cmd
}

func hashTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-token TOKEN",
		Short: "Print the bcrypt hash to use as --api-token-hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash token: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return err
		},
	}
}

// readDocuments extracts every readable file, skipping the rest with a warning.
func readDocuments(cmd *cobra.Command, paths []string) ([]model.Document, error) {
	var out []model.Document
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		name := filepath.Base(p)
		text, err := docs.Extract(cmd.Context(), name, data)
		if err != nil {
			slog.Warn("skipping file", "path", p, "error", err)
			continue
		}
		if text == "" {
			slog.Warn("skipping empty file", "path", p)
			continue
		}
		out = append(out, model.Document{Filename: name, Type: analysis.DocumentType(name), Content: text, Size: len(data)})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no readable files (supported: %s)", strings.Join(docs.SupportedExtensions(), ", "))
	}
	return out, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func writeJSONTo(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	documents, err := readDocuments(cmd, args)
	if err != nil {
		return err
	}
	report := analysis.Analyze(documents)
	slog.Info("analysis complete", "files", len(documents), "extracted", report.QuestionsExtracted, "unique", report.UniqueQuestions)

	w, err := openOutput(v.GetString("output"))
	if err != nil {
		return err
	}
	defer w.Close()
	return writeJSONTo(w, report)
}

func runQuiz(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	format := strings.ToLower(v.GetString("format"))
	if format != "json" && format != "csv" && format != "pdf" {
		return fmt.Errorf("unknown format %q (json, csv, pdf)", format)
	}

	documents, err := readDocuments(cmd, args)
	if err != nil {
		return err
	}
	report := analysis.Analyze(documents)

	seed := v.GetUint64("seed")
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	items, err := quizgen.Build(analysis.Content(documents), report.Questions.All(), v.GetInt("count"), v.GetInt("true-false"), seed)
	if err != nil {
		return fmt.Errorf("build quiz: %w", err)
	}
	slog.Info("quiz generated", "items", len(items), "seed", seed)

	w, err := openOutput(v.GetString("output"))
	if err != nil {
		return err
	}
	defer w.Close()

	switch format {
	case "csv":
		return export.WriteCSV(w, items)
	case "pdf":
		out, err := export.QuizPDF(strings.TrimSuffix(documents[0].Filename, filepath.Ext(documents[0].Filename))+" Quiz", items)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}
	return writeJSONTo(w, items)
}
