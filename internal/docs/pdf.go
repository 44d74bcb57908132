package docs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// PDFTool is the external converter used for PDF files.
var PDFTool = "pdftotext"

func pdfText(ctx context.Context, data []byte) (string, error) {
	if _, err := exec.LookPath(PDFTool); err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", PDFTool, ErrUnsupported)
	}

	f, err := os.CreateTemp("", "thinkora-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, PDFTool, "-layout", f.Name(), "-")
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s failed: %w", PDFTool, errors.New(msg))
		}
		return "", fmt.Errorf("%s failed: %w", PDFTool, err)
	}
	return out.String(), nil
}
