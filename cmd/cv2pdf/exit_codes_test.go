package main

// Notes:
// - each sentinel family maps to its exit code even through wrapping
// - unknown errors fall back to the general code

import (
	"errors"
	"fmt"
	"os"
	"testing"

	cv2pdf "github.com/alnah/go-cv2pdf"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"browser connect", cv2pdf.ErrBrowserConnect, ExitBrowser},
		{"page create", cv2pdf.ErrPageCreate, ExitBrowser},
		{"page load", cv2pdf.ErrPageLoad, ExitBrowser},
		{"pdf generation", cv2pdf.ErrPDFGeneration, ExitBrowser},
		{"document not found", cv2pdf.ErrDocumentNotFound, ExitIO},
		{"os not exist", os.ErrNotExist, ExitIO},
		{"os permission", os.ErrPermission, ExitIO},
		{"config parse", cv2pdf.ErrConfigParse, ExitUsage},
		{"config invalid", cv2pdf.ErrConfigInvalid, ExitUsage},
		{"unclassified", errors.New("something else"), ExitGeneral},

		// Wrapped errors resolve through errors.Is.
		{
			"wrapped browser",
			fmt.Errorf("starting render session: %w", cv2pdf.ErrBrowserConnect),
			ExitBrowser,
		},
		{
			"wrapped missing document",
			fmt.Errorf("loading document: %w", fmt.Errorf("%w: index.html", cv2pdf.ErrDocumentNotFound)),
			ExitIO,
		},
		{
			"wrapped invalid field",
			fmt.Errorf("%w: cv-config.json: %w", cv2pdf.ErrConfigInvalid, cv2pdf.ErrInvalidScale),
			ExitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
