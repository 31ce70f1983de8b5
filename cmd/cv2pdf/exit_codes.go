package main

import (
	"errors"
	"os"

	cv2pdf "github.com/alnah/go-cv2pdf"
)

// Exit codes for the cv2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags or settings
	ExitIO      = 3 // Missing input document, permission denied
	ExitBrowser = 4 // Browser, rendering, or capture errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must wrap with
// fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser and capture errors (exit 4)
	if errors.Is(err, cv2pdf.ErrBrowserConnect) ||
		errors.Is(err, cv2pdf.ErrPageCreate) ||
		errors.Is(err, cv2pdf.ErrPageLoad) ||
		errors.Is(err, cv2pdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, cv2pdf.ErrDocumentNotFound) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Settings errors (exit 2)
	if errors.Is(err, cv2pdf.ErrConfigParse) ||
		errors.Is(err, cv2pdf.ErrConfigInvalid) {
		return ExitUsage
	}

	return ExitGeneral
}
