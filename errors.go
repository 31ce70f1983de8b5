package cv2pdf

import "errors"

// Sentinel errors for the rendering pipeline.
var (
	// Settings file errors.
	ErrConfigParse   = errors.New("failed to parse settings file")
	ErrConfigInvalid = errors.New("invalid settings")

	// Field validation errors. Surfaced wrapped in ErrConfigInvalid so
	// callers can match either the kind or the specific field.
	ErrInvalidFormat      = errors.New("invalid paper format")
	ErrInvalidScale       = errors.New("invalid scale")
	ErrInvalidMargin      = errors.New("invalid margin")
	ErrInvalidViewport    = errors.New("invalid viewport dimension")
	ErrInvalidDeviceScale = errors.New("invalid device scale factor")
	ErrInvalidTimeout     = errors.New("invalid timeout")

	// Input document errors.
	ErrDocumentNotFound = errors.New("input document not found")

	// Browser session errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Transformation and capture errors.
	ErrPDFGeneration = errors.New("PDF generation failed")
)
