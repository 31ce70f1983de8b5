package cv2pdf

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-rod/rod/lib/proto"
)

// pdfFilePermissions is rw-r--r--: owner read+write, others read.
const pdfFilePermissions = 0o644

// pdfCapturer invokes print-to-PDF and writes the result to disk.
type pdfCapturer struct {
	log *slog.Logger
}

// capture prints the current page state with the resolved document
// settings and writes the PDF to outputPath. Nothing is retried; the
// returned path is only valid when err is nil.
func (c *pdfCapturer) capture(sess session, outputPath string, doc DocumentSettings) (string, error) {
	opts, err := buildPrintOptions(doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	if doc.OmitBackground {
		if err := sess.omitBackground(); err != nil {
			return "", fmt.Errorf("%w: overriding page background: %v", ErrPDFGeneration, err)
		}
	}

	buf, err := sess.pdf(opts)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(outputPath, buf, pdfFilePermissions); err != nil {
		return "", fmt.Errorf("%w: writing %s: %v", ErrPDFGeneration, outputPath, err)
	}

	c.log.Info("PDF written", "path", outputPath, "bytes", len(buf))
	return outputPath, nil
}

// buildPrintOptions maps document settings onto the browser's print
// endpoint: the format name becomes paper dimensions and each margin
// length is converted to inches.
func buildPrintOptions(doc DocumentSettings) (*proto.PagePrintToPDF, error) {
	size, ok := paperSizes[strings.ToLower(doc.Format)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, doc.Format)
	}

	margins := make(map[string]float64, 4)
	for side, length := range map[string]string{
		"top":    doc.Margin.Top,
		"bottom": doc.Margin.Bottom,
		"left":   doc.Margin.Left,
		"right":  doc.Margin.Right,
	} {
		inches, err := parseLength(length)
		if err != nil {
			return nil, fmt.Errorf("margin %s: %w", side, err)
		}
		margins[side] = inches
	}

	return &proto.PagePrintToPDF{
		PaperWidth:          floatPtr(size[0]),
		PaperHeight:         floatPtr(size[1]),
		Scale:               floatPtr(doc.Scale),
		MarginTop:           floatPtr(margins["top"]),
		MarginBottom:        floatPtr(margins["bottom"]),
		MarginLeft:          floatPtr(margins["left"]),
		MarginRight:         floatPtr(margins["right"]),
		PrintBackground:     doc.PrintBackground,
		DisplayHeaderFooter: doc.DisplayHeaderFooter,
	}, nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
