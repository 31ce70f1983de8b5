package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	cv2pdf "github.com/alnah/go-cv2pdf"
	"github.com/alnah/go-cv2pdf/internal/fileutil"
)

// captureAllowance covers browser launch, transformation, the fixed
// image-poll ceiling, and capture on top of the configured load bounds.
const captureAllowance = time.Minute

func run(flags *cliFlags, log *slog.Logger) error {
	settings, err := cv2pdf.ResolveSettings(flags.config, log)
	if err != nil {
		return err
	}

	outputPath := resolveOutputPath(flags.input, flags.output, settings.Output.Filename)

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout(settings))
	defer cancel()

	pipeline := cv2pdf.NewPipeline(settings, cv2pdf.WithLogger(log))
	_, err = pipeline.Run(ctx, flags.input, outputPath)
	return err
}

// resolveOutputPath picks the output location: an explicit --output wins;
// a configured name with path separators is used as given; a bare
// configured name lands alongside the input document.
func resolveOutputPath(inputPath, flagOutput, configured string) string {
	if flagOutput != "" {
		return flagOutput
	}
	if fileutil.IsFilePath(configured) {
		return configured
	}
	return filepath.Join(filepath.Dir(inputPath), configured)
}

// runTimeout bounds the whole invocation.
func runTimeout(s *cv2pdf.Settings) time.Duration {
	return s.Timeouts.PageLoad + s.Timeouts.ImageRender + captureAllowance
}
