package cv2pdf

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Pipeline runs one conversion: start a render session, load the
// document, apply the print transformations, capture the PDF, and tear
// the session down. One Pipeline serves one invocation; running two
// conversions concurrently is unsupported.
type Pipeline struct {
	settings *Settings
	log      *slog.Logger

	// Stage seams, replaced by fakes in tests.
	newSession func(log *slog.Logger) session
	load       func(ctx context.Context, sess session, docPath string, timeouts TimeoutSettings) (*LoadOutcome, error)
	transform  func(sess session) error
	capture    func(sess session, outputPath string, doc DocumentSettings) (string, error)
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the logger used by the pipeline and every stage.
// Defaults to slog.Default().
func WithLogger(log *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// NewPipeline creates a Pipeline for the given resolved settings.
func NewPipeline(settings *Settings, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		settings: settings,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	loader := &contentLoader{log: p.log}
	transformer := &domTransformer{log: p.log}
	capturer := &pdfCapturer{log: p.log}

	if p.newSession == nil {
		p.newSession = func(log *slog.Logger) session { return newRodSession(log) }
	}
	if p.load == nil {
		p.load = loader.load
	}
	if p.transform == nil {
		p.transform = transformer.apply
	}
	if p.capture == nil {
		p.capture = capturer.capture
	}
	return p
}

// Run converts the document at docPath into a PDF at outputPath and
// returns the written path. Once the session has started, stop runs
// exactly once on every exit path, including stage failures.
func (p *Pipeline) Run(ctx context.Context, docPath, outputPath string) (string, error) {
	start := time.Now()

	sess := p.newSession(p.log)
	if err := sess.start(p.settings); err != nil {
		return "", fmt.Errorf("starting render session: %w", err)
	}
	defer sess.stop()

	outcome, err := p.load(ctx, sess, docPath, p.settings.Timeouts)
	if err != nil {
		return "", fmt.Errorf("loading document: %w", err)
	}
	p.log.Info("document loaded",
		"strategy", outcome.Strategy,
		"images_settled", outcome.ImagesSettled)

	if err := p.transform(sess); err != nil {
		return "", fmt.Errorf("transforming page: %w", err)
	}
	p.log.Debug("page transformations applied", "mutations", len(pageMutations))

	path, err := p.capture(sess, outputPath, p.settings.Document)
	if err != nil {
		return "", fmt.Errorf("capturing PDF: %w", err)
	}

	p.log.Info("conversion complete", "output", path, "duration", time.Since(start).Round(time.Millisecond))
	return path, nil
}
