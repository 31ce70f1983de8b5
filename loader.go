package cv2pdf

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-cv2pdf/internal/fileutil"
)

// Load strategy identifiers recorded in LoadOutcome.
const (
	StrategyNavigate = "navigate" // file:// navigation succeeded
	StrategyInject   = "inject"   // fell back to raw markup injection
)

// Image settle bounds. The poll ceiling is a fixed constant, not derived
// from configuration: it caps the worst case even under a very large
// configured page-load timeout.
const (
	imagePollCeiling  = 15 * time.Second
	imagePollInterval = 250 * time.Millisecond
)

// In-page probes for the settle wait. An image counts as done when it
// reports load-complete or already has a natural dimension.
const (
	jsImageCount     = `() => document.images.length`
	jsImagesComplete = `() => Array.from(document.images).every(img => img.complete || img.naturalWidth > 0)`
)

// LoadOutcome records which loading strategy succeeded and whether the
// image settle wait finished before its deadline. Diagnostic only.
type LoadOutcome struct {
	Strategy      string
	ImagesSettled bool
}

// contentLoader resolves the input document into live page state.
type contentLoader struct {
	log *slog.Logger
}

// load verifies the document exists, loads it into the page, and applies
// the bounded image settle wait.
//
// Only a missing document is fatal here. Navigation failures degrade to
// content injection, and incomplete image loading degrades to a partial
// render; both are logged, never raised.
func (l *contentLoader) load(ctx context.Context, sess session, docPath string, timeouts TimeoutSettings) (*LoadOutcome, error) {
	if !fileutil.FileExists(docPath) {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, docPath)
	}

	abs, err := filepath.Abs(docPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDocumentNotFound, docPath, err)
	}

	outcome := &LoadOutcome{Strategy: StrategyNavigate}
	if navErr := sess.navigate("file://"+abs, timeouts.PageLoad); navErr != nil {
		l.log.Warn("navigation failed, injecting document content instead", "error", navErr)

		raw, readErr := os.ReadFile(abs) // #nosec G304 -- document path is user-provided
		if readErr != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDocumentNotFound, docPath, readErr)
		}
		if injErr := sess.setContent(string(raw)); injErr != nil {
			return nil, injErr
		}
		outcome.Strategy = StrategyInject
	}

	outcome.ImagesSettled = l.settleImages(ctx, sess, timeouts.ImageRender)
	return outcome, nil
}

// settleImages gives asynchronous image loading a bounded chance to
// finish. It never fails: with no images it sleeps the flat settle delay;
// with images it races a polled completion check (capped at
// imagePollCeiling) against the flat delay, and whichever resolves first
// ends the wait. Partial image loading is acceptable.
func (l *contentLoader) settleImages(ctx context.Context, sess session, settle time.Duration) bool {
	count, err := l.imageCount(sess)
	if err != nil {
		l.log.Warn("image probe failed, skipping settle wait", "error", err)
		return false
	}

	if count == 0 {
		l.sleep(ctx, settle)
		return true
	}

	pollCtx, cancel := context.WithTimeout(ctx, imagePollCeiling)
	defer cancel()

	settled := make(chan bool, 1)
	go l.pollImages(pollCtx, sess, settled)

	timer := time.NewTimer(settle)
	defer timer.Stop()

	select {
	case ok := <-settled:
		return ok
	case <-timer.C:
		// Flat delay won the race. Stop the poller and wait for it to
		// exit so it cannot touch the page during later stages.
		cancel()
		return <-settled
	}
}

// pollImages checks image completion on a fixed interval until every
// image is done or the context expires. It always sends exactly one
// result on settled.
func (l *contentLoader) pollImages(ctx context.Context, sess session, settled chan<- bool) {
	ticker := time.NewTicker(imagePollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			settled <- false
			return
		case <-ticker.C:
			res, err := sess.eval(jsImagesComplete)
			if err != nil {
				l.log.Debug("image completion check failed", "error", err)
				settled <- false
				return
			}
			if res.Value.Bool() {
				settled <- true
				return
			}
		}
	}
}

func (l *contentLoader) imageCount(sess session) (int, error) {
	res, err := sess.eval(jsImageCount)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

// sleep waits for d or until ctx is done, whichever comes first.
func (l *contentLoader) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
