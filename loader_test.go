package cv2pdf

// Notes:
// - only a missing document is fatal; navigation failure degrades to
//   content injection and image trouble degrades to a partial render
// - settle wait: zero images sleeps the flat delay, images race the
//   polled check against the flat delay, first finished wins

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testDocument = `<!DOCTYPE html>
<html><body>
<h2 class="section-title">Experience</h2>
<p>Some experience.</p>
</body></html>`

// writeTestDocument writes an HTML document into a temp dir.
func writeTestDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func testTimeouts(settle time.Duration) TimeoutSettings {
	return TimeoutSettings{PageLoad: 5 * time.Second, ImageRender: settle}
}

func TestLoad_MissingDocument(t *testing.T) {
	t.Parallel()

	loader := &contentLoader{log: newTestLogger()}
	sess := &fakeSession{}

	_, err := loader.load(context.Background(), sess, filepath.Join(t.TempDir(), "nope.html"), testTimeouts(0))
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("error = %v, want ErrDocumentNotFound", err)
	}
	if len(sess.navigated) != 0 {
		t.Error("load should not navigate when the document is missing")
	}
}

func TestLoad_NavigatePrimary(t *testing.T) {
	t.Parallel()

	doc := writeTestDocument(t, testDocument)
	loader := &contentLoader{log: newTestLogger()}
	sess := &fakeSession{}

	outcome, err := loader.load(context.Background(), sess, doc, testTimeouts(0))
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	if outcome.Strategy != StrategyNavigate {
		t.Errorf("Strategy = %q, want %q", outcome.Strategy, StrategyNavigate)
	}
	if len(sess.navigated) != 1 {
		t.Fatalf("navigated %d times, want 1", len(sess.navigated))
	}
	if want := "file://" + doc; sess.navigated[0] != want {
		t.Errorf("navigated to %q, want %q", sess.navigated[0], want)
	}
	if len(sess.injected) != 0 {
		t.Error("primary navigation should not inject content")
	}
}

func TestLoad_FallbackInjection(t *testing.T) {
	t.Parallel()

	doc := writeTestDocument(t, testDocument)
	loader := &contentLoader{log: newTestLogger()}
	sess := &fakeSession{navErr: errors.New("net::ERR_FAILED")}

	outcome, err := loader.load(context.Background(), sess, doc, testTimeouts(0))
	if err != nil {
		t.Fatalf("load() error = %v, fallback must not fail the load", err)
	}

	if outcome.Strategy != StrategyInject {
		t.Errorf("Strategy = %q, want %q", outcome.Strategy, StrategyInject)
	}
	if len(sess.injected) != 1 {
		t.Fatalf("injected %d times, want 1", len(sess.injected))
	}
	if sess.injected[0] != testDocument {
		t.Error("injected content differs from the document on disk")
	}
}

func TestLoad_BothStrategiesFail(t *testing.T) {
	t.Parallel()

	doc := writeTestDocument(t, testDocument)
	loader := &contentLoader{log: newTestLogger()}
	sess := &fakeSession{
		navErr:     errors.New("net::ERR_FAILED"),
		contentErr: errors.Join(ErrPageLoad, errors.New("page gone")),
	}

	_, err := loader.load(context.Background(), sess, doc, testTimeouts(0))
	if !errors.Is(err, ErrPageLoad) {
		t.Errorf("error = %v, want ErrPageLoad", err)
	}
}

func TestSettleImages_NoImagesUsesFlatDelay(t *testing.T) {
	t.Parallel()

	loader := &contentLoader{log: newTestLogger()}
	sess := &fakeSession{imageCount: 0}

	const settle = 100 * time.Millisecond
	start := time.Now()
	settled := loader.settleImages(context.Background(), sess, settle)
	elapsed := time.Since(start)

	if !settled {
		t.Error("settled = false, want true for a document without images")
	}
	if elapsed < settle {
		t.Errorf("elapsed = %v, want at least the flat delay %v", elapsed, settle)
	}
	if elapsed > 5*time.Second {
		t.Errorf("elapsed = %v, flat delay must not approach the poll ceiling", elapsed)
	}
}

func TestSettleImages_ZeroDelayReturnsImmediately(t *testing.T) {
	t.Parallel()

	loader := &contentLoader{log: newTestLogger()}
	sess := &fakeSession{imageCount: 0}

	start := time.Now()
	loader.settleImages(context.Background(), sess, 0)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("elapsed = %v, want immediate return for zero settle delay", elapsed)
	}
}

func TestSettleImages_NeverLoadingImagesEndWithFlatDelay(t *testing.T) {
	t.Parallel()

	loader := &contentLoader{log: newTestLogger()}
	sess := &fakeSession{imageCount: 3, imagesDone: false}

	const settle = 400 * time.Millisecond
	start := time.Now()
	settled := loader.settleImages(context.Background(), sess, settle)
	elapsed := time.Since(start)

	if settled {
		t.Error("settled = true, want false for images that never finish")
	}
	if elapsed < settle {
		t.Errorf("elapsed = %v, want at least the flat delay %v", elapsed, settle)
	}
	if elapsed > 5*time.Second {
		t.Errorf("elapsed = %v, wait must end with the flat delay, not the ceiling", elapsed)
	}
}

func TestSettleImages_CompletedImagesWinTheRace(t *testing.T) {
	t.Parallel()

	loader := &contentLoader{log: newTestLogger()}
	sess := &fakeSession{imageCount: 2, imagesDone: true}

	// Flat delay far above the poll interval: the polled check must win.
	start := time.Now()
	settled := loader.settleImages(context.Background(), sess, 10*time.Second)
	elapsed := time.Since(start)

	if !settled {
		t.Error("settled = false, want true once every image reports complete")
	}
	if elapsed > 3*time.Second {
		t.Errorf("elapsed = %v, polled completion should end the wait early", elapsed)
	}
}

func TestSettleImages_ProbeFailureDegrades(t *testing.T) {
	t.Parallel()

	doc := writeTestDocument(t, testDocument)
	loader := &contentLoader{log: newTestLogger()}
	sess := &fakeSession{evalErr: errors.New("context canceled")}

	outcome, err := loader.load(context.Background(), sess, doc, testTimeouts(50*time.Millisecond))
	if err != nil {
		t.Fatalf("load() error = %v, probe failure must not abort the load", err)
	}
	if outcome.ImagesSettled {
		t.Error("ImagesSettled = true, want false when the probe fails")
	}
}
