package cv2pdf

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-cv2pdf/internal/process"
)

// session owns one browser process and one page within it. It is valid
// between a successful start and stop; stop is idempotent and never
// returns an error. The interface exists so loading, transformation, and
// capture are testable without Chrome.
type session interface {
	start(settings *Settings) error
	navigate(url string, timeout time.Duration) error
	setContent(html string) error
	eval(js string) (*proto.RuntimeRemoteObject, error)
	omitBackground() error
	pdf(opts *proto.PagePrintToPDF) ([]byte, error)
	stop()
}

// Compile-time interface check.
var _ session = (*rodSession)(nil)

// rodSession implements session using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodSession struct {
	log      *slog.Logger
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

func newRodSession(log *slog.Logger) *rodSession {
	return &rodSession{log: log}
}

// start launches the browser, connects, opens a blank page, and applies
// the viewport. On any failure it releases whatever it had acquired, so a
// failed start leaves nothing for stop to clean up.
func (s *rodSession) start(settings *Settings) error {
	// Sandbox stays off unconditionally: the tool targets containers and
	// minimal build environments with no OS sandbox support.
	l := launcher.New().Headless(true).NoSandbox(true)

	// Use a pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             settings.Viewport.Width,
		Height:            settings.Viewport.Height,
		DeviceScaleFactor: settings.Viewport.DeviceScaleFactor,
		Mobile:            false,
	}); err != nil {
		_ = page.Close()
		_ = browser.Close()
		l.Kill()
		return fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}

	s.launcher = l
	s.browser = browser
	s.page = page
	s.log.Debug("render session started",
		"viewport_width", settings.Viewport.Width,
		"viewport_height", settings.Viewport.Height,
		"device_scale", settings.Viewport.DeviceScaleFactor)
	return nil
}

// navigate loads url and waits only for initial DOM construction, not for
// subresources. Remote fonts and stylesheets referenced by the document
// must not be able to stall the conversion.
func (s *rodSession) navigate(url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	page := s.page.Context(ctx)
	wait := page.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPageLoad, url, err)
	}
	wait()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s: no DOMContentLoaded within %s", ErrPageLoad, url, timeout)
	}
	return nil
}

// setContent replaces the page's document with raw markup. Used as the
// degraded load path when navigation fails.
func (s *rodSession) setContent(html string) error {
	if err := s.page.SetDocumentContent(html); err != nil {
		return fmt.Errorf("%w: injecting document content: %v", ErrPageLoad, err)
	}
	return nil
}

// eval runs a js function expression in the page and returns its result.
func (s *rodSession) eval(js string) (*proto.RuntimeRemoteObject, error) {
	return s.page.Eval(js)
}

// omitBackground overrides the page's default white background with a
// fully transparent one, the same way DevTools-protocol print drivers
// implement background omission.
func (s *rodSession) omitBackground() error {
	alpha := 0.0
	return proto.EmulationSetDefaultBackgroundColorOverride{
		Color: &proto.DOMRGBA{R: 0, G: 0, B: 0, A: &alpha},
	}.Call(s.page)
}

// pdf invokes the browser's print-to-PDF and returns the document bytes.
func (s *rodSession) pdf(opts *proto.PagePrintToPDF) ([]byte, error) {
	reader, err := s.page.PDF(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	buf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return buf, nil
}

// stop tears the session down. Close failures are logged, never returned;
// a browser that refuses to close gets its process group killed. Calling
// stop before start, or twice, is a no-op.
func (s *rodSession) stop() {
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			s.log.Debug("closing page failed", "error", err)
		}
		s.page = nil
	}

	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.log.Warn("closing browser failed, killing process group", "error", err)
			if s.launcher != nil {
				process.KillGroup(s.launcher.PID())
			}
		}
		s.browser = nil
	}

	if s.launcher != nil {
		s.launcher.Cleanup()
		s.launcher = nil
	}
}
