package cv2pdf

// Notes:
// - fakeSession implements the session interface without a browser
// - eval answers the loader probes from imageCount/imagesDone and
//   records every script it was given
// - newTestLogger discards output; tests assert behavior, not log text

import (
	"io"
	"log/slog"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

// fakeSession is a scriptable in-memory session.
type fakeSession struct {
	startErr   error
	navErr     error
	contentErr error
	evalErr    error
	omitErr    error
	pdfBytes   []byte
	pdfErr     error

	imageCount int
	imagesDone bool

	startCalls int
	stopCalls  int
	navigated  []string
	injected   []string
	evaluated  []string
	omitCalls  int
	pdfOpts    []*proto.PagePrintToPDF
}

// Compile-time interface check.
var _ session = (*fakeSession)(nil)

func (f *fakeSession) start(settings *Settings) error {
	f.startCalls++
	return f.startErr
}

func (f *fakeSession) navigate(url string, timeout time.Duration) error {
	f.navigated = append(f.navigated, url)
	return f.navErr
}

func (f *fakeSession) setContent(html string) error {
	f.injected = append(f.injected, html)
	return f.contentErr
}

func (f *fakeSession) eval(js string) (*proto.RuntimeRemoteObject, error) {
	f.evaluated = append(f.evaluated, js)
	if f.evalErr != nil {
		return nil, f.evalErr
	}
	switch js {
	case jsImageCount:
		return remoteObject(f.imageCount), nil
	case jsImagesComplete:
		return remoteObject(f.imagesDone), nil
	}
	return remoteObject(nil), nil
}

func (f *fakeSession) omitBackground() error {
	f.omitCalls++
	return f.omitErr
}

func (f *fakeSession) pdf(opts *proto.PagePrintToPDF) ([]byte, error) {
	f.pdfOpts = append(f.pdfOpts, opts)
	if f.pdfErr != nil {
		return nil, f.pdfErr
	}
	return f.pdfBytes, nil
}

func (f *fakeSession) stop() {
	f.stopCalls++
}

func remoteObject(v any) *proto.RuntimeRemoteObject {
	return &proto.RuntimeRemoteObject{Value: gson.New(v)}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
