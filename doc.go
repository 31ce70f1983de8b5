// Package cv2pdf renders a static résumé page (HTML/CSS) into a
// print-quality PDF using headless Chrome.
//
// # Quick Start
//
// Resolve settings, build a pipeline, and run it:
//
//	settings, err := cv2pdf.ResolveSettings("cv-config.json", logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p := cv2pdf.NewPipeline(settings, cv2pdf.WithLogger(logger))
//	path, err := p.Run(ctx, "index.html", "cv.pdf")
//
// # Rendering Pipeline
//
// One invocation converts exactly one document through these stages:
//
//  1. Settings resolution (JSON file merged field-by-field over defaults)
//  2. Render session start (headless Chrome via go-rod, viewport applied)
//  3. Content loading (file:// navigation with a raw-markup injection
//     fallback, then a bounded image settle wait)
//  4. In-page transformation (asset URL rewriting, print-safe palette,
//     page-break hints, expanding collapsed regions, hiding interactive
//     controls)
//  5. Print-to-PDF capture written to the output path
//
// The browser session is torn down on every exit path; a failed stage
// aborts the run with a typed error. Content loading degrades gracefully:
// an unreachable remote stylesheet or a half-loaded image never fails a
// conversion, it is only logged.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. go-rod downloads a managed
// Chromium on first run (~/.cache/rod/browser/). The browser is always
// launched headless without the OS sandbox so the tool works in containers
// and CI. Use ROD_BROWSER_BIN to point at a pre-installed Chrome binary.
package cv2pdf
