package cv2pdf

import (
	"fmt"
	"log/slog"
)

// pageMutation is one step of the in-page transformation sequence: a
// named script executed against the live document before capture. Every
// script selects by class or structure, treats zero matches as a no-op,
// and is idempotent, so running the sequence twice yields the same page
// state as running it once.
type pageMutation struct {
	name string
	js   string
}

// pageMutations is the fixed transformation order. Rewriting runs first
// so locally-referenced assets resolve before anything is measured;
// hiding and normalization run last.
var pageMutations = []pageMutation{
	{name: "rewrite-asset-urls", js: jsRewriteAssetURLs},
	{name: "print-palette", js: jsPrintPalette},
	{name: "section-title-accent", js: jsSectionTitleAccent},
	{name: "page-break-hints", js: jsPageBreakHints},
	{name: "expand-collapsed", js: jsExpandCollapsed},
	{name: "hide-interactive", js: jsHideInteractive},
	{name: "normalize-media", js: jsNormalizeMedia},
}

// jsRewriteAssetURLs rewrites image references that point at the site's
// own hosted assets (an absolute URL with an /assets/ path) into paths
// relative to the local document, so file:// loading works offline.
// Once rewritten the src is relative and the selector no longer matches.
const jsRewriteAssetURLs = `() => {
	document.querySelectorAll('img[src^="http://"], img[src^="https://"]').forEach(img => {
		try {
			const u = new URL(img.getAttribute('src'));
			const i = u.pathname.indexOf('/assets/');
			if (i !== -1) img.setAttribute('src', u.pathname.slice(i + 1));
		} catch (e) {
			// not a parseable URL, leave it alone
		}
	});
}`

// jsPrintPalette forces a light background and dark text regardless of
// the live theme. A dark web theme prints as an unreadable gray slab.
const jsPrintPalette = `() => {
	document.documentElement.style.background = '#ffffff';
	document.body.style.background = '#ffffff';
	document.body.style.color = '#1a1a1a';
	document.querySelectorAll('h1, h2, h3, h4, h5, h6').forEach(el => {
		el.style.color = '#111111';
	});
	document.querySelectorAll('p, li, em, strong, small, blockquote').forEach(el => {
		el.style.color = '#1a1a1a';
	});
	document.querySelectorAll('span[style*="color"]').forEach(el => {
		el.style.color = '#1a1a1a';
	});
}`

// jsSectionTitleAccent re-applies the section title accent so the printed
// styling does not depend on the stylesheet's runtime state.
const jsSectionTitleAccent = `() => {
	document.querySelectorAll('.section-title').forEach(el => {
		el.style.borderBottom = '2px solid #2a7ae2';
		el.style.paddingBottom = '4px';
		el.style.marginBottom = '12px';
	});
}`

// jsPageBreakHints biases pagination toward keeping a title glued to the
// start of its content. Plain list text is deliberately left breakable so
// long entries can span pages; orphan/widow minimums apply instead.
const jsPageBreakHints = `() => {
	document.querySelectorAll('section, .section, .entry, .content-block, article').forEach(el => {
		el.style.breakInside = 'avoid';
		el.style.pageBreakInside = 'avoid';
	});
	document.querySelectorAll('h1, h2, h3, h4, h5, h6').forEach(el => {
		el.style.breakAfter = 'avoid';
		el.style.pageBreakAfter = 'avoid';
		el.style.breakInside = 'avoid';
		el.style.pageBreakInside = 'avoid';
	});
	document.querySelectorAll('li > ul > li:first-child, li > ol > li:first-child').forEach(el => {
		el.style.breakBefore = 'avoid';
		el.style.pageBreakBefore = 'avoid';
	});
	document.querySelectorAll('p, li').forEach(el => {
		el.style.orphans = '2';
		el.style.widows = '2';
	});
}`

// jsExpandCollapsed force-expands collapsible regions. Collapse is a
// web-only affordance; nothing may stay hidden in the fixed capture.
const jsExpandCollapsed = `() => {
	document.querySelectorAll('details').forEach(el => {
		el.open = true;
	});
	document.querySelectorAll('.collapsible, .accordion, .collapse').forEach(el => {
		el.classList.remove('collapsed');
		el.style.display = 'block';
		el.style.maxHeight = 'none';
		el.style.overflow = 'visible';
	});
	document.querySelectorAll('[aria-expanded]').forEach(el => {
		el.setAttribute('aria-expanded', 'true');
	});
}`

// jsHideInteractive hides controls that only make sense on the live page.
const jsHideInteractive = `() => {
	document.querySelectorAll('.download-btn, .download-pdf, #download-pdf').forEach(el => {
		el.style.display = 'none';
	});
	document.querySelectorAll('footer button, footer [role="button"]').forEach(el => {
		el.style.display = 'none';
	});
}`

// jsNormalizeMedia gives links one consistent color and constrains images
// to their container width with preserved aspect ratio.
const jsNormalizeMedia = `() => {
	document.querySelectorAll('a').forEach(el => {
		el.style.color = '#0b57d0';
	});
	document.querySelectorAll('img').forEach(el => {
		el.style.maxWidth = '100%';
		el.style.height = 'auto';
	});
}`

// domTransformer applies the mutation sequence to the live page.
type domTransformer struct {
	log *slog.Logger
}

// apply executes every mutation in order. A script evaluation failure
// aborts the run; a script that matched no elements succeeds as a no-op.
func (t *domTransformer) apply(sess session) error {
	for _, m := range pageMutations {
		t.log.Debug("applying page mutation", "mutation", m.name)
		if _, err := sess.eval(m.js); err != nil {
			return fmt.Errorf("%w: applying %s: %v", ErrPDFGeneration, m.name, err)
		}
	}
	return nil
}
