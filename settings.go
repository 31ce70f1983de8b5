package cv2pdf

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-cv2pdf/internal/yamlutil"
)

// Paper format constants.
const (
	FormatA4     = "a4"
	FormatLetter = "letter"
	FormatLegal  = "legal"
)

// paperSizes maps a format name to {width, height} in inches.
// Chrome's print-to-PDF takes dimensions, not format names.
var paperSizes = map[string][2]float64{
	FormatA4:     {8.27, 11.69},
	FormatLetter: {8.5, 11},
	FormatLegal:  {8.5, 14},
}

// Device scale factor bounds.
const (
	MinDeviceScale = 1.0
	MaxDeviceScale = 3.0
)

// marginPattern matches a CSS length with an explicit unit, e.g. "0.4in".
var marginPattern = regexp.MustCompile(`^\d+(\.\d+)?(in|cm|mm|px)$`)

// Settings is the resolved, immutable configuration for one render run.
// Produce it with ResolveSettings or DefaultSettings; do not mutate it
// after handing it to a Pipeline.
type Settings struct {
	Document DocumentSettings
	Viewport ViewportSettings
	Timeouts TimeoutSettings
	Output   OutputSettings
}

// DocumentSettings configures the printed document.
type DocumentSettings struct {
	Format              string  // "a4", "letter", "legal"
	Scale               float64 // (0, 1]
	PrintBackground     bool
	Margin              Margins
	DisplayHeaderFooter bool
	OmitBackground      bool // transparent page background instead of white
}

// Margins holds one CSS length per side, e.g. "0.4in" or "10mm".
type Margins struct {
	Top    string
	Bottom string
	Left   string
	Right  string
}

// ViewportSettings configures the page viewport before rendering.
type ViewportSettings struct {
	Width             int
	Height            int
	DeviceScaleFactor float64 // [1, 3]
}

// TimeoutSettings bounds the loading stage.
type TimeoutSettings struct {
	PageLoad    time.Duration // deadline for initial DOM construction
	ImageRender time.Duration // flat settle delay for image loading
}

// OutputSettings configures where the PDF is written.
type OutputSettings struct {
	Filename string
}

// DefaultSettings returns the built-in defaults: A4 at full scale with
// 0.4in margins, a 2x desktop viewport, and cv.pdf as the output name.
func DefaultSettings() *Settings {
	return &Settings{
		Document: DocumentSettings{
			Format:          FormatA4,
			Scale:           1.0,
			PrintBackground: true,
			Margin: Margins{
				Top:    "0.4in",
				Bottom: "0.4in",
				Left:   "0.4in",
				Right:  "0.4in",
			},
		},
		Viewport: ViewportSettings{
			Width:             1240,
			Height:            1754,
			DeviceScaleFactor: 2,
		},
		Timeouts: TimeoutSettings{
			PageLoad:    30 * time.Second,
			ImageRender: 2 * time.Second,
		},
		Output: OutputSettings{Filename: "cv.pdf"},
	}
}

// settingsFile mirrors the JSON settings document. Every field is a
// pointer so an absent field is distinguishable from a zero value and the
// merge can stay field-level.
type settingsFile struct {
	Document *documentFile `yaml:"document"`
	Viewport *viewportFile `yaml:"viewport"`
	Timeouts *timeoutsFile `yaml:"timeouts"`
	Output   *outputFile   `yaml:"output"`
}

type documentFile struct {
	Format              *string     `yaml:"format"`
	Scale               *float64    `yaml:"scale"`
	PrintBackground     *bool       `yaml:"printBackground"`
	Margin              *marginFile `yaml:"margin"`
	DisplayHeaderFooter *bool       `yaml:"displayHeaderFooter"`
	OmitBackground      *bool       `yaml:"omitBackground"`
}

type marginFile struct {
	Top    *string `yaml:"top"`
	Bottom *string `yaml:"bottom"`
	Left   *string `yaml:"left"`
	Right  *string `yaml:"right"`
}

type viewportFile struct {
	Width             *int     `yaml:"width"`
	Height            *int     `yaml:"height"`
	DeviceScaleFactor *float64 `yaml:"deviceScaleFactor"`
}

// timeoutsFile carries milliseconds, as written in the settings document.
type timeoutsFile struct {
	PageLoad    *float64 `yaml:"pageLoad"`
	ImageRender *float64 `yaml:"imageRender"`
}

type outputFile struct {
	Filename *string `yaml:"filename"`
}

// ResolveSettings loads the settings document at path, validates it, and
// merges it over the built-in defaults.
//
// A missing or unreadable file is tolerated with a warning and the
// defaults are returned; an operator who never wrote a settings file gets
// a working conversion. A file that is present but malformed or out of
// domain is a hard error, so a typo never silently degrades to defaults.
func ResolveSettings(path string, log *slog.Logger) (*Settings, error) {
	if log == nil {
		log = slog.Default()
	}
	defaults := DefaultSettings()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- settings path is user-provided
	if err != nil {
		log.Warn("settings file not readable, using defaults", "path", path, "error", err)
		return defaults, nil
	}

	var file settingsFile
	if err := yamlutil.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}

	if err := file.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigInvalid, path, err)
	}

	return mergeSettings(defaults, &file), nil
}

// validate checks every supplied field against its domain. Rules are
// independent; the first violation is returned.
func (f *settingsFile) validate() error {
	if d := f.Document; d != nil {
		if d.Format != nil {
			if _, ok := paperSizes[strings.ToLower(*d.Format)]; !ok {
				return fmt.Errorf("%w: %q (must be a4, letter, or legal)", ErrInvalidFormat, *d.Format)
			}
		}
		if d.Scale != nil && (*d.Scale <= 0 || *d.Scale > 1) {
			return fmt.Errorf("%w: %g (must be in (0, 1])", ErrInvalidScale, *d.Scale)
		}
		if m := d.Margin; m != nil {
			sides := []struct {
				name  string
				value *string
			}{
				{"top", m.Top},
				{"bottom", m.Bottom},
				{"left", m.Left},
				{"right", m.Right},
			}
			for _, side := range sides {
				if side.value != nil && !marginPattern.MatchString(*side.value) {
					return fmt.Errorf("%w: %s %q (must be a length with unit, e.g. 0.4in)",
						ErrInvalidMargin, side.name, *side.value)
				}
			}
		}
	}

	if v := f.Viewport; v != nil {
		if v.Width != nil && *v.Width <= 0 {
			return fmt.Errorf("%w: width %d (must be positive)", ErrInvalidViewport, *v.Width)
		}
		if v.Height != nil && *v.Height <= 0 {
			return fmt.Errorf("%w: height %d (must be positive)", ErrInvalidViewport, *v.Height)
		}
		if v.DeviceScaleFactor != nil && (*v.DeviceScaleFactor < MinDeviceScale || *v.DeviceScaleFactor > MaxDeviceScale) {
			return fmt.Errorf("%w: %g (must be between %g and %g)",
				ErrInvalidDeviceScale, *v.DeviceScaleFactor, MinDeviceScale, MaxDeviceScale)
		}
	}

	if t := f.Timeouts; t != nil {
		if t.PageLoad != nil && *t.PageLoad <= 0 {
			return fmt.Errorf("%w: pageLoad %g ms (must be positive)", ErrInvalidTimeout, *t.PageLoad)
		}
		if t.ImageRender != nil && *t.ImageRender < 0 {
			return fmt.Errorf("%w: imageRender %g ms (must be non-negative)", ErrInvalidTimeout, *t.ImageRender)
		}
	}

	return nil
}

// mergeSettings overlays the supplied file onto the defaults field by
// field. The margin quad merges per side: overriding only "top" keeps the
// default bottom, left, and right.
func mergeSettings(defaults *Settings, f *settingsFile) *Settings {
	s := *defaults

	if d := f.Document; d != nil {
		if d.Format != nil {
			s.Document.Format = strings.ToLower(*d.Format)
		}
		if d.Scale != nil {
			s.Document.Scale = *d.Scale
		}
		if d.PrintBackground != nil {
			s.Document.PrintBackground = *d.PrintBackground
		}
		if d.DisplayHeaderFooter != nil {
			s.Document.DisplayHeaderFooter = *d.DisplayHeaderFooter
		}
		if d.OmitBackground != nil {
			s.Document.OmitBackground = *d.OmitBackground
		}
		if m := d.Margin; m != nil {
			if m.Top != nil {
				s.Document.Margin.Top = *m.Top
			}
			if m.Bottom != nil {
				s.Document.Margin.Bottom = *m.Bottom
			}
			if m.Left != nil {
				s.Document.Margin.Left = *m.Left
			}
			if m.Right != nil {
				s.Document.Margin.Right = *m.Right
			}
		}
	}

	if v := f.Viewport; v != nil {
		if v.Width != nil {
			s.Viewport.Width = *v.Width
		}
		if v.Height != nil {
			s.Viewport.Height = *v.Height
		}
		if v.DeviceScaleFactor != nil {
			s.Viewport.DeviceScaleFactor = *v.DeviceScaleFactor
		}
	}

	if t := f.Timeouts; t != nil {
		if t.PageLoad != nil {
			s.Timeouts.PageLoad = time.Duration(*t.PageLoad * float64(time.Millisecond))
		}
		if t.ImageRender != nil {
			s.Timeouts.ImageRender = time.Duration(*t.ImageRender * float64(time.Millisecond))
		}
	}

	if o := f.Output; o != nil {
		if o.Filename != nil {
			s.Output.Filename = *o.Filename
		}
	}

	return &s
}

// parseLength converts a validated CSS length ("0.4in", "10mm", "1cm",
// "96px") to inches, the unit Chrome's print endpoint expects.
func parseLength(length string) (float64, error) {
	unitsPerInch := map[string]float64{
		"in": 1,
		"cm": 2.54,
		"mm": 25.4,
		"px": 96,
	}
	for unit, per := range unitsPerInch {
		if strings.HasSuffix(length, unit) {
			value, err := strconv.ParseFloat(strings.TrimSuffix(length, unit), 64)
			if err != nil {
				return 0, fmt.Errorf("%w: %q", ErrInvalidMargin, length)
			}
			return value / per, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (unit must be in, cm, mm, or px)", ErrInvalidMargin, length)
}
