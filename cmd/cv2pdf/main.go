package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	cv2pdf "github.com/alnah/go-cv2pdf"
	"github.com/alnah/go-cv2pdf/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsage(os.Stderr)
		os.Exit(ExitUsage)
	}

	if flags.help {
		printUsage(os.Stdout)
		os.Exit(ExitSuccess)
	}
	if flags.version {
		fmt.Println("cv2pdf " + Version)
		os.Exit(ExitSuccess)
	}

	log := newLogger(flags.verbose, flags.quiet)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		log.Debug(fmt.Sprintf(format, args...))
	}))

	if err := run(flags, log); err != nil {
		log.Error(err.Error())
		printHint(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// printHint appends an actionable hint for known failure classes.
func printHint(w *os.File, err error) {
	switch {
	case errors.Is(err, cv2pdf.ErrBrowserConnect):
		fmt.Fprintln(w, hints.ForBrowserConnect())
	case errors.Is(err, cv2pdf.ErrPageLoad):
		fmt.Fprintln(w, hints.ForPageLoad())
	}
}
