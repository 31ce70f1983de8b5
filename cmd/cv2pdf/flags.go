package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// Default file names, relative to the working directory.
const (
	defaultConfigFile = "cv-config.json"
	defaultInputFile  = "index.html"
)

// cliFlags holds parsed command-line flags.
type cliFlags struct {
	config  string
	input   string
	output  string
	verbose bool
	quiet   bool
	version bool
	help    bool
}

// parseFlags parses args (including the program name at args[0]).
// A positional argument, if present, overrides --input.
func parseFlags(args []string) (*cliFlags, error) {
	fs := flag.NewFlagSet("cv2pdf", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	f := &cliFlags{}
	fs.StringVarP(&f.config, "config", "c", defaultConfigFile, "settings file (JSON)")
	fs.StringVarP(&f.input, "input", "i", defaultInputFile, "input HTML document")
	fs.StringVarP(&f.output, "output", "o", "", "output PDF path (default: from settings, alongside input)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "errors only")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}

	if rest := fs.Args(); len(rest) > 0 {
		if len(rest) > 1 {
			return nil, fmt.Errorf("unexpected arguments: %v", rest[1:])
		}
		f.input = rest[0]
	}

	return f, nil
}

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cv2pdf [flags] [input.html]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a résumé HTML page into a print-quality PDF via headless Chrome.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -i, --input <path>    Input HTML document (default: index.html)")
	fmt.Fprintln(w, "  -o, --output <path>   Output PDF path (default: from settings, alongside input)")
	fmt.Fprintln(w, "  -c, --config <path>   Settings file, JSON (default: cv-config.json)")
	fmt.Fprintln(w, "  -v, --verbose         Debug logging")
	fmt.Fprintln(w, "  -q, --quiet           Errors only")
	fmt.Fprintln(w, "      --version         Print version and exit")
	fmt.Fprintln(w, "  -h, --help            Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A missing settings file falls back to built-in defaults; an invalid one")
	fmt.Fprintln(w, "is a hard error.")
}
