package cli

import (
	"flag"
	"io"
	"strings"
)

const versionString = "1.0.0"
const defaultConfigPath = "./doctypes.toml"

type cliOptions struct {
	configPath  string
	format      string
	outPath     string
	watch       bool
	ui          bool
	history     bool
	metricsAddr string
	verbose     bool
	version     bool

	comment   string
	namespace string
	uses      stringList

	args []string
}

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func parseOptions(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("doctypes", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", defaultConfigPath, "Path to config file")
	fs.StringVar(&opts.format, "format", "", "Report format: text, tsv, json, markdown, yaml or openapi")
	fs.StringVar(&opts.outPath, "out", "", "Write the report to this path instead of stdout")
	fs.BoolVar(&opts.watch, "watch", false, "Keep running and rescan on file changes")
	fs.BoolVar(&opts.ui, "ui", false, "Enable terminal UI mode (implies -watch)")
	fs.BoolVar(&opts.history, "history", false, "Record scan runs in the local history database")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve /metrics and /health on this address")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	fs.StringVar(&opts.comment, "comment", "", "Resolve the @return tag of this comment and exit")
	fs.StringVar(&opts.namespace, "namespace", "", "Namespace the -comment is resolved in")
	fs.Var(&opts.uses, "use", "Import visible to -comment: `Name` or `Name as Alias` (repeatable)")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	opts.args = fs.Args()
	return opts, nil
}
