package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const logLevelEnv = "SIMLAB_LOG_LEVEL"

// options are the flags shared by every command.
type options struct {
	json     bool
	logLevel string
}

func newFlagSet(name, help string, opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() { fmt.Fprint(fs.Output(), help) }

	level := os.Getenv(logLevelEnv)
	if level == "" {
		level = "info"
	}
	fs.BoolVar(&opts.json, "json", false, "write the result as JSON")
	fs.StringVar(&opts.logLevel, "log-level", level, "log level (debug, info, warn, error)")
	return fs
}

// logger returns a stderr logger tagged with the command and a fresh run id.
func (o options) logger(command string) (*log.Logger, error) {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(o.logLevel)))
	if err != nil {
		return nil, err
	}
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "simlab",
		Level:           level,
	})
	return l.With("command", command, "run", uuid.New().String()), nil
}

// parse parses args into fs and builds the command logger. Errors are
// reported here so commands can simply return them.
func parse(fs *flag.FlagSet, opts *options, args []string) (*log.Logger, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		fmt.Fprintln(fs.Output(), err)
		fs.Usage()
		return nil, err
	}
	l, err := opts.logger(fs.Name())
	if err != nil {
		fmt.Fprintln(fs.Output(), err)
		return nil, err
	}
	return l, nil
}

// fail logs err and hands it back.
func fail(l *log.Logger, err error) error {
	l.Error("failed", "err", err)
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
