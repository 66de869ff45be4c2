// Package main is the entry point for the vscompat extension runner.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dshills/vscompat/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	var err error
	switch args[0] {
	case "run":
		err = runExtension(args[1:], stdout, stderr)
	case "commands":
		err = listCommands(args[1:], stdout, stderr)
	case "version", "-version", "--version":
		fmt.Fprintf(stdout, "vscompat %s\nCommit: %s\nBuilt: %s\n", version, commit, date)
	case "help", "-h", "-help", "--help":
		usage(stdout)
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}

	if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "vscompat - run editor extensions against the compatibility API\n\n")
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, "  vscompat run -ext DIR [-file PATH] [-settings FILE] [-command ID] [-args JSON]\n")
	fmt.Fprintf(w, "               [-save] [-watch [-watch-for D]] [-toast log|terminal]\n")
	fmt.Fprintf(w, "  vscompat commands -ext DIR\n")
	fmt.Fprintf(w, "  vscompat version\n")
}

type runOptions struct {
	extDir    string
	file      string
	settings  string
	command   string
	args      string
	save      bool
	watch     bool
	watchFor  time.Duration
	toast     string
	timeout   time.Duration
	verbosity int
	logFile   string
}

func (o *runOptions) bind(fs *flag.FlagSet) {
	fs.StringVar(&o.extDir, "ext", "", "Extension directory containing package.json")
	fs.IntVar(&o.verbosity, "v", 0, "Log verbosity (0 errors only, 4 debug)")
	fs.StringVar(&o.logFile, "log", "", "Write logs to this file instead of stderr")
	fs.DurationVar(&o.timeout, "timeout", 5*time.Second, "Limit for each call into the extension")
}

func runExtension(args []string, stdout, stderr io.Writer) error {
	var opts runOptions
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts.bind(fs)
	fs.StringVar(&opts.file, "file", "", "File to open before activation")
	fs.StringVar(&opts.settings, "settings", "", "Settings file (.toml, .yaml or .json)")
	fs.StringVar(&opts.command, "command", "", "Command to execute after activation")
	fs.StringVar(&opts.args, "args", "", "JSON array of command arguments")
	fs.BoolVar(&opts.save, "save", false, "Save the file after the command runs")
	fs.BoolVar(&opts.watch, "watch", false, "Keep the extension active and reload -settings on change")
	fs.DurationVar(&opts.watchFor, "watch-for", 0, "Stop watching after this long (0 waits for an interrupt)")
	fs.StringVar(&opts.toast, "toast", "log", "Where messages are shown: log or terminal")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.extDir == "" {
		fs.Usage()
		return errUsage
	}
	if opts.watch && opts.settings == "" {
		return errors.New("-watch needs -settings")
	}
	cmdArgs, err := parseArgs(opts.args)
	if err != nil {
		return err
	}

	logging.Configure(opts.verbosity, opts.logFile)
	log := logging.New("cli")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := newRunner(opts)
	if err != nil {
		return err
	}
	defer rt.close()

	if err := rt.start(ctx); err != nil {
		return err
	}

	rep := newReport(rt.manifest)
	if opts.command != "" {
		log.Debug("executing %s", opts.command)
		res, err := rt.api.Commands.ExecuteCommand(ctx, opts.command, cmdArgs...)
		rep.setResult(opts.command, res, err)
	}
	if opts.save && rt.file != nil {
		if err := rt.manager.SaveFile(rt.file.ID()); err != nil {
			return fmt.Errorf("saving %s: %w", opts.file, err)
		}
	}

	if opts.watch {
		wctx := ctx
		if opts.watchFor > 0 {
			var cancel context.CancelFunc
			wctx, cancel = context.WithTimeout(ctx, opts.watchFor)
			defer cancel()
		}
		log.Info("watching %s", opts.settings)
		if err := rt.watchSettings(wctx); err != nil {
			return err
		}
	}
	rt.closeScreen()

	rep.setState(rt.ext.State())
	rep.setCommands(rt.api.Commands.GetCommands(true))
	rep.setMessages(rt.toasts())
	rep.setChanges(rt.didChanges())
	if ed := rt.api.Window.ActiveTextEditor(); ed != nil {
		rep.setDocument(ed.Document())
	}
	_, err = stdout.Write(append(rep.bytes(), '\n'))
	return err
}

func listCommands(args []string, stdout, stderr io.Writer) error {
	var opts runOptions
	fs := flag.NewFlagSet("commands", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts.bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.extDir == "" {
		fs.Usage()
		return errUsage
	}
	logging.Configure(opts.verbosity, opts.logFile)

	rt, err := newRunner(opts)
	if err != nil {
		return err
	}
	defer rt.close()
	if err := rt.start(context.Background()); err != nil {
		return err
	}

	for _, id := range rt.api.Commands.GetCommands(true) {
		if desc := rt.manifest.Contributions.Description(id); desc != "" {
			fmt.Fprintf(stdout, "%s\t%s\n", id, desc)
			continue
		}
		fmt.Fprintln(stdout, id)
	}
	return nil
}

// parseArgs decodes a JSON array of command arguments.
func parseArgs(raw string) ([]any, error) {
	if raw == "" {
		return nil, nil
	}
	if !gjson.Valid(raw) || !gjson.Parse(raw).IsArray() {
		return nil, fmt.Errorf("-args must be a JSON array, got %q", raw)
	}
	var out []any
	for _, v := range gjson.Parse(raw).Array() {
		out = append(out, v.Value())
	}
	return out, nil
}
