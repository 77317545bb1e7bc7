package main

import (
	"errors"
	"flag"
	"fmt"
	"github.com/musikpolice/musiccleanup"
	"github.com/musikpolice/musiccleanup/cmd/musiccleanup/flags"
	"github.com/musikpolice/musiccleanup/internal/config"
	"github.com/musikpolice/musiccleanup/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/term"
	"io"
	"os"
	"strings"
)

type CliRequest struct {
	verbose    bool
	quiet      bool
	plain      bool
	debug      bool
	configPath string
	strategy   string
	threshold  int
	root       string
}

func parseFlags(args []string, out io.Writer, errOut io.Writer) (request *CliRequest, exitCode int) {
	flagSet := flag.NewFlagSet("musiccleanup", flag.ContinueOnError)
	flagSet.SetOutput(out)
	flagSet.Usage = func() {
		fmt.Fprint(flagSet.Output(), `
Usage:
   musiccleanup [-v|-q] [-p] [-debug] [-config FILE] [-strategy exact|fuzzy] [-threshold N] [ROOT]

 Tidies up the music library below ROOT interactively: combines similarly named
 folders, renames odd folder names, and removes unwanted files and empty folders.
 If ROOT is omitted you are asked for it.

`)
		flagSet.PrintDefaults()
		fmt.Fprintln(flagSet.Output())
	}

	request = &CliRequest{}
	var helpRequested bool
	flagSet.BoolVar(&request.verbose, flags.Verbose, false, "Output more details on what is done, e.g. previews of merges (verbose mode)")
	flagSet.BoolVar(&request.quiet, flags.Quiet, false, "Output as little as possible, only questions and problems (quiet mode)")
	flagSet.BoolVar(&request.plain, flags.Plain, false, "Do not use terminal escape sequences (plain mode)")
	flagSet.BoolVar(&helpRequested, flags.Help, false, "Display usage help")
	flagSet.BoolVar(&request.debug, flags.Debug, false, "Write debug events to the log file")
	flagSet.StringVar(&request.configPath, flags.Config, "", "Read settings from this TOML file instead of searching the XDG config directories")
	flagSet.StringVar(&request.strategy, flags.Strategy, "", "Folder name matching: \"exact\" (canonical names) or \"fuzzy\" (partial ratio)")
	flagSet.IntVar(&request.threshold, flags.Threshold, 0, "Minimum fuzzy score 1..100 for two names to count as similar")

	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(errOut, "%s\nUsage help: musiccleanup -h\n", err)
			exitCode = 2
			request = nil
		}
	}()

	if err = flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			err = nil
			return nil, 0
		}
		return
	}
	if helpRequested {
		flagSet.Usage()
		return nil, 0
	}
	if request.verbose && request.quiet {
		err = errors.New("Quiet mode and verbose mode are mutually exclusive!")
		return
	}
	switch flagSet.NArg() {
	case 0:
	case 1:
		request.root = flagSet.Arg(0)
	default:
		err = errors.New("too many arguments, at most one library root expected")
		return
	}
	return request, 0
}

// settings merges the config file with the flags, flags taking precedence.
func (rq *CliRequest) settings(fsys afero.Fs) (config.Values, error) {
	path := rq.configPath
	if path == "" {
		path = config.Find()
	}
	vals, err := config.Load(fsys, path)
	if err != nil {
		return vals, err
	}
	if rq.strategy != "" {
		vals.Matching.Strategy = rq.strategy
	}
	if rq.threshold != 0 {
		vals.Matching.Threshold = rq.threshold
	}
	vals.DebugLogging = vals.DebugLogging || rq.debug
	if err := vals.Validate(); err != nil {
		return vals, fmt.Errorf("bad settings: %w", err)
	}
	return vals, nil
}

func (rq *CliRequest) createConfig(vals config.Values) (cfg musiccleanup.CreateConfig) {
	if rq.verbose {
		cfg.Verbosity = musiccleanup.VerboseMode
	}
	if rq.quiet {
		cfg.Verbosity = musiccleanup.QuietMode
	}
	cfg.Plain = rq.plain || !term.IsTerminal(int(os.Stdout.Fd()))
	cfg.Matching = vals.Matching.Strategy
	cfg.Threshold = vals.Matching.Threshold
	return
}

func (rq *CliRequest) execute() error {
	vals, err := rq.settings(afero.NewOsFs())
	if err != nil {
		return err
	}

	if logPath, err := logging.DefaultPath(); err == nil {
		defer logging.Init(logPath, vals.DebugLogging).Close()
	} else {
		logging.Disable()
		if !rq.quiet {
			fmt.Fprintf(os.Stderr, "(not logging: %s)\n", err)
		}
	}

	cfg := rq.createConfig(vals)
	prompt := NewTerminalPrompt(!cfg.Plain)

	root := rq.root
	if root == "" {
		answer, aborted := prompt.AskText("Which folder contains your music library?")
		root = strings.TrimSpace(answer)
		if aborted || root == "" {
			return errors.New("no library root given")
		}
	}

	cleaner, err := musiccleanup.New(root, cfg)
	if err != nil {
		return err
	}
	return runMenu(cleaner, prompt, os.Stdout)
}

type menuEntry struct {
	label string
	run   func(musiccleanup.Cleaner, musiccleanup.OperatorPrompt) (musiccleanup.Outcome, error)
}

var menu = []menuEntry{
	{"Combine similar folders", func(c musiccleanup.Cleaner, p musiccleanup.OperatorPrompt) (musiccleanup.Outcome, error) {
		return c.CombineSimilar(p, false)
	}},
	{"Combine similar folders (recursive)", func(c musiccleanup.Cleaner, p musiccleanup.OperatorPrompt) (musiccleanup.Outcome, error) {
		return c.CombineSimilar(p, true)
	}},
	{"Rename folders with non-alphanumeric names", func(c musiccleanup.Cleaner, p musiccleanup.OperatorPrompt) (musiccleanup.Outcome, error) {
		return c.RenameNonAlphanumeric(p, false)
	}},
	{"Rename folders with non-alphanumeric names (recursive)", func(c musiccleanup.Cleaner, p musiccleanup.OperatorPrompt) (musiccleanup.Outcome, error) {
		return c.RenameNonAlphanumeric(p, true)
	}},
	{"Combine folders ignoring \"The\" and \"A\" prefixes", func(c musiccleanup.Cleaner, p musiccleanup.OperatorPrompt) (musiccleanup.Outcome, error) {
		return c.CombineIgnoringPrefixes(p)
	}},
	{"Delete unwanted file types", func(c musiccleanup.Cleaner, p musiccleanup.OperatorPrompt) (musiccleanup.Outcome, error) {
		return c.DeleteUnwantedFileTypes(p)
	}},
	{"Delete empty folders", func(c musiccleanup.Cleaner, _ musiccleanup.OperatorPrompt) (musiccleanup.Outcome, error) {
		_, err := c.DeleteEmptyDirectories()
		return musiccleanup.Continue, err
	}},
}

// runMenu offers the operations until the operator quits. An aborted operation returns to the menu.
func runMenu(cleaner musiccleanup.Cleaner, prompt musiccleanup.OperatorPrompt, out io.Writer) error {
	quit := len(menu) + 1
	for {
		fmt.Fprintf(out, "\nLibrary: %s\n", cleaner.Root())
		for i, entry := range menu {
			fmt.Fprintf(out, "%d. %s\n", i+1, entry.label)
		}
		fmt.Fprintf(out, "%d. Quit\n", quit)

		answer, aborted := prompt.AskText("What would you like to do?")
		if aborted {
			return nil
		}
		choice := strings.ToLower(strings.TrimSpace(answer))
		if choice == "q" || choice == "quit" || choice == fmt.Sprint(quit) {
			return nil
		}
		var selected *menuEntry
		for i := range menu {
			if choice == fmt.Sprint(i+1) {
				selected = &menu[i]
			}
		}
		if selected == nil {
			fmt.Fprintf(out, "Please choose a number between 1 and %d.\n", quit)
			continue
		}

		log.Info().Str("operation", selected.label).Msg("operation started")
		outcome, err := selected.run(cleaner, prompt)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			log.Error().Err(err).Str("operation", selected.label).Msg("operation failed")
			continue
		}
		if outcome == musiccleanup.Abort {
			fmt.Fprintln(out, "Aborted, back to the menu.")
		}
	}
}

func main() {
	rq, rc := parseFlags(os.Args[1:], os.Stdout, os.Stderr)
	if rc != 0 || rq == nil {
		os.Exit(rc)
	}
	if err := rq.execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}
