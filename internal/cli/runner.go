package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

// exitError carries the process exit code (1 error, 2 usage or invalid input).
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageErr(format string, a ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, a...)}
}

// ExitCode maps an Execute error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageErr("%v\nusage: %s", err, cmd.UseLine())
		}
		return nil
	}
}

// NewRootCmd builds the tada command tree.
func NewRootCmd() *cobra.Command {
	opt := &Options{}
	root := &cobra.Command{
		Use:   "tada",
		Short: "tada - a categorized list in your terminal",
		Long: `tada keeps a list of short items grouped by category.

Run without arguments to open the interactive list.`,
		Example: `  tada add "Buy milk"
  tada add -c work "Write report"
  tada ls -s milk
  tada edit 3f2a "Buy oat milk"
  tada rm 3f2a
  tada clear`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isInteractive(cmd.InOrStdin()) || !isInteractive(cmd.OutOrStdout()) {
				return runList(cmd, opt, "", "")
			}
			return runTUI(opt)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErr("%v", err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&opt.ConfigPath, "config", "", "config file (default ~/.tada/config.yaml)")
	pf.StringVar(&opt.Storage, "storage", "", "storage backend: json or sqlite")
	pf.StringVar(&opt.DataDir, "data-dir", "", "directory for items, database and log")
	pf.BoolVarP(&opt.Verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(addCmd(opt), lsCmd(opt), editCmd(opt), rmCmd(opt), clearCmd(opt), configCmd(opt))
	return root
}

// Run executes args with the given streams and returns an exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	oldOut, oldErr := ui.Stdout, ui.Stderr
	ui.Stdout, ui.Stderr = stdout, stderr
	defer func() { ui.Stdout, ui.Stderr = oldOut, oldErr }()

	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err != nil {
		ui.Fail(err.Error())
	}
	return ExitCode(err)
}

// Execute runs the CLI against the process streams.
func Execute() int {
	return Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func isInteractive(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runTUI(opt *Options) error {
	s, err := openSession(opt)
	if err != nil {
		return err
	}
	defer s.close()

	if err := tui.Run(s.store, s.renderer, s.cfg.Categories, s.log); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
