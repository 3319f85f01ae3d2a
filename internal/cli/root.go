// Package cli wires the command-line surface: one subcommand per API
// action, global connection flags, and the mapping from error kinds to
// exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ilcreatore32/clo/internal/config"
	"github.com/ilcreatore32/clo/internal/domain"
	"github.com/ilcreatore32/clo/internal/odoo"
	"github.com/ilcreatore32/clo/internal/output"
)

// Exit codes, matching the original clo tooling.
const (
	ExitOK        = 0
	ExitDomain    = 1
	ExitUsage     = 2
	ExitAuth      = 10
	ExitOperation = 30
	ExitFault     = 100
	ExitProtocol  = 200
	ExitAborted   = 250
)

// Version is the program version reported by --version.
const Version = "1.0.0"

// UsageError marks invocations the flag layer rejected.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// App holds the command tree and the settings shared by all actions.
type App struct {
	root *cobra.Command

	// global flag values
	model    string
	instance string
	database string
	username string
	password string
	envFile  string
	outPath  string
	logLevel string
	dryRun   bool
	skipTLS  bool
	demo     bool

	demoURL string

	stdin    io.Reader
	stderr   io.Writer
	out      io.Writer
	outClose func() error
	logger   *zap.Logger
	prompter config.Prompter
}

// New builds the command tree.
func New() *App {
	app := &App{
		stdin:    os.Stdin,
		stderr:   os.Stderr,
		logger:   zap.NewNop(),
		prompter: config.NewTerminalPrompter(),
		demoURL:  config.DemoHost,
	}

	root := &cobra.Command{
		Use:           "clo",
		Short:         "Perform API operations on Odoo instances via the command-line",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.demo {
				return app.demoCredentials(cmd)
			}
			return cmd.Help()
		},
	}

	// Flag-parse failures must exit 2, not the generic operation code.
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&app.model, "model", "m", string(odoo.ModelResUsers),
		"The Odoo model to perform an action on. Run `clo explain models` to list available options.")
	pf.StringVar(&app.instance, "instance", "",
		"The address of the Odoo instance (env "+config.EnvInstance+").")
	pf.StringVar(&app.database, "database", "",
		"The application database to perform operations on (env "+config.EnvDatabase+").")
	pf.StringVar(&app.username, "user", "",
		"The user to perform operations as (env "+config.EnvUsername+").")
	pf.StringVar(&app.password, "pass", "",
		"The user's password or API key (env "+config.EnvPassword+").")
	pf.StringVar(&app.envFile, "env", config.DefaultRCPath(),
		"Path to a `"+config.RCName+"` file with OD_* declarations.")
	pf.StringVar(&app.outPath, "out", "",
		"Where to stream the output (default stdout).")
	pf.StringVar(&app.logLevel, "log", "ERROR",
		"The level of logs to produce, one of OFF, FATAL, ERROR, WARN, INFO, DEBUG.")
	pf.BoolVar(&app.dryRun, "dry-run", false,
		`Perform a "practice" run of the action; implies --log=DEBUG.`)
	pf.BoolVar(&app.skipTLS, "skip-tls-verify", false,
		"Skip TLS certificate verification. Do not use in production.")
	pf.BoolVar(&app.demo, "demo", false,
		"Generate a demo instance from Odoo Cloud and print its OD_* declarations.")

	// Accept the original tooling's alternate long spellings.
	pf.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "inst":
			name = "instance"
		case "db":
			name = "database"
		}
		return pflag.NormalizedName(name)
	})

	root.AddCommand(
		app.searchCommand(),
		app.countCommand(),
		app.readCommand(),
		app.findCommand(),
		app.createCommand(),
		app.writeCommand(),
		app.deleteCommand(),
		app.fieldsCommand(),
		app.explainCommand(),
	)

	app.root = root
	return app
}

// Execute runs the CLI and returns the process exit code. Errors print to
// stderr; results print to --out.
func (a *App) Execute(ctx context.Context, args []string) int {
	a.root.SetArgs(args)
	a.root.SetOut(a.stderr)
	a.root.SetErr(a.stderr)

	err := a.root.ExecuteContext(ctx)
	if a.outClose != nil {
		if cerr := a.outClose(); err == nil && cerr != nil {
			err = cerr
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if err == nil {
		return ExitOK
	}
	fmt.Fprintln(a.stderr, err)
	return exitCodeFor(err)
}

// exitCodeFor maps an error to the CLI's exit code contract: domain and
// criterion errors exit 1, usage errors 2, authentication failures 10,
// server faults 100, transport failures 200, anything else 30.
func exitCodeFor(err error) int {
	var usage *UsageError
	switch {
	case errors.Is(err, context.Canceled):
		return ExitAborted
	case errors.Is(err, domain.ErrMalformedDomain),
		errors.Is(err, domain.ErrInvalidCriterion):
		return ExitDomain
	case errors.As(err, &usage):
		return ExitUsage
	case errors.Is(err, odoo.ErrAuthenticationFailed):
		return ExitAuth
	case errors.Is(err, odoo.ErrInvalidModel),
		errors.Is(err, odoo.ErrInvalidMethod),
		errors.Is(err, odoo.ErrAccessDenied):
		return ExitFault
	}

	var fault *odoo.FaultError
	if errors.As(err, &fault) {
		if fault.Code > 0 {
			return ExitFault
		}
		return ExitProtocol
	}
	if isCommandLineError(err) {
		return ExitUsage
	}
	return ExitOperation
}

// isCommandLineError recognizes the parse failures cobra reports as plain
// errors rather than through the flag error hook: unknown commands,
// rejected positional arguments, and required flags left unset.
func isCommandLineError(err error) bool {
	msg := err.Error()
	for _, marker := range []string{
		"unknown command",
		"unknown flag",
		"unknown shorthand flag",
		"invalid argument",
		"required flag(s)",
		"accepts ",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// setup runs before every action: load the rc file, build the logger,
// open the output stream.
func (a *App) setup(cmd *cobra.Command) error {
	if a.dryRun {
		a.logLevel = "DEBUG"
	}

	logger, err := output.NewLogger(a.logLevel)
	if err != nil {
		return &UsageError{Err: err}
	}
	a.logger = logger

	found, err := config.LoadRC(a.envFile)
	if err != nil {
		return err
	}
	if !found && cmd.Flags().Changed("env") {
		a.logger.Warn("Config file was not found", zap.String("path", a.envFile))
	}

	if a.outPath == "" || a.outPath == "-" {
		if a.out == nil {
			a.out = os.Stdout
		}
		return nil
	}
	f, err := os.Create(a.outPath)
	if err != nil {
		return fmt.Errorf("cannot open output file: %w", err)
	}
	a.out = f
	a.outClose = f.Close
	return nil
}

// demoCredentials provisions a disposable instance from Odoo Cloud and
// prints its settings as OD_* declarations, ready to paste into a .clorc.
func (a *App) demoCredentials(cmd *cobra.Command) error {
	if err := a.setup(cmd); err != nil {
		return err
	}

	creds, err := config.RequestDemo(cmd.Context(), a.demoURL)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s=%q\n", config.EnvInstance, creds.Instance)
	fmt.Fprintf(a.out, "%s=%q\n", config.EnvDatabase, creds.Database)
	fmt.Fprintf(a.out, "%s=%q\n", config.EnvUsername, creds.Username)
	fmt.Fprintf(a.out, "%s=%q\n", config.EnvPassword, creds.Password.Reveal())
	return nil
}

// connect resolves credentials and builds the RPC client. Dry runs stop
// before this point, so no connection is ever made for them.
func (a *App) connect() (*odoo.Client, error) {
	creds, err := config.Resolve(config.Credentials{
		Instance: a.instance,
		Database: a.database,
		Username: a.username,
		Password: config.Secret(a.password),
	}, a.prompter)
	if err != nil {
		return nil, err
	}

	return odoo.New(
		creds.Instance,
		creds.Database,
		creds.Username,
		creds.Password.Reveal(),
		odoo.WithLogger(a.logger),
		odoo.WithSkipTLSVerify(a.skipTLS),
	)
}
