package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-phonebook/internal/commands"
	"github.com/tartampluch/go-phonebook/internal/config"
	"github.com/tartampluch/go-phonebook/internal/engine"
)

// options holds the parsed command-line flags.
type options struct {
	file    string
	lang    string
	debug   bool
	version bool
}

// main is the application entry point.
// It delegates execution to runMain so that deferred calls (closing the log
// file) run before os.Exit.
func main() {
	os.Exit(runMain(os.Args[1:], os.Stdin, os.Stdout))
}

// runMain builds the root command and maps its outcome to an exit code.
func runMain(args []string, in io.Reader, out io.Writer) int {
	opts := &options{}
	root := newRootCmd(opts, in, out)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.Red.Sprint(err))
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

func newRootCmd(opts *options, in io.Reader, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           config.CommandName,
		Short:         config.CmdShortDesc,
		Long:          config.CmdLongDesc,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.version {
				printVersion(out)
				return nil
			}

			logCloser := setupLogging(opts.debug)
			if logCloser != nil {
				defer func() { _ = logCloser.Close() }()
			}

			// Cancel on SIGINT (Ctrl+C) or SIGTERM; the session saves before leaving.
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			logStartupInfo()
			if err := run(ctx, opts, in, out); err != nil {
				return err
			}
			slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.file, config.FlagFile, "", config.FlagDescFile)
	flags.StringVar(&opts.lang, config.FlagLang, config.DefaultLanguage, config.FlagDescLang)
	flags.BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	flags.BoolVar(&opts.version, config.FlagVersion, false, config.FlagDescVersion)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetContext(context.Background())
	return cmd
}

// run loads the address book, wires the handler and hands over to the session loop.
func run(ctx context.Context, opts *options, in io.Reader, out io.Writer) error {
	path := opts.file
	if path == "" {
		p, err := defaultSnapshotPath()
		if err != nil {
			return err
		}
		path = p
	}

	dir, err := engine.LoadFile(path)
	if err != nil {
		return err
	}

	handler := commands.NewHandler(dir, path, commands.NewMessages(opts.lang))
	return newSession(handler, in, out).Run(ctx)
}

// printVersion outputs the build information.
func printVersion(out io.Writer) {
	fmt.Fprintf(out, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		config.Commit,
		config.Date,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger. Stdout belongs to the
// interactive session, so logs go to a file and, in debug mode, to stderr.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if debugMode {
		writers = append(writers, os.Stderr)
	}

	if logPath, err := appFilePath(os.UserCacheDir, config.ErrCacheDir, config.LogFileName); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// defaultSnapshotPath places the address book in the user config directory.
func defaultSnapshotPath() (string, error) {
	return appFilePath(os.UserConfigDir, config.ErrConfigDir, config.SnapshotFileName)
}

// appFilePath resolves name inside the application folder of a per-user base directory,
// creating the folder with restricted permissions (700).
func appFilePath(baseDir func() (string, error), errMsg, name string) (string, error) {
	base, err := baseDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", errMsg, err)
	}

	appDir := filepath.Join(base, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return filepath.Join(appDir, name), nil
}
