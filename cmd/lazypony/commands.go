// Package lazypony holds the lazypony command tree.
package lazypony

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/lazypony/internal/version"
	"github.com/arthur-debert/lazypony/pkg/cobrax/topics"
	"github.com/arthur-debert/lazypony/pkg/config"
	"github.com/arthur-debert/lazypony/pkg/control"
	"github.com/arthur-debert/lazypony/pkg/logging"
	"github.com/arthur-debert/lazypony/pkg/prompt"
	"github.com/arthur-debert/lazypony/pkg/stream"
	"github.com/arthur-debert/lazypony/pkg/style"
)

//go:embed topics
var topicFiles embed.FS

// Options replace the process streams and environment, mostly for tests.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Environment skips detection from the process environment.
	Environment *control.Environment

	// OpenConsole is passed to backend selection.
	OpenConsole func() (control.Console, error)
}

// app is the state shared by all commands, set up before any of them runs.
type app struct {
	opts Options

	verbosity int
	color     string
	cfgFile   string

	cfg    *config.Config
	ctrl   control.Controller
	out    *stream.Stream
	errOut *stream.Stream
	markup *style.MarkupParser
}

// NewRootCmd creates the root command bound to the process streams
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithOptions(Options{})
}

// NewRootCmdWithOptions creates the root command
func NewRootCmdWithOptions(opts Options) *cobra.Command {
	rootCmd, _ := newRoot(opts)
	return rootCmd
}

// Execute runs the command tree and reports a failure on stderr. It returns
// the process exit code.
func Execute(opts Options) int {
	rootCmd, a := newRoot(opts)
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	if a.errOut != nil && a.markup != nil {
		_, _ = a.errOut.WriteString(a.markup.Render(fmt.Sprintf("[error]Error:[/error] %v\n", err)))
	} else {
		_, _ = fmt.Fprintf(a.opts.Stderr, "Error: %v\n", err)
	}
	return 1
}

func newRoot(opts Options) (*cobra.Command, *app) {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	a := &app{opts: opts}

	rootCmd := &cobra.Command{
		Use:     "lazypony",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	rootCmd.SetIn(opts.Stdin)
	rootCmd.SetOut(opts.Stdout)
	rootCmd.SetErr(opts.Stderr)

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.color, "color", "", MsgFlagColor)
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", MsgFlagConfig)
	_ = rootCmd.RegisterFlagCompletionFunc("color", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "ansi", "native", "none"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "style", Title: "STYLING:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newSetupCmd(a))
	rootCmd.AddCommand(newQueryCmd(a))
	rootCmd.AddCommand(newDemoCmd(a))
	rootCmd.AddCommand(newEncodeCmd(a))
	rootCmd.AddCommand(newCodesCmd(a))
	rootCmd.AddCommand(newTermCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	help, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		tm, err := topics.New(help, topics.Options{Renderer: a.topicRenderer()})
		if err == nil {
			topicsCmd := tm.Command(a.rendered)
			topicsCmd.GroupID = "misc"
			rootCmd.AddCommand(topicsCmd)
			tm.Install(rootCmd, a.rendered)
		}
	}

	return rootCmd, a
}

// setup loads configuration and picks the output backend.
func (a *app) setup(cmd *cobra.Command) error {
	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("color") {
		overrides["output.color"] = a.color
	}
	cfg, err := config.Load(a.cfgFile, overrides)
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}
	a.cfg = cfg

	env := a.environment()
	a.ctrl = control.Select(env, control.SelectOptions{
		Mode:          cfg.Mode(),
		ANSITerminals: cfg.Output.ANSITerminals,
		OpenConsole:   a.opts.OpenConsole,
	})
	a.out, a.errOut = stream.Pair(a.opts.Stdout, a.opts.Stderr, a.ctrl)

	theme, err := style.LoadTheme(cfg.ThemePath())
	if err != nil {
		return fmt.Errorf(MsgErrLoadTheme, err)
	}
	a.markup = style.NewMarkupParser(theme)

	log.Debug().
		Str("backend", a.ctrl.Name()).
		Str("mode", string(cfg.Mode())).
		Bool("terminal", env.IsTerminal).
		Msg("Output configured")
	return nil
}

func (a *app) environment() control.Environment {
	if a.opts.Environment != nil {
		return *a.opts.Environment
	}
	f, _ := a.opts.Stdout.(*os.File)
	return control.EnvironmentFromOS(f)
}

// ansi reports whether styled third party output can be written as is.
func (a *app) ansi() bool {
	return a.ctrl != nil && a.ctrl.Name() == "ansi"
}

// println renders markup and writes a line through the stream.
func (a *app) println(format string, args ...interface{}) error {
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	_, err := a.out.WriteString(a.markup.Render(text) + "\n")
	return err
}

// writeRendered writes output from libraries that emit their own escape
// codes. Those may use codes the stream does not understand, so they are
// written raw on ANSI terminals and stripped everywhere else.
func (a *app) writeRendered(text string) error {
	if a.ansi() {
		return a.out.RawWrite(text)
	}
	_, err := a.out.WriteString(pterm.RemoveColorFromString(text))
	return err
}

// rendered is the destination for help topics. The help command can run
// before setup when the root is invoked with --help.
func (a *app) rendered() io.Writer {
	if a.out == nil {
		return a.opts.Stdout
	}
	return writerFunc(func(p []byte) (int, error) {
		if a.ansi() {
			if err := a.out.RawWrite(string(p)); err != nil {
				return 0, err
			}
			return len(p), nil
		}
		return a.out.Write(p)
	})
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

func (a *app) topicRenderer() topics.Renderer {
	return topics.FormatRenderer{
		".md": topics.RendererFunc(func(content, format string) string {
			return topics.NewGlamourRenderer(a.ansi()).Render(content, format)
		}),
		".txt": topics.RendererFunc(func(content, format string) string {
			if a.markup == nil {
				return style.Render(content)
			}
			return a.markup.Render(content)
		}),
	}
}

// prompter reads from a terminal with completion when possible.
func (a *app) prompter() *prompt.Prompter {
	var in prompt.LineReader = prompt.NewScannerReader(a.opts.Stdin)
	if f, ok := a.opts.Stdin.(*os.File); ok && a.cfg.Prompt.Completion {
		if tr, err := prompt.NewTerminalReader(f, a.opts.Stdout); err == nil {
			in = tr
		}
	}
	return prompt.New(a.out, in)
}
