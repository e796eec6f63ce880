package lazypony

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/lazypony/internal/version"
	"github.com/arthur-debert/lazypony/pkg/config"
	"github.com/arthur-debert/lazypony/pkg/control"
	"github.com/arthur-debert/lazypony/pkg/paths"
)

func newTermCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "term",
		Short:   MsgTermShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := a.environment()
			data := pterm.TableData{
				{"Setting", "Value"},
				{"backend", a.ctrl.Name()},
				{"mode", string(a.cfg.Mode())},
				{"TERM", env.Term},
				{"GOOS", env.GOOS},
				{"NO_COLOR", strconv.FormatBool(env.NoColor)},
				{"terminal", strconv.FormatBool(env.IsTerminal || a.out.IsTerminal())},
				{"profile", termenv.NewOutput(a.opts.Stdout).Profile.Name()},
			}
			if w, h, err := a.out.Size(); err == nil {
				data = append(data, []string{"size", fmt.Sprintf("%dx%d", w, h)})
			}
			if native, ok := a.ctrl.(*control.NativeController); ok {
				st := native.State()
				data = append(data,
					[]string{"console default", fmt.Sprintf("0x%04x", st.Default)},
					[]string{"reverse", strconv.FormatBool(st.Reverse)},
				)
			}

			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}
			return a.writeRendered(table + "\n")
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := a.out.WriteString(config.DefaultContent())
				return err
			}
			cfgFile := a.cfgFile
			if cfgFile == "" {
				cfgFile = paths.ConfigFilePath()
			}
			return a.out.WriteLines([]string{
				fmt.Sprintf(MsgConfigFile, cfgFile),
				fmt.Sprintf(MsgThemeFile, a.cfg.ThemePath()),
				fmt.Sprintf(MsgLogFile, paths.LogFilePath()),
				"",
			})
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(a.out, MsgVersionFormat+"\n  go:     %s\n", version.Version, version.Commit, version.Date, runtime.Version())
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doc.GenMan(cmd.Root(), ManHeader(), cmd.OutOrStdout())
		},
	}
}

// ManHeader describes the lazypony man page
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "LAZYPONY",
		Section: "1",
		Source:  "lazypony " + version.Version,
		Manual:  "lazypony manual",
	}
}
