package lazypony

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/lazypony/pkg/catalog"
	"github.com/arthur-debert/lazypony/pkg/control"
	"github.com/arthur-debert/lazypony/pkg/errors"
	"github.com/arthur-debert/lazypony/pkg/logging"
	"github.com/arthur-debert/lazypony/pkg/prompt"
	"github.com/arthur-debert/lazypony/pkg/style"
)

func newQueryCmd(a *app) *cobra.Command {
	var (
		def           string
		list          bool
		caseSensitive bool
	)

	cmd := &cobra.Command{
		Use:     "query TEXT CHOICE...",
		Short:   MsgQueryShort,
		Long:    MsgQueryLong,
		Example: MsgQueryExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New(errors.ErrInvalidInput, MsgErrNoAnswers)
			}
			answers := make([]prompt.Answer, 0, len(args)-1)
			for _, choice := range args[1:] {
				answers = append(answers, prompt.Choice(strings.Split(choice, ",")...))
			}

			answer, err := a.prompter().Query(args[0], answers, prompt.QueryOptions{
				Default:       def,
				List:          list,
				CaseSensitive: caseSensitive || !a.cfg.Prompt.IgnoreCase,
			})
			if err != nil {
				return err
			}
			_, err = a.out.WriteString(answer + "\n")
			return err
		},
	}
	cmd.Flags().StringVar(&def, "default", "", MsgFlagDefault)
	cmd.Flags().BoolVar(&list, "list", false, MsgFlagList)
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, MsgFlagCase)
	return cmd
}

func newSetupCmd(a *app) *cobra.Command {
	var (
		outputDir string
		install   string
		yes       bool
		format    string
		show      bool
		choose    bool
	)

	cmd := &cobra.Command{
		Use:     "setup",
		Short:   MsgSetupShort,
		Long:    MsgSetupLong,
		Example: MsgSetupExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.setup")
			defer logging.LogOperationStart(logger, "setup")()
			if format != "text" && format != "yaml" {
				return fmt.Errorf(MsgErrUnknownFmt, format)
			}

			cat, err := catalog.Load(a.cfg.Setup.Catalog)
			if err != nil {
				return fmt.Errorf(MsgErrLoadCatalog, err)
			}
			if show {
				return a.showPackages(cat)
			}

			d := &setupDialog{app: a, p: a.prompter(), yes: yes}
			if choose {
				if cat, err = d.chooseCatalog(cat); err != nil {
					return fmt.Errorf(MsgErrLoadCatalog, err)
				}
			}
			dir, err := d.directory(outputDir)
			if err != nil {
				return err
			}
			if dir == "" {
				return a.println(MsgNothingToDo)
			}

			var selected []string
			if cmd.Flags().Changed("install") {
				selected = catalog.ParseList(install)
			} else if selected, err = d.packages(cat); err != nil {
				return err
			}

			plan, err := cat.NewPlan(dir, a.cfg.Setup.Directories, selected)
			if err != nil {
				return err
			}
			logger.Info().
				Str("dir", plan.OutputDir).
				Int("packages", len(plan.Packages)).
				Msg("Setup planned")

			if format == "yaml" {
				data, err := yaml.Marshal(plan)
				if err != nil {
					return err
				}
				_, err = a.out.Write(data)
				return err
			}
			if err := a.println(MsgPlanTitle); err != nil {
				return err
			}
			return a.out.WriteLines(append(plan.Text(), ""))
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output-dir", "d", ".", MsgFlagOutputDir)
	cmd.Flags().StringVarP(&install, "install", "i", "", MsgFlagInstall)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	cmd.Flags().StringVar(&format, "format", "text", MsgFlagFormat)
	cmd.Flags().BoolVarP(&show, "show-packages", "p", false, MsgFlagShowPkgs)
	cmd.Flags().BoolVar(&choose, "choose-catalog", false, MsgFlagCatalog)
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("install", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return catalog.Builtin().Names(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// showPackages lists the catalog, each name in its package colour.
func (a *app) showPackages(cat *catalog.Catalog) error {
	if err := a.println(MsgPackagesTitle); err != nil {
		return err
	}
	for _, pkg := range cat.Packages {
		name := style.Sprint(control.NewRequest(pkg.Fg(), control.NoColor, control.Bright), pkg.Name)
		line := fmt.Sprintf(MsgPackageLine, name, pkg.Description)
		if pkg.Required {
			line += MsgRequired
		}
		if err := a.println(line); err != nil {
			return err
		}
	}
	return nil
}

// setupDialog asks the setup questions. With yes set every question takes
// its default.
type setupDialog struct {
	*app
	p   *prompt.Prompter
	yes bool
}

// directory confirms the current directory or asks for another one. An empty
// result means the user gave none.
func (d *setupDialog) directory(dir string) (string, error) {
	if dir != "." {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if d.yes {
		return cwd, nil
	}

	ok, err := d.p.Confirm(d.markup.Render(fmt.Sprintf(MsgCreateInCwd, cwd)), true)
	if err != nil || ok {
		return cwd, err
	}
	return prompt.InputObject(d.p, MsgAskDirectory, func(s string) (string, error) {
		return strings.TrimSpace(s), nil
	}, "")
}

// chooseCatalog asks for a catalog file. No file keeps cat.
func (d *setupDialog) chooseCatalog(cat *catalog.Catalog) (*catalog.Catalog, error) {
	if d.yes {
		return cat, nil
	}
	f, err := d.p.FileChooser(MsgAskCatalog, os.O_RDONLY, 0)
	if err != nil || f == nil {
		return cat, err
	}
	defer func() {
		_ = f.Close()
	}()
	return catalog.Read(f)
}

// packages asks about every optional catalog package.
func (d *setupDialog) packages(cat *catalog.Catalog) ([]string, error) {
	if d.yes {
		return nil, nil
	}
	var selected []string
	for _, pkg := range cat.Optional() {
		name := style.Sprint(control.NewRequest(pkg.Fg(), control.NoColor, control.Bright), pkg.Name)
		ok, err := d.p.Confirm(fmt.Sprintf(MsgAskInstall, name), false)
		if err != nil {
			return nil, err
		}
		if ok {
			selected = append(selected, pkg.Name)
		}
	}
	return selected, nil
}
