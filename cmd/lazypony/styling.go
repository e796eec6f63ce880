package lazypony

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/lazypony/pkg/control"
	"github.com/arthur-debert/lazypony/pkg/style"
)

func newDemoCmd(a *app) *cobra.Command {
	var withLipgloss bool

	cmd := &cobra.Command{
		Use:     "demo",
		Short:   MsgDemoShort,
		GroupID: "style",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.println(MsgDemoAttributes); err != nil {
				return err
			}
			var attrs []string
			for _, attr := range control.Attributes() {
				r := control.NewRequest(control.NoColor, control.NoColor, attr)
				attrs = append(attrs, style.Sprint(r, attr.String()))
			}
			if _, err := a.out.WriteString("  " + strings.Join(attrs, " ") + "\n"); err != nil {
				return err
			}

			if err := a.println(MsgDemoColors); err != nil {
				return err
			}
			var lines []string
			for _, fg := range control.Colors() {
				var cells []string
				for _, bg := range control.Colors() {
					cells = append(cells, style.Sprint(control.NewRequest(fg, bg), " Aa "))
				}
				lines = append(lines, fmt.Sprintf("  %-8s", fg)+strings.Join(cells, ""))
			}
			if err := a.out.WriteLines(append(lines, "")); err != nil {
				return err
			}

			if withLipgloss {
				return demoLipgloss(a)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withLipgloss, "lipgloss", false, MsgFlagLipgloss)
	return cmd
}

// demoLipgloss renders the palette with lipgloss. Its output goes through the
// stream like any other marker text.
func demoLipgloss(a *app) error {
	if err := a.println(MsgDemoLipgloss); err != nil {
		return err
	}
	var sb strings.Builder
	r := style.NewRenderer(&sb)
	for _, c := range control.Colors() {
		req := control.NewRequest(c, control.NoColor, control.Bright, control.Underline)
		sb.WriteString(" " + style.Lipgloss(r, req).Render(c.String()))
	}
	_, err := a.out.WriteString(sb.String() + "\n")
	return err
}

func newEncodeCmd(a *app) *cobra.Command {
	var (
		fg, bg    string
		zeroWidth bool
	)

	cmd := &cobra.Command{
		Use:     "encode [attribute...]",
		Short:   MsgEncodeShort,
		Example: MsgEncodeExample,
		GroupID: "style",
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			var names []string
			for _, attr := range control.Attributes() {
				names = append(names, attr.String())
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			marker, err := style.Color(args, fg, bg)
			if err != nil {
				return err
			}
			if zeroWidth {
				marker = style.ZeroWidth(marker)
			}
			// Quoted so the terminal shows the marker instead of applying it.
			_, err = a.out.WriteString(strconv.Quote(marker) + "\n")
			return err
		},
	}
	cmd.Flags().StringVar(&fg, "fg", "", MsgFlagFg)
	cmd.Flags().StringVar(&bg, "bg", "", MsgFlagBg)
	cmd.Flags().BoolVar(&zeroWidth, "zero-width", false, MsgFlagZeroWidth)
	colors := func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, c := range control.Colors() {
			names = append(names, c.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
	_ = cmd.RegisterFlagCompletionFunc("fg", colors)
	_ = cmd.RegisterFlagCompletionFunc("bg", colors)
	return cmd
}

func newCodesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "codes",
		Short:   MsgCodesShort,
		GroupID: "style",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := pterm.TableData{{"Name", "Kind", "Code", "Sample"}}
			for _, attr := range control.Attributes() {
				sample := style.Sprint(control.NewRequest(control.NoColor, control.NoColor, attr), "sample")
				data = append(data, []string{attr.String(), "attribute", strconv.Itoa(attr.Code()), sample})
			}
			for _, c := range control.Colors() {
				data = append(data,
					[]string{c.String(), "foreground", strconv.Itoa(c.FgCode()), style.Sprint(control.NewRequest(c, control.NoColor), "sample")},
					[]string{c.String(), "background", strconv.Itoa(c.BgCode()), style.Sprint(control.NewRequest(control.NoColor, c), "sample")},
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
