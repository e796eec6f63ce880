package lazypony

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Set up a Django project with useful packages"
	MsgDemoShort       = "Show every attribute and colour through the active backend"
	MsgEncodeShort     = "Print the marker for a set of attributes and colours"
	MsgCodesShort      = "List the numeric codes of attributes and colours"
	MsgQueryShort      = "Ask a question and print the answer"
	MsgSetupShort      = "Plan a new project interactively"
	MsgTermShort       = "Show how output styling was set up"
	MsgConfigShort     = "Show configuration paths and defaults"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Print the man page"

	// Status messages
	MsgPlanTitle      = "[title]Setup plan[/title]"
	MsgNothingToDo    = "[warning]Setup cancelled.[/warning]"
	MsgCreateInCwd    = "Create django project in '[path]%s[/path]'? "
	MsgAskDirectory   = "Directory in which django files will be created: "
	MsgAskInstall     = "Install '%s'? "
	MsgAskCatalog     = "Catalog file (empty keeps the configured one): "
	MsgPackagesTitle  = "[title]Available packages[/title]"
	MsgPackageLine    = "  %s : %s"
	MsgRequired       = " [muted](required)[/muted]"
	MsgDemoAttributes = "[subtitle]Attributes[/subtitle]"
	MsgDemoColors     = "[subtitle]Colours[/subtitle]"
	MsgDemoLipgloss   = "[subtitle]Through lipgloss[/subtitle]"
	MsgConfigFile     = "Config file: %s"
	MsgThemeFile      = "Theme file:  %s"
	MsgLogFile        = "Log file:    %s"
	MsgVersionFormat  = "lazypony version %s\n  commit: %s\n  built:  %s"

	// Error messages
	MsgErrLoadConfig  = "failed to load configuration: %w"
	MsgErrLoadTheme   = "failed to load theme: %w"
	MsgErrLoadCatalog = "failed to load catalog: %w"
	MsgErrUnknownFmt  = "unknown format %q (text or yaml)"
	MsgErrNoAnswers   = "query needs at least one CHOICE"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagColor     = "Output styling: auto, ansi, native or none"
	MsgFlagConfig    = "Config file (default $XDG_CONFIG_HOME/lazypony/config.toml)"
	MsgFlagFg        = "Foreground colour"
	MsgFlagBg        = "Background colour"
	MsgFlagZeroWidth = "Wrap the marker in line editor sentinels"
	MsgFlagDefault   = "Answer used for empty input"
	MsgFlagList      = "Show one choice per line"
	MsgFlagCase      = "Match answers case sensitively"
	MsgFlagOutputDir = "Directory in which the project is created"
	MsgFlagInstall   = "Packages to install, space or comma separated"
	MsgFlagYes       = "Accept the defaults without asking"
	MsgFlagFormat    = "Plan format: text or yaml"
	MsgFlagLipgloss  = "Also render the palette with lipgloss styles"
	MsgFlagDefaults  = "Print the built-in defaults"
	MsgFlagShowPkgs  = "Show all available packages and exit"
	MsgFlagCatalog   = "Ask for a catalog file before the package questions"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/setup-long.txt
	msgSetupLongRaw string
	MsgSetupLong    = strings.TrimSpace(msgSetupLongRaw)

	//go:embed msgs/setup-example.txt
	msgSetupExampleRaw string
	MsgSetupExample    = strings.TrimRight(msgSetupExampleRaw, "\n")

	//go:embed msgs/query-long.txt
	msgQueryLongRaw string
	MsgQueryLong    = strings.TrimSpace(msgQueryLongRaw)

	//go:embed msgs/query-example.txt
	msgQueryExampleRaw string
	MsgQueryExample    = strings.TrimRight(msgQueryExampleRaw, "\n")

	//go:embed msgs/encode-example.txt
	msgEncodeExampleRaw string
	MsgEncodeExample    = strings.TrimRight(msgEncodeExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
