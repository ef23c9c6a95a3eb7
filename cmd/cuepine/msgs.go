package main

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Install the files described by a manifest"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Flag descriptions
	MsgFlagUninstall  = "Uninstall the files instead"
	MsgFlagDryRun     = "Show what would be done, without actually doing it"
	MsgFlagTemplate   = "Print an empty manifest template and exit"
	MsgFlagExplain    = "Explain the capabilities and uses of a manifest and exit"
	MsgFlagConfigName = "Name of the manifest files (install.json by default)"
	MsgFlagStrictPre  = "Abort a manifest if any of its pre scripts fails"
	MsgFlagNoSublevel = "Don't process manifests found in sub-directories"
	MsgFlagCheckDeps  = "Only check for dependencies and exit"
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagOutput     = "Output format: auto, term, text or json"
	MsgFlagConfig     = "Tool config file (default $XDG_CONFIG_HOME/cuepine/config.toml)"
	MsgFlagVersion    = "Print the version and exit"
	MsgFlagManDir     = "Write one page per command into this directory instead of stdout"

	// Error messages
	MsgErrResolveDir = "failed to resolve directory %s"
	MsgErrBadDir     = "%s is not a directory"

	MsgVersionTemplate = "{{.Name}} {{.Version}}\n"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimLeft(msgUsageTemplateRaw, "\n")
)
