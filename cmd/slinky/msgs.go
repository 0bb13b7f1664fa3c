package slinky

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort              = "Wrangle symbolic links"
	MsgForEachShort           = "Search for and act on all symlinks under a path"
	MsgListShort              = "Print each link as 'origin -> target' (default)"
	MsgTidyShort              = "Lexically tidy the target path (remove redundant '..' and '.')"
	MsgToAbsoluteShort        = "Convert links to absolute links. Fails on dangling links"
	MsgToRelativeShort        = "Convert links to relative links. Fails on dangling links"
	MsgEditTargetShort        = "Edit the target string of links by replacing regex matches"
	MsgToHardlinkShort        = "Convert links to hardlinks. Fails on dangling, directory and cross-device links"
	MsgToHardlinkTreeShort    = "Recursively mirror target directories with hardlinks"
	MsgToTreeShort            = "Recursively mirror target directories with symlinks"
	MsgReplaceWithTargetShort = "Move the target into the link's place. Fails on dangling links"
	MsgDeleteShort            = "Delete links"
	MsgExecShort              = "Run a shell command against each link"
	MsgCreateShort            = "Create a new link"
	MsgGenerateShort          = "Generate shell completions or man pages"
	MsgCompletionsShort       = "Generate a shell completion script"
	MsgManShort               = "Generate man pages into a directory"
	MsgConfigShort            = "Print the effective configuration"
	MsgVersionShort           = "Print version information"

	// Flag descriptions
	MsgFlagVerbose       = "Describe changes (-v), raise log level (-vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun        = "Don't modify the filesystem"
	MsgFlagColor         = "Control color output (auto, always, never)"
	MsgFlagJSON          = "Write one JSON object per link or result"
	MsgFlagConfig        = "Read configuration from this file"
	MsgFlagOnlyDangling  = "Only act on dangling links"
	MsgFlagOnlyAttached  = "Only act on attached (non-dangling) links"
	MsgFlagOnlyAbsolute  = "Only act on absolute links"
	MsgFlagOnlyRelative  = "Only act on relative links"
	MsgFlagFilterOrigin  = "Only act on links whose origin path matches this regex"
	MsgFlagFilterTarget  = "Only act on links whose target string matches this regex"
	MsgFlagMaxDepth      = "Descend at most NUM directories (-1 for no limit)"
	MsgFlagExclude       = "Skip paths matching this glob (repeatable)"
	MsgFlagStatus        = "Prefix each link with its attached/dangling status"
	MsgFlagReplaceAll    = "Replace all occurrences of the pattern"
	MsgFlagAbsolute      = "Store the absolute path of the target"
	MsgFlagRelative      = "Store the target relative to the link's directory"
	MsgFlagAllowDangling = "Allow creating a link to a target that does not exist"
	MsgFlagHard          = "Create a hardlink instead of a symlink"
	MsgFlagTree          = "Mirror a target directory as a tree of links"
	MsgFlagForce         = "Remove an existing file at the origin first, or merge a tree into it"
	MsgFlagDereference   = "Link to the final target when TARGET is itself a link"
	MsgFlagTemplate      = "Print a commented template instead of the effective values"

	// Output
	MsgVersionFormat = "slinky version %s\n  commit: %s\n  built:  %s\n"
	MsgManWritten    = "Man pages written to %s\n"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/for-each-long.txt
	msgForEachLongRaw string
	MsgForEachLong    = strings.TrimSpace(msgForEachLongRaw)

	//go:embed msgs/for-each-example.txt
	msgForEachExampleRaw string
	MsgForEachExample    = strings.TrimRight(msgForEachExampleRaw, "\n")

	//go:embed msgs/exec-long.txt
	msgExecLongRaw string
	MsgExecLong    = strings.TrimSpace(msgExecLongRaw)

	//go:embed msgs/create-long.txt
	msgCreateLongRaw string
	MsgCreateLong    = strings.TrimSpace(msgCreateLongRaw)

	//go:embed msgs/create-example.txt
	msgCreateExampleRaw string
	MsgCreateExample    = strings.TrimRight(msgCreateExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
