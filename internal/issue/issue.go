// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Id identifies a catalog entry.
type Id int

const (
	InputNotUsableId Id = iota + 1
	InvalidFlagsId
	UnsupportedOperationId
	ConfigLoadFailedId
	PipelineFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink // rendered under "See also"
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the entry with the named glamour style ("dark", "light",
// "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	inputNotUsableIssue = &Issue{
		id: InputNotUsableId,
		mdMsg: `
# Input is not usable!

An input path is neither a zip archive nor a directory, or it does not exist.

## Things you can try:
- Check the path given to ` + "`-resInput`" + ` or ` + "`-layoutInfoFiles`" + `
- Make sure the previous build step produced its output before this one runs
- Pass the archive itself, not the folder that contains it`,
		docLinks: []HttpLink{"https://developer.android.com/topic/libraries/data-binding"},
	}

	invalidFlagsIssue = &Issue{
		id: InvalidFlagsId,
		mdMsg: `
# Invalid flags!

The subcommand was called with an unknown flag, a bad value or without a
required flag.

## Things you can try:
- Print the flags of a subcommand:
~~~
$ databinder PROCESS_RESOURCES --help
$ databinder GEN_BASE_CLASSES --help
~~~
- Boolean flags accept a separate value, as in ` + "`-zipResOutput false`",
	}

	unsupportedOperationIssue = &Issue{
		id: UnsupportedOperationId,
		mdMsg: `
# Unsupported operation!

Generated files cannot be deleted from a zipped source output.

## Things you can try:
- Write sources to a directory by leaving ` + "`-zipSourceOutput`" + ` off`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.
Defaults are used for this run.

## Things you can try:
- Check the CUE or TOML syntax of the file
- Supported keys:
~~~cue
log_level: "info"            // debug | info | warn | error
legacy_exit_status: false
keep_temp: false
temp_root: ""
layout_info_archive_name: "layout-info.zip"
~~~`,
	}

	pipelineFailedIssue = &Issue{
		id: PipelineFailedId,
		mdMsg: `
# Build step failed!

The run stopped before every output was written. Outputs already on disk
must be treated as invalid.

## Things you can try:
- Run again with ` + "`--verbose`" + ` to see every step
- Keep the temporary directories for inspection with ` + "`keep_temp: true`" + `
- Set ` + "`legacy_exit_status: true`" + ` only if your build expects exit status 0 on failure`,
	}

	issues = map[Id]*Issue{
		inputNotUsableIssue.Id():       inputNotUsableIssue,
		invalidFlagsIssue.Id():         invalidFlagsIssue,
		unsupportedOperationIssue.Id(): unsupportedOperationIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		pipelineFailedIssue.Id():       pipelineFailedIssue,
	}
)

func Get(id Id) *Issue {
	return issues[id]
}
