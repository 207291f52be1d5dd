// Package cli renders launcher state for the command line and runs the
// small interactive prompts the commands need.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/text"
	"github.com/studiowebux/launcher/internal/types"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Output writes values in the chosen format
type Output struct {
	W      io.Writer
	Format string
}

// NewOutput validates format and returns an Output
func NewOutput(w io.Writer, format string) (*Output, error) {
	switch format {
	case "", FormatText:
		format = FormatText
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q (use text, json or yaml)", format)
	}
	return &Output{W: w, Format: format}, nil
}

// structured writes v as json or yaml; it returns false for text output
func (o *Output) structured(v interface{}) (bool, error) {
	switch o.Format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, err
		}
		_, err = fmt.Fprintln(o.W, string(data))
		return true, err
	case FormatYAML:
		enc := yaml.NewEncoder(o.W)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}

// Instances lists instances
func (o *Output) Instances(list []types.Instance) error {
	if done, err := o.structured(list); done {
		return err
	}
	if len(list) == 0 {
		_, err := fmt.Fprintln(o.W, "No instances yet. Create one with `launcher instance create`.")
		return err
	}

	rows := make([][]string, 0, len(list))
	for _, i := range list {
		icon := ""
		if i.Icon != "" {
			icon = "yes"
		}
		rows = append(rows, []string{text.Bold.Sprint(i.Name), i.Identifier, i.Loader, i.Version, icon})
	}
	return o.table([]string{"NAME:", "IDENTIFIER:", "LOADER:", "VERSION:", "ICON:"}, rows)
}

// Instance shows one instance
func (o *Output) Instance(i types.Instance) error {
	if done, err := o.structured(i); done {
		return err
	}
	return o.Instances([]types.Instance{i})
}

// Accounts lists accounts, marking the active one
func (o *Output) Accounts(list []types.AccountSummary) error {
	if done, err := o.structured(list); done {
		return err
	}
	if len(list) == 0 {
		_, err := fmt.Fprintln(o.W, "No accounts. Add one with `launcher account add`.")
		return err
	}

	rows := make([][]string, 0, len(list))
	for _, a := range list {
		marker := ""
		name := a.Username
		if a.IsActive {
			marker = "*"
			name = text.Bold.Sprint(a.Username)
		}
		rows = append(rows, []string{marker, name, a.UUID})
	}
	return o.table([]string{"", "USERNAME:", "UUID:"}, rows)
}

// Activity lists stored notifications
func (o *Output) Activity(entries []types.ActivityEntry) error {
	if done, err := o.structured(entries); done {
		return err
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(o.W, "No notifications.")
		return err
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Timestamp, levelLabel(e.Level), e.Source, e.Title, e.Description})
	}
	return o.table([]string{"TIME:", "LEVEL:", "SOURCE:", "TITLE:", "DESCRIPTION:"}, rows)
}

// FieldValue is a setting with its current form value
type FieldValue struct {
	Path  string `json:"path" yaml:"path"`
	Label string `json:"label" yaml:"label"`
	Tab   string `json:"tab" yaml:"tab"`
	Value string `json:"value" yaml:"value"`
}

// Fields lists settings grouped by tab
func (o *Output) Fields(fields []FieldValue) error {
	if done, err := o.structured(fields); done {
		return err
	}

	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, []string{f.Tab, text.Bold.Sprint(f.Path), f.Value, f.Label})
	}
	return o.table([]string{"TAB:", "PATH:", "VALUE:", "LABEL:"}, rows)
}

// Value prints any value; text output uses its fmt form
func (o *Output) Value(v interface{}) error {
	if done, err := o.structured(v); done {
		return err
	}
	_, err := fmt.Fprintln(o.W, v)
	return err
}

func levelLabel(level string) string {
	switch level {
	case "error":
		return text.FgRed.Sprint(level)
	case "warning":
		return text.FgYellow.Sprint(level)
	case "success":
		return text.FgGreen.Sprint(level)
	}
	return level
}

// table prints aligned columns, two spaces apart
func (o *Output) table(headers []string, rows [][]string) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = text.RuneCount(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := text.RuneCount(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	line := func(cells []string) string {
		var sb strings.Builder
		for i, cell := range cells {
			if i == len(cells)-1 {
				sb.WriteString(cell)
				break
			}
			sb.WriteString(text.AlignDefault.Apply(cell, widths[i]+2))
		}
		return strings.TrimRight(sb.String(), " ")
	}

	if _, err := fmt.Fprintln(o.W, line(headers)); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(o.W, line(row)); err != nil {
			return err
		}
	}
	return nil
}
