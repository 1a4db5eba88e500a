// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v2"

	"github.com/staranto/postctl/internal/attrs"
	"github.com/staranto/postctl/internal/config"
	"github.com/staranto/postctl/internal/state"
)

// Formats accepted by --output.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultPostAttrs are the post columns shown in text output when --attrs
// selects none.
const DefaultPostAttrs = "id,title"

// Options controls rendering. The zero value is uncolored text without
// titles.
type Options struct {
	Format string
	Color  bool
	Titles bool
	// Attrs, when it includes anything, projects every record onto those
	// attributes.
	Attrs attrs.AttrList
}

// SpitPosts renders a post listing. Text shows the selected attributes, id
// and title by default. Structured formats carry the whole post unless
// attributes were selected.
func SpitPosts(w io.Writer, posts []state.Post, opts Options) error {
	records := make([]json.RawMessage, 0, len(posts))
	for _, p := range posts {
		raw, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal post: %w", err)
		}
		records = append(records, raw)
	}

	if opts.Format == FormatJSON || opts.Format == FormatYAML {
		for i := range records {
			projected, err := opts.Attrs.Project(records[i])
			if err != nil {
				return fmt.Errorf("failed to project post: %w", err)
			}
			records[i] = projected
		}
		raw, err := json.Marshal(records)
		if err != nil {
			return fmt.Errorf("failed to marshal posts: %w", err)
		}
		return spitStructured(w, raw, opts.Format)
	}

	al := opts.Attrs.Included()
	if len(al) == 0 {
		var err error
		if al, err = attrs.Parse(DefaultPostAttrs, ""); err != nil {
			return err
		}
	}

	rows := make([][]string, 0, len(records))
	for _, raw := range records {
		rows = append(rows, al.Row(raw))
	}
	TableWriter(w, al.Titles(), rows, opts)
	return nil
}

// SpitPost renders a single post in full.
func SpitPost(w io.Writer, post state.Post, opts Options) error {
	raw, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("failed to marshal post: %w", err)
	}
	return SpitRecord(w, raw, opts)
}

// SpitRecord renders an arbitrary JSON record, preserving its key order.
func SpitRecord(w io.Writer, raw json.RawMessage, opts Options) error {
	raw, err := opts.Attrs.Project(raw)
	if err != nil {
		return fmt.Errorf("failed to project record: %w", err)
	}

	switch opts.Format {
	case FormatJSON, FormatYAML:
		return spitStructured(w, raw, opts.Format)
	default:
		out := pretty.Pretty(raw)
		if opts.Color {
			out = pretty.Color(out, nil)
		}
		_, err := w.Write(out)
		return err
	}
}

// spitStructured writes raw as indented JSON or as YAML with the key order
// intact.
func spitStructured(w io.Writer, raw []byte, format string) error {
	if format == FormatYAML {
		b, err := yaml.Marshal(toYAML(gjson.ParseBytes(raw)))
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	}
	_, err := w.Write(pretty.Pretty(raw))
	return err
}

// toYAML converts a gjson value into something yaml.v2 marshals with the
// original key order intact.
func toYAML(r gjson.Result) interface{} {
	switch {
	case r.IsObject():
		ms := yaml.MapSlice{}
		r.ForEach(func(k, v gjson.Result) bool {
			ms = append(ms, yaml.MapItem{Key: k.String(), Value: toYAML(v)})
			return true
		})
		return ms
	case r.IsArray():
		items := []interface{}{}
		r.ForEach(func(_, v gjson.Result) bool {
			items = append(items, toYAML(v))
			return true
		})
		return items
	case r.Type == gjson.Number:
		if i := r.Int(); float64(i) == r.Num {
			return i
		}
		return r.Num
	default:
		return r.Value()
	}
}

// TableWriter renders rows in a borderless table honoring color and titles.
func TableWriter(w io.Writer, headers []string, rows [][]string, opts Options) {
	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 0)
	log.Debugf("padding: %v", pad)

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// DumpExamples renders a table of example command usages.
func DumpExamples(w io.Writer, examples [][2]string) {
	if len(examples) == 0 {
		return
	}
	var rows [][]string
	for _, ex := range examples {
		rows = append(rows, []string{ex[0], ex[1]})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		Headers().
		Rows(rows...)

	// Set headers and disable the header border for a cleaner look.
	t = t.Headers("Command", "Description").BorderHeader(false)

	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}
