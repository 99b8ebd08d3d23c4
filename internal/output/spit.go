// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/awsctl/awsctl/internal/attrs"
	"github.com/awsctl/awsctl/internal/config"
	"github.com/awsctl/awsctl/internal/filters"
	"github.com/awsctl/awsctl/internal/log"
)

// Options are the rendering flags shared by every operation.
type Options struct {
	// Output is one of text, json, yaml or raw.
	Output  string
	Filter  string
	Sort    string
	Local   bool
	Color   bool
	Titles  bool
	Padding int
	// Project limits json and yaml records to the attrs. Text output is
	// always projected.
	Project bool
	Header  string
}

// NewOptions reads the rendering flags from cmd.
func NewOptions(cmd *cli.Command) Options {
	return Options{
		Output:  cmd.String("output"),
		Filter:  cmd.String("filter"),
		Sort:    cmd.String("sort"),
		Local:   cmd.Bool("local"),
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: int(cmd.Int("padding")),
		Project: cmd.IsSet("attrs"),
	}
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		// Counts, ports and sizes from the SDKs are integral; the rare
		// fractional value is printed with the minimum digits needed.
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// SliceDiceSpit filters, transforms, sorts and renders the JSON document raw,
// which is whatever the operation's select produced. Arrays are rendered as
// one record per element; an object is a single record; a scalar is printed
// on its own. The optional postProcess callback may adjust the filtered rows
// before text rendering.
func SliceDiceSpit(raw []byte,
	attrList attrs.AttrList,
	opts Options,
	w io.Writer,
	postProcess func([]map[string]interface{}) error) error {

	if w == nil {
		w = os.Stdout
	}

	if opts.Output == "raw" {
		_, err := fmt.Fprintln(w, string(raw))
		return err
	}

	doc := gjson.ParseBytes(raw)
	if !doc.Exists() || doc.Type == gjson.Null {
		log.Debugf("nothing to render")
		return nil
	}

	if !doc.IsArray() && !doc.IsObject() {
		return spitScalar(doc, opts, w)
	}

	candidates := doc
	if doc.IsObject() {
		candidates = gjson.Parse("[" + doc.Raw + "]")
	}

	// A list of scalars (service codes, tag keys) has no columns.
	if first := candidates.Get("0"); first.Exists() && !first.IsObject() {
		return spitList(candidates, opts, w)
	}

	if len(attrList) == 0 {
		attrList = inferAttrs(candidates)
	}

	project := opts.Output == "" || opts.Output == "text" || opts.Project
	var dataset []map[string]interface{}
	if project {
		dataset = filters.FilterDataset(candidates, attrList, opts.Filter)
	} else {
		for _, r := range filters.Matching(candidates, attrList, opts.Filter) {
			if m, ok := r.Value().(map[string]interface{}); ok {
				dataset = append(dataset, m)
			}
		}
	}

	if opts.Local {
		for a := range attrList {
			attrList[a].TransformSpec += "t"
		}
	}

	if project {
		for _, row := range dataset {
			for _, attr := range attrList {
				if attr.TransformSpec != "" {
					row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
				}
			}
		}
	}

	SortDataset(dataset, opts.Sort)

	switch opts.Output {
	case "json":
		return spitJSON(dataset, doc.IsObject(), w)
	case "yaml":
		return spitYAML(dataset, doc.IsObject(), w)
	default:
		if postProcess != nil {
			if err := postProcess(dataset); err != nil {
				return fmt.Errorf("post-processing output: %w", err)
			}
		}
		// A lone object with many fields reads better as name/value pairs.
		if doc.IsObject() && len(dataset) == 1 && !opts.Project {
			return VerticalWriter(dataset[0], attrList, opts, w)
		}
		TableWriter(dataset, attrList, opts, w)
	}

	return nil
}

func spitScalar(doc gjson.Result, opts Options, w io.Writer) error {
	switch opts.Output {
	case "json":
		_, err := fmt.Fprintln(w, doc.Raw)
		return err
	case "yaml":
		b, err := yaml.Marshal(doc.Value())
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		_, err := fmt.Fprintln(w, doc.String())
		return err
	}
}

func spitList(candidates gjson.Result, opts Options, w io.Writer) error {
	switch opts.Output {
	case "json":
		_, err := fmt.Fprintln(w, candidates.Raw)
		return err
	case "yaml":
		b, err := yaml.Marshal(candidates.Value())
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		for _, v := range candidates.Array() {
			if _, err := fmt.Fprintln(w, InterfaceToString(v.Value(), "-")); err != nil {
				return err
			}
		}
		return nil
	}
}

func spitJSON(dataset []map[string]interface{}, single bool, w io.Writer) error {
	var v interface{} = dataset
	if single && len(dataset) == 1 {
		v = dataset[0]
	}
	if v == nil || (!single && len(dataset) == 0) {
		v = []interface{}{}
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func spitYAML(dataset []map[string]interface{}, single bool, w io.Writer) error {
	var v interface{} = dataset
	if single && len(dataset) == 1 {
		v = dataset[0]
	}
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	_, err = w.Write(b)
	return err
}

// inferAttrs picks the scalar fields of the first record, sorted by name, as
// columns when neither the operation nor the user named any.
func inferAttrs(candidates gjson.Result) attrs.AttrList {
	var keys []string
	candidates.Get("0").ForEach(func(k, v gjson.Result) bool {
		if !v.IsObject() && !v.IsArray() {
			keys = append(keys, k.String())
		}
		return true
	})
	sort.Strings(keys)
	log.Tracef("inferred attrs: keys=%v", keys)
	return attrs.Defaults(keys...)
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(
	resultSet []map[string]interface{},
	attrList attrs.AttrList,
	opts Options,
	w io.Writer) {

	if len(resultSet) == 0 {
		return
	}

	headerStyle, evenRowStyle, oddRowStyle := styles(opts)

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(attrList))
		for _, attr := range attrList {
			if !attr.Include {
				continue
			}
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	if opts.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Header))
	}

	pad := opts.Padding
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
		var headers []string
		for _, attr := range attrList {
			if attr.Include {
				headers = append(headers, attr.OutputKey)
			}
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// VerticalWriter renders a single record as name/value rows.
func VerticalWriter(record map[string]interface{}, attrList attrs.AttrList, opts Options, w io.Writer) error {
	var rows []map[string]interface{}
	for _, attr := range attrList {
		if !attr.Include {
			continue
		}
		rows = append(rows, map[string]interface{}{
			"Name":  attr.OutputKey,
			"Value": record[attr.OutputKey],
		})
	}
	vertical := attrs.Defaults("Name", "Value")
	opts.Titles = false
	TableWriter(rows, vertical, opts, w)
	return nil
}

func styles(opts Options) (header, even, odd lipgloss.Style) {
	header = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
	even, odd = cell, cell

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")
		header = header.Foreground(headerColor)
		even = even.Foreground(evenColor)
		odd = odd.Foreground(oddColor)
	}
	return header, even, odd
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background color and brightness so that we can
// make sure output is reasonably visible for most terminal themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// An explicit config color wins; the user owns its contrast.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
