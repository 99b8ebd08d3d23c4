// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/awsctl/awsctl/internal/aws"
	"github.com/awsctl/awsctl/internal/cmdlet"
	"github.com/awsctl/awsctl/internal/command"
	"github.com/awsctl/awsctl/internal/meta"
)

type FrontMatter struct {
	Title   string `yaml:"title"`
	Service string `yaml:"service"`
	Version string `yaml:"version"`
	Date    string `yaml:"date"`
}

type ServiceDoc struct {
	FrontMatter string
	Name        string
	Usage       string
	Ops         []OpDoc
}

type OpDoc struct {
	Name      string
	API       string
	Usage     string
	UsageText string
	Mutating  bool
	Paged     bool
	Params    []ParamDoc
	Flags     []string
}

type ParamDoc struct {
	Name     string
	Kind     string
	Required bool
	Pipeline bool
	Usage    string
	Enum     string
}

const serviceTemplate = `---
{{ .FrontMatter }}---

# awsctl {{ .Name }}

{{ .Usage }}

| Operation | API | Notes |
|-----------|-----|-------|
{{- range .Ops }}
| [{{ .Name }}](#{{ .Name }}) | {{ .API }} | {{ if .Mutating }}confirms{{ end }}{{ if .Paged }}paged{{ end }} |
{{- end }}
{{ range .Ops }}
## {{ .Name }}

{{ .Usage }}

` + "```" + `
{{ .UsageText }}
` + "```" + `
{{ if .Params }}
| Parameter | Type | Required | Description |
|-----------|------|----------|-------------|
{{- range .Params }}
| ` + "`--{{ .Name }}`" + ` | {{ .Kind }}{{ if .Pipeline }} (pipeline){{ end }} | {{ if .Required }}yes{{ end }} | {{ .Usage }}{{ if .Enum }} One of {{ .Enum }}.{{ end }} |
{{- end }}
{{ end }}
Common flags: {{ join .Flags ", " }}
{{ end }}`

func main() {
	docs := "docs"
	if len(os.Args) > 1 {
		docs = os.Args[1]
	}

	folder := filepath.Join(docs, "commands")
	if err := os.MkdirAll(folder, 0755); err != nil {
		panic(err)
	}

	app := command.NewApp(context.Background(), []string{"awsctl"}, meta.StdStreams(), aws.NewPool())
	version := getVersion()
	date := time.Now().Format("January 2, 2006")

	for _, svc := range collect(app, version, date) {
		path := filepath.Join(folder, svc.Name+".md")
		fmt.Println("Generating", path)

		file, err := os.Create(path)
		if err != nil {
			panic(err)
		}
		if err := render(file, svc); err != nil {
			panic(err)
		}
		file.Close()
	}
}

// collect walks the service groups of root. Groups without operations, such
// as completion, are skipped.
func collect(root *cli.Command, version, date string) []ServiceDoc {
	var docs []ServiceDoc
	for _, group := range root.Commands {
		svc := ServiceDoc{Name: group.Name, Usage: group.Usage}

		for _, cmd := range group.Commands {
			op, ok := cmd.Metadata["op"].(cmdlet.Op)
			if !ok {
				continue
			}
			svc.Ops = append(svc.Ops, opDoc(cmd, op.Def()))
		}
		if len(svc.Ops) == 0 {
			continue
		}

		fm, _ := yaml.Marshal(FrontMatter{
			Title:   "awsctl " + group.Name,
			Service: group.Name,
			Version: version,
			Date:    date,
		})
		svc.FrontMatter = string(fm)
		docs = append(docs, svc)
	}
	return docs
}

func opDoc(cmd *cli.Command, def *cmdlet.Def) OpDoc {
	doc := OpDoc{
		Name:      def.Name,
		API:       def.API,
		Usage:     def.Usage,
		UsageText: cmd.UsageText,
		Mutating:  def.Mutating,
		Paged:     def.Pager != nil,
	}

	own := map[string]bool{}
	for _, p := range def.Params {
		own[p.Name] = true
		doc.Params = append(doc.Params, ParamDoc{
			Name:     p.Name,
			Kind:     p.Kind.String(),
			Required: p.Required,
			Pipeline: p.Pipeline,
			Usage:    p.Usage,
			Enum:     strings.Join(p.Enum, ", "),
		})
	}

	for _, f := range cmd.Flags {
		name := f.Names()[0]
		if own[name] {
			continue
		}
		if vf, ok := f.(cli.VisibleFlag); ok && !vf.IsVisible() {
			continue
		}
		doc.Flags = append(doc.Flags, "`--"+name+"`")
	}
	return doc
}

func render(w io.Writer, svc ServiceDoc) error {
	tmpl, err := template.New("service").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(serviceTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, svc)
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
