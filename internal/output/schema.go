// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/awsctl/awsctl/internal/log"
)

// schemaField is one path discovered while walking an SDK output type.
type schemaField struct {
	Path string
	Type string
}

// maxSchemaDepth limits how far nested shapes are expanded. SDK shapes can be
// recursive.
const maxSchemaDepth = 3

var timeType = reflect.TypeOf(time.Time{})

// FieldType resolves a dotted select path (e.g. "Endpoints" or
// "Attachment.Data") against typ, stepping through pointers and into slice and
// map elements. It returns false when a segment names no exported field.
func FieldType(typ reflect.Type, path string) (reflect.Type, bool) {
	typ = indirect(typ)
	if path == "" || path == "*" {
		return typ, true
	}
	for _, seg := range strings.Split(path, ".") {
		seg = strings.TrimSuffix(strings.TrimSuffix(seg, "[*]"), "[]")
		typ = elem(indirect(typ))
		if typ.Kind() != reflect.Struct {
			return nil, false
		}
		field, ok := typ.FieldByName(seg)
		if !ok || !field.IsExported() {
			return nil, false
		}
		typ = field.Type
	}
	return elem(indirect(typ)), true
}

// DumpSchema writes the sorted field paths of typ, which are the keys usable
// with --attrs, --filter and --sort.
func DumpSchema(typ reflect.Type, w io.Writer) {
	fields := dumpSchemaWalker("", elem(indirect(typ)), 0)
	if len(fields) == 0 {
		log.Debugf("no fields found: type=%s", typ)
		fmt.Fprintln(w, "(scalar)")
		return
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].Path < fields[j].Path })

	width := 0
	for _, f := range fields {
		width = max(width, len(f.Path))
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%-*s  %s\n", width, f.Path, f.Type)
	}
}

// dumpSchemaWalker recursively walks a struct type collecting exported field
// paths.
func dumpSchemaWalker(holder string, typ reflect.Type, depth int) []schemaField {
	fields := make([]schemaField, 0)
	if typ.Kind() != reflect.Struct || typ == timeType {
		return fields
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() || field.Name == "ResultMetadata" {
			continue
		}

		path := field.Name
		if holder != "" {
			path = holder + "." + field.Name
		}

		ft := indirect(field.Type)
		fields = append(fields, schemaField{Path: path, Type: typeName(ft)})

		inner := elem(ft)
		if depth < maxSchemaDepth && inner.Kind() == reflect.Struct && inner != timeType {
			if ft.Kind() == reflect.Slice {
				path += "[*]"
			}
			fields = append(fields, dumpSchemaWalker(path, inner, depth+1)...)
		}
	}

	return fields
}

// typeName is a short, package-free rendering of typ.
func typeName(typ reflect.Type) string {
	switch typ.Kind() {
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			return "blob"
		}
		return "[]" + typeName(indirect(typ.Elem()))
	case reflect.Map:
		return "map[" + typeName(typ.Key()) + "]" + typeName(indirect(typ.Elem()))
	case reflect.Struct:
		if typ == timeType {
			return "timestamp"
		}
		return typ.Name()
	case reflect.Interface:
		return "document"
	default:
		// SDK enums are named string types.
		if typ.Kind() == reflect.String && typ.Name() != "string" {
			return "enum"
		}
		return typ.Kind().String()
	}
}

func indirect(typ reflect.Type) reflect.Type {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	return typ
}

// elem returns the element type of slices and maps, and typ otherwise.
func elem(typ reflect.Type) reflect.Type {
	for typ.Kind() == reflect.Slice || typ.Kind() == reflect.Map {
		if typ.Kind() == reflect.Slice && typ.Elem().Kind() == reflect.Uint8 {
			return typ
		}
		typ = indirect(typ.Elem())
	}
	return typ
}
