// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var segmentRe = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(\d+|\*)?\])?$`)

// Driller navigates JSON using a dot path in which each segment may carry an
// array subscript:
//
//   - Name      a single element array collapses to that element
//   - Name[2]   the third element
//   - Name[] or Name[*]  the remaining path is applied to every element and
//     the results are collected into an array
//
// An invalid segment or an out of range index yields an empty Result.
func Driller(jsonData string, path string) gjson.Result {
	if path == "" {
		return gjson.Parse(jsonData)
	}
	return drill(gjson.Parse(jsonData), strings.Split(path, "."))
}

func drill(current gjson.Result, parts []string) gjson.Result {
	for i, p := range parts {
		matches := segmentRe.FindStringSubmatch(p)
		if len(matches) == 0 {
			return gjson.Result{}
		}

		key, subscript, index := matches[1], matches[2], matches[3]

		val := current.Get(key)
		if !val.IsArray() {
			if subscript != "" {
				return gjson.Result{}
			}
			current = val
			continue
		}

		arr := val.Array()
		switch {
		case subscript == "":
			if len(arr) == 1 {
				val = arr[0]
			}
		case index == "" || index == "*":
			return fanOut(arr, parts[i+1:])
		default:
			n, err := strconv.Atoi(index)
			if err != nil || n >= len(arr) {
				return gjson.Result{}
			}
			val = arr[n]
		}

		current = val
	}

	return current
}

// fanOut applies rest to every element and joins the results that exist into
// a JSON array.
func fanOut(arr []gjson.Result, rest []string) gjson.Result {
	var b strings.Builder
	b.WriteByte('[')
	n := 0
	for _, elem := range arr {
		v := elem
		if len(rest) > 0 {
			v = drill(elem, rest)
		}
		if !v.Exists() {
			continue
		}
		if n > 0 {
			b.WriteByte(',')
		}
		b.WriteString(v.Raw)
		n++
	}
	b.WriteByte(']')
	return gjson.Parse(b.String())
}
