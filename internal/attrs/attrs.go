// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/awsctl/awsctl/internal/log"
)

var lengthRe = regexp.MustCompile(`-?\d+`)

// Attr is one column of output. Key is a path into each selected record using
// the SDK's field names (e.g. "EndpointIdentifier" or "S3Settings.BucketName").
type Attr struct {
	// The path to extract from each record.
	Key string `yaml:"key" json:"Key"`
	// Should this Attr be included in output or is it just
	// intended for filtering and sorting?
	Include bool `yaml:"include" json:"Include"`
	// The key to use in the output. This is also the column title when
	// output=text.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// Transformation spec to apply to the output value.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

// Transform applies the attribute's transform spec to a value and returns the
// transformed result. Only string values are transformed.
func (a *Attr) Transform(value interface{}) interface{} {
	result, ok := value.(string)
	if !ok {
		log.Tracef("non-string value: value=%v", value)
		return value
	}

	// SDK timestamps marshal as RFC3339. t renders local time, T renders
	// relative time.
	if strings.ContainsAny(a.TransformSpec, "tT") {
		if t, err := time.Parse(time.RFC3339, result); err == nil {
			local := t.In(time.Local)
			if strings.Contains(a.TransformSpec, "T") {
				result = humanize.Time(local)
				log.Tracef("time ago: result=%s", result)
			} else {
				result = local.Format("2006-01-02T15:04:05MST")
				log.Tracef("time local: result=%s", result)
			}
		}
	}

	// The last case letter wins so that a per-attr spec overrides a global one
	// prepended by SetGlobalTransformSpec, e.g. --attrs '*::U,Status::l'.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	if a.TransformSpec == "" {
		return result
	}

	// Length transforms follow the same last-one-wins rule. A negative length
	// elides the middle of the value.
	match := lengthRe.FindAllString(a.TransformSpec, -1)
	if len(match) == 0 {
		return result
	}
	l, _ := strconv.Atoi(match[len(match)-1])
	abs := int(math.Abs(float64(l)))
	if len(result) <= abs {
		return result
	}
	if l < 0 {
		lr := abs/2 - 1
		if lr < 1 {
			lr = 1
		}
		result = result[0:lr] + ".." + result[len(result)-lr:]
		log.Tracef("length middle: result=%s", result)
	} else {
		result = result[:l]
		log.Tracef("length trunc: result=%s", result)
	}

	return result
}

// AttrList is a collection of Attr used to shape output fields.
type AttrList []Attr

// Defaults builds an AttrList from bare keys, as an operation declares its
// default text columns.
func Defaults(keys ...string) AttrList {
	var a AttrList
	if len(keys) > 0 {
		_ = a.Set(strings.Join(keys, ","))
	}
	return a
}

// Set parses each spec from --attrs and adds it to the AttrList.
//
// Each comma separated spec is key[:outputKey[:transform]]. A leading ! on the
// key keeps the attr for filtering and sorting but hides it from output. The
// output key defaults to the last dotted segment of the key.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		log.Debugf("early return: value=%s", value)
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

	specs := strings.Split(value, ",")
	log.Debugf("specs split: specs=%v", specs)
specloop:
	for _, spec := range specs {
		if strings.TrimSpace(spec) == "" {
			continue
		}

		attr := Attr{Include: true}
		fields := strings.Split(spec, ":")

		attr.Key = strings.TrimSpace(fields[keyIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		// A leading . is accepted for symmetry with --select paths.
		attr.Key = strings.TrimPrefix(attr.Key, ".")
		if attr.Key == "*" {
			attr.Include = false
		}

		switch {
		case len(fields) == 1:
			segments := strings.Split(attr.Key, ".")
			attr.OutputKey = segments[len(segments)-1]
		case strings.TrimSpace(fields[outputIdx]) != "":
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		default:
			attr.OutputKey = attr.Key
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}
		log.Tracef("attr parsed: key=%s, output=%s, spec=%s, include=%v",
			attr.Key, attr.OutputKey, attr.TransformSpec, attr.Include)

		// An attr already present (an operation default or a repeat) is updated
		// in place so that column order follows the defaults.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				log.Tracef("existing updated: i=%d", i)
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec inserts the transform spec of the "*" attr, if any, at
// the front of every attr's spec.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""
	for i := range *a {
		if (*a)[i].Key == "*" {
			spec = (*a)[i].TransformSpec
			break
		}
	}

	if spec == "" {
		log.Debugf("no global spec")
		return nil
	}

	for i := range *a {
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}
	log.Debugf("global spec prepended: spec=%s", spec)

	return nil
}

// Keys returns the Key of every attr that is not the "*" placeholder.
func (a AttrList) Keys() []string {
	keys := make([]string, 0, len(a))
	for _, attr := range a {
		if attr.Key != "*" {
			keys = append(keys, attr.Key)
		}
	}
	return keys
}

// String returns a string representation of the AttrList in the same format as
// the --attrs flag.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Type returns the flag type for use with the flag.Value interface.
func (a *AttrList) Type() string { return "list" }
