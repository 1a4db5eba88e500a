// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package attrs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var lengthRe = regexp.MustCompile(`-?\d+`)

// Attr represents each of the keys to be included in the output. Key is a
// gjson path into the record, thus the name.
type Attr struct {
	// The gjson path to extract from the record.
	Key string `yaml:"key"`
	// Should this Attr be included in output or is it just carrying a
	// transform?
	Include bool `yaml:"include"`
	// The key to use in the output. This will also be used as the column title
	// when output=text.
	OutputKey string `yaml:"outputKey"`
	// Transformation spec to apply to the output value.
	TransformSpec string `yaml:"transformSpec"`
}

// Transform applies the case and length transformations in TransformSpec to
// string values. Anything else is returned untouched.
//
//	l / L   lower case
//	u / U   upper case
//	N       truncate to N characters
//	-N      shorten to N characters by eliding the middle
func (a *Attr) Transform(value interface{}) interface{} {
	result, ok := value.(string)
	if !ok || a.TransformSpec == "" {
		return value
	}

	// The last case transformation wins so a per-attr spec can override the
	// global one prepended to it. IOW...  --attrs '*::U,name::l' will be lower
	// case.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	// Same logic as above re: case. The last length wins.
	if match := lengthRe.FindAllString(a.TransformSpec, -1); len(match) != 0 {
		l, _ := strconv.Atoi(match[len(match)-1])
		abs := int(math.Abs(float64(l)))
		runes := []rune(result)
		if len(runes) > abs {
			if l < 0 {
				side := max(abs/2-1, 0)
				result = string(runes[:side]) + ".." + string(runes[len(runes)-side:])
			} else {
				result = string(runes[:abs])
			}
		}
	}

	return result
}

type AttrList []Attr

// String returns the AttrList in the same format the --attrs flag takes.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Set parses each comma separated spec of the --attrs flag and adds it to the
// AttrList. A spec is key[:outputKey[:transform]]. A leading '!' keeps the key
// out of the output, and the key '*' carries a transform for every attr.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

specloop:
	for _, spec := range strings.Split(value, ",") {
		attr := Attr{Include: true}

		fields := strings.Split(spec, ":")
		if len(fields) > 3 {
			return fmt.Errorf("invalid attr %q: too many fields", spec)
		}

		attr.Key = strings.TrimPrefix(strings.TrimSpace(fields[keyIdx]), ".")
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = strings.TrimPrefix(attr.Key[1:], ".")
		}
		if attr.Key == "" {
			return fmt.Errorf("invalid attr %q: missing key", spec)
		}
		if attr.Key == "*" {
			attr.Include = false
		}

		// The output key defaults to the last segment of the path.
		segments := strings.Split(attr.Key, ".")
		attr.OutputKey = segments[len(segments)-1]
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		// If the attr already exists in the list (because it's one of the defaults
		// for cmd or the user double-entered it) just update the existing Attr.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec inserts a global transform spec into the front of all
// attrs in the list.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""

	// If there is more than one global spec, only the first is used.
	for _, attr := range *a {
		if attr.Key == "*" {
			spec = attr.TransformSpec
			break
		}
	}

	if spec == "" {
		return nil
	}

	for i := range *a {
		if (*a)[i].Key == "*" {
			continue
		}
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}

	return nil
}

func (a *AttrList) Type() string {
	return "list"
}

// Parse builds an AttrList from defaults followed by extras and applies any
// global transform.
func Parse(defaults, extras string) (AttrList, error) {
	var al AttrList
	for _, spec := range []string{defaults, extras} {
		if err := al.Set(spec); err != nil {
			return nil, err
		}
	}
	if err := al.SetGlobalTransformSpec(); err != nil {
		return nil, err
	}
	return al, nil
}

// Included returns the attrs that produce output.
func (a AttrList) Included() AttrList {
	var out AttrList
	for _, attr := range a {
		if attr.Include {
			out = append(out, attr)
		}
	}
	return out
}

// Titles returns the output keys of the included attrs.
func (a AttrList) Titles() []string {
	inc := a.Included()
	titles := make([]string, 0, len(inc))
	for _, attr := range inc {
		titles = append(titles, attr.OutputKey)
	}
	return titles
}

// Row extracts the included attrs from a JSON record as display strings.
// Missing keys become empty cells.
func (a AttrList) Row(raw []byte) []string {
	inc := a.Included()
	row := make([]string, 0, len(inc))
	for _, attr := range inc {
		v := gjson.GetBytes(raw, attr.Key)
		if v.Type == gjson.String {
			row = append(row, fmt.Sprint(attr.Transform(v.String())))
			continue
		}
		row = append(row, v.String())
	}
	return row
}

// Project returns a JSON object holding only the included attrs, in list
// order, keyed by their output keys. With nothing included, raw is returned
// as is.
func (a AttrList) Project(raw []byte) (json.RawMessage, error) {
	inc := a.Included()
	if len(inc) == 0 {
		return raw, nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range inc {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(attr.OutputKey)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')

		v := gjson.GetBytes(raw, attr.Key)
		switch {
		case !v.Exists():
			buf.WriteString("null")
		case v.Type == gjson.String:
			s, err := json.Marshal(attr.Transform(v.String()))
			if err != nil {
				return nil, err
			}
			buf.Write(s)
		default:
			buf.WriteString(v.Raw)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
