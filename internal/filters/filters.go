// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// ErrInvalidFilter is returned for a --filter expression that cannot be
// parsed.
var ErrInvalidFilter = errors.New("invalid filter")

// filterRegex is the pattern used to parse filter expressions into key,
// operator, and target components. Operators are one of = ^ ~ < > @ or /,
// optionally prefixed with '!'. This allows forms like '=', '!=', '^', '!^',
// etc.
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=^~<>@/])(.*)$`)

// Filter represents a single parsed --filter expression. Key is a gjson path
// into the record.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string

	re *regexp.Regexp
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Entries are separated by ',' unless POSTCTL_FILTER_DELIM says otherwise.
func BuildFilters(spec string) ([]Filter, error) {
	var filters []Filter

	if strings.TrimSpace(spec) == "" {
		return filters, nil
	}

	delim := ","
	if d, ok := os.LookupEnv("POSTCTL_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil || strings.TrimSpace(parts[1]) == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, filterSpec)
		}

		f := Filter{
			Key:     strings.TrimSpace(parts[1]),
			Negate:  strings.HasPrefix(parts[2], "!"),
			Operand: strings.TrimPrefix(parts[2], "!"),
			Target:  parts[3],
		}

		if f.Operand == "/" {
			re, err := regexp.Compile(f.Target)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrInvalidFilter, filterSpec, err)
			}
			f.re = re
		}

		filters = append(filters, f)
	}

	return filters, nil
}

// Match reports whether the JSON record satisfies every filter. A record
// missing a filter's key never matches it.
func Match(raw []byte, filters []Filter) bool {
	for _, filter := range filters {
		value := gjson.GetBytes(raw, filter.Key)
		if !value.Exists() || value.Type == gjson.Null {
			log.Debugf("filter key not found: %s", filter.Key)
			return false
		}

		var ok bool
		switch value.Type {
		case gjson.Number:
			ok = checkNumericOperand(value.Num, filter)
		case gjson.String:
			ok = checkStringOperand(value.String(), filter)
		case gjson.True, gjson.False:
			ok = checkStringOperand(value.String(), filter)
		default:
			ok = checkContainsOperand(value, filter)
		}

		if !ok {
			return false
		}
	}

	return true
}

// Keep returns a predicate that marshals each record to JSON and matches it
// against filters.
func Keep[T any](filters []Filter) func(T) bool {
	return func(v T) bool {
		if len(filters) == 0 {
			return true
		}
		raw, err := json.Marshal(v)
		if err != nil {
			log.WithError(err).Error("failed to marshal record for filtering")
			return false
		}
		return Match(raw, filters)
	}
}

// checkContainsOperand evaluates a membership style filter (operand '@')
// against array or object values.
func checkContainsOperand(value gjson.Result, filter Filter) bool {
	if filter.Operand != "@" {
		log.Debugf("unsupported operand %s for %s", filter.Operand, filter.Key)
		return false
	}

	found := false
	switch {
	case value.IsArray():
		value.ForEach(func(_, item gjson.Result) bool {
			found = item.String() == filter.Target
			return !found
		})
	case value.IsObject():
		found = value.Get(gjson.Escape(filter.Target)).Exists()
	}
	return found != filter.Negate
}

// checkNumericOperand compares a numeric value against the filter target using
// numeric semantics. Non-numeric targets and the string-only operands fall
// back to comparing the value's text.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Target), 64)
	if err != nil {
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Target == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Target) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Target) == !filter.Negate
	case ">":
		return value > filter.Target == !filter.Negate
	case "<":
		return value < filter.Target == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Target) == !filter.Negate
	case "/":
		re := filter.re
		if re == nil {
			var err error
			if re, err = regexp.Compile(filter.Target); err != nil {
				log.Error("invalid regex: " + filter.Target)
				return false
			}
		}
		return re.MatchString(value) == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}
