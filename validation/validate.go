// Package validation shape-checks incoming resource payloads before they
// reach persistence. It offers two strategies over the same schema rules:
// Validate aggregates every violation into a returned list, Check stops at
// the first one. Both are pure functions over the decoded JSON body.
package validation

import (
	"fmt"
	"math"
	"sort"
)

// Validate checks input against the schema and returns every violation.
// Rules: no unrecognized properties; the identifier (when requireID) is a
// non-empty string; every present declared field matches its primitive
// type, numbers must be finite. A nil or empty input with requireID set
// yields a missing-identifier entry.
func Validate(input map[string]any, s Schema, requireID bool) List {
	var errs List

	for _, name := range sortedKeys(input) {
		if _, ok := s.Fields[name]; !ok {
			errs = errs.Add(s.Resource, name, "unrecognized property")
		}
	}

	if requireID {
		errs = append(errs, checkIdentifier(input, s)...)
	}

	for _, name := range sortedFieldNames(s) {
		field := s.Fields[name]
		value, present := input[name]
		if !present || (field.Identifier && requireID) {
			// Absent optional fields are fine; the identifier was
			// already handled above.
			continue
		}
		errs = append(errs, checkField(s.Resource, name, field, value)...)
	}

	return errs
}

// Check is the fail-fast variant of Validate: same rules, but it stops
// at the first violation and reports only whether the input is valid.
func Check(input map[string]any, s Schema, requireID bool) bool {
	for name := range input {
		if _, ok := s.Fields[name]; !ok {
			return false
		}
	}

	if requireID {
		if checkIdentifier(input, s).HasErrors() {
			return false
		}
	}

	for name, field := range s.Fields {
		value, present := input[name]
		if !present || (field.Identifier && requireID) {
			continue
		}
		if checkField(s.Resource, name, field, value).HasErrors() {
			return false
		}
	}

	return true
}

func checkIdentifier(input map[string]any, s Schema) List {
	var errs List
	for name, field := range s.Fields {
		if !field.Identifier {
			continue
		}
		value, present := input[name]
		if !present {
			return errs.Add(s.Resource, name, "identifier is required")
		}
		str, ok := value.(string)
		if !ok {
			return errs.Add(s.Resource, name, "identifier must be a string")
		}
		if str == "" {
			return errs.Add(s.Resource, name, "identifier must not be empty")
		}
	}
	return errs
}

func checkField(resource, name string, field Field, value any) List {
	var errs List
	switch field.Kind {
	case String:
		str, ok := value.(string)
		if !ok {
			return errs.Add(resource, name, "must be a string")
		}
		if len(field.OneOf) > 0 && !contains(field.OneOf, str) {
			return errs.Add(resource, name, fmt.Sprintf("must be one of %v", field.OneOf))
		}
	case Number:
		num, ok := value.(float64)
		if !ok {
			return errs.Add(resource, name, "must be a number")
		}
		if math.IsNaN(num) || math.IsInf(num, 0) {
			return errs.Add(resource, name, "must be a finite number")
		}
	}
	return errs
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedFieldNames(s Schema) []string {
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
