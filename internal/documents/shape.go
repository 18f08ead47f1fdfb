// Package documents turns raw stored JSON into the canonical shape of each
// site collection, migrating legacy layouts on the way.
package documents

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Migration rewrites one known legacy layout.
type Migration struct {
	Name  string
	Match func(doc any) bool
	Apply func(doc any) any
}

type fieldDefault struct {
	name  string
	value func() any
	ok    func(any) bool
}

// Shape describes one collection document: where it lives, what canonical
// looks like and how to get there from older layouts.
type Shape struct {
	// Name is the store object name, e.g. data/team.json.
	Name string
	// Key is the list field of an envelope; empty for a bare array.
	Key string
	// Required documents are reported as missing instead of defaulting to zero.
	Required bool

	zero       func() any
	canonical  func(any) bool
	defaults   []fieldDefault
	migrations []Migration
}

// Envelope describes a document of the form {key: [...], ...defaults}.
func Envelope(name, key string) *Shape {
	s := &Shape{Name: name, Key: key}
	s.zero = func() any {
		doc := map[string]any{key: []any{}}
		for _, d := range s.defaults {
			doc[d.name] = d.value()
		}
		return doc
	}
	s.canonical = func(doc any) bool {
		obj, ok := doc.(map[string]any)
		if !ok || !isList(obj[key]) {
			return false
		}
		return s.hasDefaults(obj)
	}
	s.migrations = []Migration{
		{Name: "wrap bare array", Match: isList, Apply: func(doc any) any {
			return map[string]any{key: doc}
		}},
		{Name: "null list", Match: func(doc any) bool {
			obj, ok := doc.(map[string]any)
			if !ok {
				return false
			}
			v, present := obj[key]
			return present && v == nil
		}, Apply: func(doc any) any {
			obj := doc.(map[string]any)
			obj[key] = []any{}
			return obj
		}},
		{Name: "fill defaults", Match: func(doc any) bool {
			obj, ok := doc.(map[string]any)
			return ok && isList(obj[key]) && !s.hasDefaults(obj)
		}, Apply: func(doc any) any {
			obj := doc.(map[string]any)
			for _, d := range s.defaults {
				if v, present := obj[d.name]; !present || !d.ok(v) {
					obj[d.name] = d.value()
				}
			}
			return obj
		}},
	}
	return s
}

// BareList describes a document that is a JSON array with no envelope.
func BareList(name string, legacyKeys ...string) *Shape {
	s := &Shape{Name: name}
	s.zero = func() any { return []any{} }
	s.canonical = isList
	for _, k := range legacyKeys {
		k := k
		s.migrations = append(s.migrations, Migration{
			Name: "unwrap " + k,
			Match: func(doc any) bool {
				obj, ok := doc.(map[string]any)
				return ok && isList(obj[k])
			},
			Apply: func(doc any) any { return doc.(map[string]any)[k] },
		})
	}
	return s
}

// Object describes a singleton document with custom canonical rules.
func Object(name string, zero func() map[string]any, canonical func(map[string]any) bool) *Shape {
	return &Shape{
		Name: name,
		zero: func() any { return zero() },
		canonical: func(doc any) bool {
			obj, ok := doc.(map[string]any)
			return ok && canonical(obj)
		},
	}
}

// WithDefault adds a sibling field an envelope must carry.
func (s *Shape) WithDefault(field string, value func() any, ok func(any) bool) *Shape {
	s.defaults = append(s.defaults, fieldDefault{name: field, value: value, ok: ok})
	return s
}

// Alias migrates {alias: [...]} to {Key: [...]}. Aliases run before the
// generic envelope migrations.
func (s *Shape) Alias(alias string) *Shape {
	m := Migration{
		Name: "rename " + alias,
		Match: func(doc any) bool {
			obj, ok := doc.(map[string]any)
			if !ok || isList(obj[s.Key]) {
				return false
			}
			return isList(obj[alias])
		},
		Apply: func(doc any) any {
			obj := doc.(map[string]any)
			obj[s.Key] = obj[alias]
			delete(obj, alias)
			return obj
		},
	}
	s.migrations = append([]Migration{m}, s.migrations...)
	return s
}

// Migrate appends a custom migration.
func (s *Shape) Migrate(name string, match func(any) bool, apply func(any) any) *Shape {
	s.migrations = append(s.migrations, Migration{Name: name, Match: match, Apply: apply})
	return s
}

func (s *Shape) Zero() any { return s.zero() }

func (s *Shape) IsCanonical(doc any) bool { return s.canonical(doc) }

func (s *Shape) hasDefaults(obj map[string]any) bool {
	for _, d := range s.defaults {
		v, present := obj[d.name]
		if !present || !d.ok(v) {
			return false
		}
	}
	return true
}

// Normalize coerces doc into canonical form. It reports the migrations it
// applied; an empty result means doc was already canonical and is returned
// untouched.
func (s *Shape) Normalize(doc any) (any, []string) {
	var applied []string
	// Each migration moves the document strictly closer to canonical, so a
	// bounded number of passes is enough.
	for pass := 0; pass <= len(s.migrations); pass++ {
		if s.canonical(doc) {
			return doc, applied
		}
		m, ok := s.firstMatch(doc)
		if !ok {
			break
		}
		doc = m.Apply(doc)
		applied = append(applied, m.Name)
	}
	if s.canonical(doc) {
		return doc, applied
	}
	return s.Zero(), append(applied, "reset to empty")
}

func (s *Shape) firstMatch(doc any) (Migration, bool) {
	for _, m := range s.migrations {
		if m.Match(doc) {
			return m, true
		}
	}
	return Migration{}, false
}

// ErrCorrupt marks bytes that are not valid JSON.
var ErrCorrupt = errors.New("document is not valid JSON")

// Parse decodes raw bytes keeping numbers exact.
func Parse(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrCorrupt)
	}
	return doc, nil
}

func isList(v any) bool {
	_, ok := v.([]any)
	return ok
}

func isObject(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

func isStringOrNull(v any) bool {
	return v == nil || isString(v)
}
