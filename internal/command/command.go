// Package command parses one shell input line into an operation name and
// a set of named flag arguments (spec §4.5). Tokenization is quote-aware
// shell splitting; flag values additionally recognize list (`[a,b,c]`) and
// map (`{k1:v1,k2:v2}`) literals on top of bare strings.
package command

import (
	"strings"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/rdiaz/hbaseshell/internal/shellerr"
)

// Kind identifies the shape of a parsed flag value.
type Kind int

const (
	KindNone Kind = iota
	KindString
	KindList
	KindMap
)

// Value is a single parsed flag's value, tagged by Kind. Exactly one of
// Str, List, Map is meaningful for the corresponding Kind.
type Value struct {
	Kind Kind
	Str  string
	List []string
	Map  map[string]string
}

// AsString returns the scalar form, or ok=false for non-string kinds.
func (v *Value) AsString() (string, bool) {
	if v == nil || v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

// Command is a fully parsed input line: an operation name and its flags.
type Command struct {
	Op    string
	Flags map[string]*Value
}

// Get returns the flag named key, or nil if absent.
func (c *Command) Get(key string) *Value {
	if c.Flags == nil {
		return nil
	}
	return c.Flags[key]
}

// GetString returns the string-valued flag named key, failing if the flag
// is absent, bare (no value), or a list/map.
func (c *Command) GetString(key string) (string, error) {
	v := c.Get(key)
	s, ok := v.AsString()
	if !ok {
		return "", shellerr.MissingFlagf(key)
	}
	return s, nil
}

// GetStringOr returns the string-valued flag named key, or fallback if absent.
func (c *Command) GetStringOr(key, fallback string) string {
	if v := c.Get(key); v != nil {
		if s, ok := v.AsString(); ok {
			return s
		}
	}
	return fallback
}

// GetList returns the flag named key as a string list. A scalar string
// flag is tolerated as a one-element list (mirrors the original shell's
// leniency around single-family creates).
func (c *Command) GetList(key string) ([]string, error) {
	v := c.Get(key)
	if v == nil {
		return nil, shellerr.MissingFlagf(key)
	}
	switch v.Kind {
	case KindList:
		return v.List, nil
	case KindString:
		return []string{v.Str}, nil
	default:
		return nil, shellerr.InvalidValuef("flag '%s' must be a list or string", key)
	}
}

var tokenizer = shellwords.NewParser()

// Parse splits line into an operation name and flag map. Empty input
// yields a Command with Op == "" and an empty Flags map.
func Parse(line string) (*Command, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return &Command{Flags: map[string]*Value{}}, nil
	}

	tokenizer.ParseEnv = false
	tokenizer.ParseBacktick = false
	tokens, err := tokenizer.Parse(trimmed)
	if err != nil {
		return nil, shellerr.InvalidValuef("could not tokenize command: %v", err)
	}
	if len(tokens) == 0 {
		return &Command{Flags: map[string]*Value{}}, nil
	}

	cmd := &Command{Op: strings.ToLower(tokens[0]), Flags: map[string]*Value{}}
	for _, tok := range tokens[1:] {
		if !strings.HasPrefix(tok, "-") {
			continue
		}
		body := strings.TrimPrefix(tok, "-")
		eq := strings.Index(body, "=")
		if eq < 0 {
			cmd.Flags[body] = &Value{Kind: KindNone}
			continue
		}
		key := body[:eq]
		raw := body[eq+1:]
		cmd.Flags[key] = parseValue(raw)
	}
	return cmd, nil
}

func parseValue(raw string) *Value {
	switch {
	case strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]"):
		inner := raw[1 : len(raw)-1]
		return &Value{Kind: KindList, List: splitNonEmpty(inner, ",")}

	case strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}"):
		inner := raw[1 : len(raw)-1]
		m := map[string]string{}
		for _, pair := range splitNonEmpty(inner, ",") {
			kv := strings.SplitN(pair, ":", 2)
			if len(kv) == 2 {
				m[kv[0]] = kv[1]
			} else if len(kv) == 1 {
				m[kv[0]] = ""
			}
		}
		return &Value{Kind: KindMap, Map: m}

	default:
		return &Value{Kind: KindString, Str: raw}
	}
}

func splitNonEmpty(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	out := make([]string, len(parts))
	copy(out, parts)
	return out
}
