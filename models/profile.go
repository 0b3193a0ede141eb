package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// UserProfile carries the health constraints for a single request.
// Tokens are case-folded and trimmed at construction; the struct is
// never mutated afterwards.
type UserProfile struct {
	Allergies  []string `json:"allergies"`
	Diet       string   `json:"diet"`
	Conditions []string `json:"conditions"`
}

// profileSchema accepts allergies/conditions as either an array of strings
// or a single comma-joined string — callers have historically sent both.
const profileSchema = `{
  "type": "object",
  "properties": {
    "allergies":  {"anyOf": [{"type": "array", "items": {"type": "string"}}, {"type": "string"}]},
    "diet":       {"type": "string"},
    "conditions": {"anyOf": [{"type": "array", "items": {"type": "string"}}, {"type": "string"}]}
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiledProfileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(profileSchema), &def); err != nil {
			schemaErr = fmt.Errorf("parse profile schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://profile.json", def); err != nil {
			schemaErr = fmt.Errorf("add profile schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("schema://profile.json")
	})
	return compiledSchema, schemaErr
}

// DefaultProfile is used when the caller supplies no profile at all.
func DefaultProfile() *UserProfile {
	return &UserProfile{Allergies: []string{}, Diet: "none", Conditions: []string{}}
}

// ParseProfile validates and normalizes caller-supplied profile JSON.
// An empty payload yields the default profile.
func ParseProfile(raw string) (*UserProfile, error) {
	if strings.TrimSpace(raw) == "" {
		return DefaultProfile(), nil
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON in 'profile': %w", err)
	}

	schema, err := compiledProfileSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("invalid 'profile': %w", err)
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid 'profile': expected a JSON object")
	}

	p := &UserProfile{
		Allergies:  tokenSet(obj["allergies"]),
		Conditions: tokenSet(obj["conditions"]),
		Diet:       "none",
	}
	if d, ok := obj["diet"].(string); ok && strings.TrimSpace(d) != "" {
		p.Diet = strings.ToLower(strings.TrimSpace(d))
	}
	return p, nil
}

// tokenSet flattens an array-or-string value into normalized tokens.
func tokenSet(v any) []string {
	var rawTokens []string
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				rawTokens = append(rawTokens, s)
			}
		}
	case string:
		rawTokens = strings.Split(t, ",")
	}

	out := []string{}
	seen := map[string]bool{}
	for _, tok := range rawTokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}
