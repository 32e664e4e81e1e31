// Package profile loads the compression profile document: the JSON file that
// names the Ghostscript base arguments and the flags of each quality tier.
package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Reserved top-level keys. Every other object-valued key is a quality tier.
const (
	KeyBaseArgs = "base_args"
	KeyPics     = "pics"
	KeyCurrent  = "current"
	KeyPath     = "path"
)

// DefaultBaseArgs are used when the document has no usable base_args.
var DefaultBaseArgs = []string{
	"-sDEVICE=pdfwrite",
	"-dNOPAUSE",
	"-dQUIET",
	"-dBATCH",
	"-dCompatibilityLevel=1.4",
}

// Flag is one tier setting, passed to Ghostscript as -Key=Value.
type Flag struct {
	Key   string
	Value string
}

// Arg renders the flag as a single command-line argument.
func (f Flag) Arg() string {
	return "-" + f.Key + "=" + f.Value
}

// Tier is a named compression profile. Flags keep document order.
type Tier struct {
	Name  string
	Flags []Flag
}

// Selection records the last tier picked in the settings surface.
type Selection struct {
	Tier    string
	Picture string
}

// Document is a parsed profile document.
type Document struct {
	BaseArgs []string
	Pics     map[string]string
	Current  *Selection
	Path     string

	tiers     map[string]Tier
	tierOrder []string
}

// EffectiveBaseArgs returns BaseArgs, or DefaultBaseArgs when it is empty.
// A missing key, a null value and an empty list all fall back to the defaults.
func (d *Document) EffectiveBaseArgs() []string {
	if len(d.BaseArgs) > 0 {
		return append([]string(nil), d.BaseArgs...)
	}
	return append([]string(nil), DefaultBaseArgs...)
}

// Tier looks up a tier by name.
func (d *Document) Tier(name string) (Tier, bool) {
	t, ok := d.tiers[name]
	return t, ok
}

// TierNames returns tier names in document order.
func (d *Document) TierNames() []string {
	return append([]string(nil), d.tierOrder...)
}

// Picture returns the image configured for tier in pics.
func (d *Document) Picture(tier string) string {
	return d.Pics[tier]
}

// member is one key/value pair of a JSON object, in source order.
type member struct {
	Key   string
	Value json.RawMessage
}

// decodeObject walks a JSON object token by token so member order survives.
func decodeObject(data []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var members []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode %q: %w", key, err)
		}
		members = append(members, member{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return members, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// scalarText renders a JSON string without quotes and numbers or booleans as written.
func scalarText(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("empty value")
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", fmt.Errorf("expected scalar, got %s", trimmed)
	}
	if isNull(trimmed) {
		return "", fmt.Errorf("expected scalar, got null")
	}
	return string(trimmed), nil
}

func parseTier(name string, raw json.RawMessage) (Tier, error) {
	members, err := decodeObject(raw)
	if err != nil {
		return Tier{}, err
	}
	tier := Tier{Name: name, Flags: make([]Flag, 0, len(members))}
	seen := make(map[string]int, len(members))
	for _, m := range members {
		value, err := scalarText(m.Value)
		if err != nil {
			return Tier{}, fmt.Errorf("flag %q: %w", m.Key, err)
		}
		// A repeated key keeps its first position and takes the last value.
		if i, dup := seen[m.Key]; dup {
			tier.Flags[i].Value = value
			continue
		}
		seen[m.Key] = len(tier.Flags)
		tier.Flags = append(tier.Flags, Flag{Key: m.Key, Value: value})
	}
	return tier, nil
}

func parseDocument(data []byte) (*Document, error) {
	members, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Pics:  map[string]string{},
		tiers: map[string]Tier{},
	}

	for _, m := range members {
		switch m.Key {
		case KeyBaseArgs:
			if isNull(m.Value) {
				continue
			}
			if err := json.Unmarshal(m.Value, &doc.BaseArgs); err != nil {
				return nil, fmt.Errorf("%s: %w", KeyBaseArgs, err)
			}
		case KeyPics:
			if err := json.Unmarshal(m.Value, &doc.Pics); err != nil {
				return nil, fmt.Errorf("%s: %w", KeyPics, err)
			}
		case KeyCurrent:
			entries, err := decodeObject(m.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", KeyCurrent, err)
			}
			if len(entries) > 0 {
				picture, err := scalarText(entries[0].Value)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", KeyCurrent, err)
				}
				doc.Current = &Selection{Tier: entries[0].Key, Picture: picture}
			}
		case KeyPath:
			if err := json.Unmarshal(m.Value, &doc.Path); err != nil {
				return nil, fmt.Errorf("%s: %w", KeyPath, err)
			}
		default:
			// Only objects are tiers. Other extras are ignored.
			if !isObject(m.Value) {
				continue
			}
			tier, err := parseTier(m.Key, m.Value)
			if err != nil {
				return nil, fmt.Errorf("tier %q: %w", m.Key, err)
			}
			if _, dup := doc.tiers[m.Key]; !dup {
				doc.tierOrder = append(doc.tierOrder, m.Key)
			}
			doc.tiers[m.Key] = tier
		}
	}

	return doc, nil
}

// String summarizes the document for logs.
func (d *Document) String() string {
	return fmt.Sprintf("profile{tiers=[%s], base_args=%d}", strings.Join(d.tierOrder, ","), len(d.BaseArgs))
}
