// internal/domain/models/richtext.go
package models

import "strings"

// RichText is the structured document format used for descriptions, prompts,
// explanations, and choice labels. It is the stored shape of whatever the
// rich-text editor produces: a tree of typed nodes where leaf nodes carry
// text and container nodes carry children.
//
// The editor itself is an external collaborator; this type only needs to
// round-trip the tree through BSON/JSON and flatten it to plain text.
type RichText struct {
	Type    string     `bson:"type,omitempty" json:"type,omitempty"`
	Text    string     `bson:"text,omitempty" json:"text,omitempty"`
	Content []RichText `bson:"content,omitempty" json:"content,omitempty"`
}

// EmptyDoc returns the empty structured document used as the default for
// absent rich-text fields.
func EmptyDoc() RichText {
	return RichText{Type: "doc"}
}

// TextDoc wraps a plain string in a minimal document. Import payloads may
// supply either a plain string or a full node tree for rich-text fields.
func TextDoc(s string) RichText {
	if s == "" {
		return EmptyDoc()
	}
	return RichText{
		Type:    "doc",
		Content: []RichText{{Type: "text", Text: s}},
	}
}

// PlainText flattens the document to plain text: all text nodes are visited
// depth-first and joined with single spaces.
func (rt RichText) PlainText() string {
	var parts []string
	rt.collectText(&parts)
	return strings.Join(parts, " ")
}

func (rt RichText) collectText(parts *[]string) {
	if t := strings.TrimSpace(rt.Text); t != "" {
		*parts = append(*parts, t)
	}
	for _, child := range rt.Content {
		child.collectText(parts)
	}
}

// IsBlank reports whether the flattened plain text of the document is empty.
func (rt RichText) IsBlank() bool {
	return strings.TrimSpace(rt.PlainText()) == ""
}

// RichTextFromAny converts a loosely typed value (from a decoded JSON import
// payload) into a RichText. Plain strings are wrapped in a text document;
// maps are walked as node trees. The second return is false when the value
// is present but not a recognizable document shape.
func RichTextFromAny(v any) (RichText, bool) {
	switch val := v.(type) {
	case nil:
		return EmptyDoc(), true
	case string:
		return TextDoc(strings.TrimSpace(val)), true
	case map[string]any:
		return richTextFromMap(val), true
	default:
		return EmptyDoc(), false
	}
}

func richTextFromMap(m map[string]any) RichText {
	rt := RichText{}
	if t, ok := m["type"].(string); ok {
		rt.Type = t
	}
	if t, ok := m["text"].(string); ok {
		rt.Text = t
	}
	if children, ok := m["content"].([]any); ok {
		for _, c := range children {
			if cm, ok := c.(map[string]any); ok {
				rt.Content = append(rt.Content, richTextFromMap(cm))
			}
		}
	}
	return rt
}
