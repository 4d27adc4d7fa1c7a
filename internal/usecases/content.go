package usecases

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// Document is the raw form the rich-text editor stores entry content in.
type Document struct {
	Blocks    []Block         `json:"blocks"`
	EntityMap json.RawMessage `json:"entityMap,omitempty"`
}

type Block struct {
	Key               string       `json:"key"`
	Text              string       `json:"text"`
	Type              string       `json:"type"`
	InlineStyleRanges []StyleRange `json:"inlineStyleRanges"`
}

// StyleRange offsets and lengths count UTF-16 code units, like the editor does.
type StyleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

// EmptyDocument is stored when an entry is created without content.
var EmptyDocument = json.RawMessage(`{"blocks":[],"entityMap":{}}`)

func ParseContent(raw json.RawMessage) (Document, error) {
	var doc Document

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return doc, nil
	}
	if !strings.HasPrefix(trimmed, "{") {
		return doc, fmt.Errorf("%w: content must be a JSON object", ErrInvalidInput)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return doc, fmt.Errorf("%w: content: %v", ErrInvalidInput, err)
	}
	if _, ok := probe["blocks"]; !ok {
		return doc, fmt.Errorf("%w: content has no blocks", ErrInvalidInput)
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("%w: content: %v", ErrInvalidInput, err)
	}
	if doc.Blocks == nil {
		return doc, fmt.Errorf("%w: content blocks must be an array", ErrInvalidInput)
	}

	return doc, nil
}

// PlainText joins block texts with newlines.
func (d Document) PlainText() string {
	lines := make([]string, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		lines = append(lines, b.Text)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func (d Document) WordCount() int {
	return CountWords(d.PlainText())
}

func CountWords(text string) int {
	return len(strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) && r != '\'' && r != '-'
	}))
}

// NormalizeContent validates raw content and returns what should be stored
// together with its plain text and word count.
func NormalizeContent(raw json.RawMessage) (json.RawMessage, string, int, error) {
	doc, err := ParseContent(raw)
	if err != nil {
		return nil, "", 0, err
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return EmptyDocument, "", 0, nil
	}

	text := doc.PlainText()
	return raw, text, CountWords(text), nil
}
