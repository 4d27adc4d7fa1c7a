// Package export renders entries as downloadable documents.
package export

import (
	"fmt"
	"io"
	"strings"

	"peels/internal/models"
	"peels/internal/usecases"
)

type Format string

const (
	RTF  Format = "rtf"
	PDF  Format = "pdf"
	Text Format = "txt"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case RTF, PDF, Text:
		return f, nil
	case "":
		return RTF, nil
	}
	return "", fmt.Errorf("%w: unsupported export format %q", usecases.ErrInvalidInput, s)
}

func (f Format) ContentType() string {
	switch f {
	case PDF:
		return "application/pdf"
	case Text:
		return "text/plain; charset=utf-8"
	}
	return "application/rtf"
}

// Filename derives a download name from the document title.
func (f Format) Filename(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "peels-export"
	}
	return name + "." + string(f)
}

// Render writes title and entries to w in format f.
func Render(w io.Writer, f Format, title string, entries []models.Entry) error {
	switch f {
	case RTF:
		return writeRTF(w, title, entries)
	case PDF:
		return writePDF(w, title, entries)
	case Text:
		return writeText(w, title, entries)
	}
	return fmt.Errorf("%w: unsupported export format %q", usecases.ErrInvalidInput, f)
}

var moodLabels = map[string]string{
	"😀": "happy",
	"😊": "content",
	"😐": "neutral",
	"😔": "down",
	"😢": "sad",
	"😡": "angry",
	"😴": "tired",
	"🤩": "excited",
}

// subtitle is the date and mood line printed under an entry title.
func subtitle(e models.Entry, asciiMood bool) string {
	line := e.EntryDate.Format("Monday, January 2, 2006")
	if e.Mood == "" {
		return line
	}
	mood := e.Mood
	if asciiMood {
		mood = moodLabels[e.Mood]
		if mood == "" {
			return line
		}
	}
	return line + " | mood: " + mood
}

func entryDocument(e models.Entry) usecases.Document {
	doc, err := usecases.ParseContent(e.Content)
	if err != nil || len(doc.Blocks) == 0 {
		// fall back to the stored plain text
		for _, line := range strings.Split(e.PlainText, "\n") {
			doc.Blocks = append(doc.Blocks, usecases.Block{Text: line, Type: "unstyled"})
		}
	}
	return doc
}
