package export

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf16"

	"peels/internal/models"
	"peels/internal/usecases"
)

const (
	styleBold uint8 = 1 << iota
	styleItalic
	styleUnderline
)

func writeRTF(w io.Writer, title string, entries []models.Entry) error {
	var b strings.Builder

	b.WriteString(`{\rtf1\ansi\ansicpg1252\deff0{\fonttbl{\f0\fswiss Helvetica;}}` + "\n")
	b.WriteString(`\f0\fs24` + "\n")
	b.WriteString(`{\pard\qc\b\fs44 `)
	writeRTFText(&b, title)
	b.WriteString(`\par}` + "\n")

	for i, e := range entries {
		if i > 0 {
			b.WriteString(`\page` + "\n")
		}
		writeRTFEntry(&b, e)
	}
	b.WriteString("}\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write rtf: %w", err)
	}
	return nil
}

func writeRTFEntry(b *strings.Builder, e models.Entry) {
	b.WriteString(`{\pard\sb240\b\fs32 `)
	writeRTFText(b, e.Title)
	b.WriteString(`\par}` + "\n")
	b.WriteString(`{\pard\i\fs20 `)
	writeRTFText(b, subtitle(e, false))
	b.WriteString(`\par}` + "\n")

	ordered := 0
	for _, blk := range entryDocument(e).Blocks {
		if blk.Type == "ordered-list-item" {
			ordered++
		} else {
			ordered = 0
		}

		switch blk.Type {
		case "header-one":
			b.WriteString(`{\pard\sb120\b\fs40 `)
		case "header-two":
			b.WriteString(`{\pard\sb120\b\fs32 `)
		case "header-three":
			b.WriteString(`{\pard\sb120\b\fs28 `)
		case "blockquote":
			b.WriteString(`{\pard\li720\i `)
		case "unordered-list-item":
			b.WriteString(`{\pard\li360\bullet  `)
		case "ordered-list-item":
			fmt.Fprintf(b, `{\pard\li360 %d. `, ordered)
		default:
			b.WriteString(`{\pard `)
		}
		writeStyledRTF(b, blk)
		b.WriteString(`\par}` + "\n")
	}
}

// writeStyledRTF emits block text with its bold, italic and underline ranges.
// Range offsets count UTF-16 units.
func writeStyledRTF(b *strings.Builder, blk usecases.Block) {
	runes := []rune(blk.Text)
	units := 0
	for _, r := range runes {
		units += utf16.RuneLen(r)
	}

	flags := make([]uint8, units)
	for _, sr := range blk.InlineStyleRanges {
		var f uint8
		switch sr.Style {
		case "BOLD":
			f = styleBold
		case "ITALIC":
			f = styleItalic
		case "UNDERLINE":
			f = styleUnderline
		default:
			continue
		}
		for i := max(sr.Offset, 0); i < sr.Offset+sr.Length && i < units; i++ {
			flags[i] |= f
		}
	}

	var cur uint8
	pos := 0
	for _, r := range runes {
		if f := flags[pos]; f != cur {
			b.WriteString(styleSwitch(cur, f))
			cur = f
		}
		writeRTFRune(b, r)
		pos += utf16.RuneLen(r)
	}
	if cur != 0 {
		b.WriteString(styleSwitch(cur, 0))
	}
}

func styleSwitch(from, to uint8) string {
	var out []string
	toggle := func(bit uint8, on, off string) {
		switch {
		case from&bit == 0 && to&bit != 0:
			out = append(out, on)
		case from&bit != 0 && to&bit == 0:
			out = append(out, off)
		}
	}
	toggle(styleBold, `\b`, `\b0`)
	toggle(styleItalic, `\i`, `\i0`)
	toggle(styleUnderline, `\ul`, `\ulnone`)
	return strings.Join(out, "") + " "
}

func writeRTFText(b *strings.Builder, s string) {
	for _, r := range s {
		writeRTFRune(b, r)
	}
}

// writeRTFRune escapes control characters and writes non-ASCII runes as
// signed 16-bit \u escapes, splitting astral runes into surrogate pairs.
func writeRTFRune(b *strings.Builder, r rune) {
	switch {
	case r == '\\' || r == '{' || r == '}':
		b.WriteByte('\\')
		b.WriteRune(r)
	case r == '\n':
		b.WriteString(`\line `)
	case r == '\t':
		b.WriteString(`\tab `)
	case r < 0x80:
		b.WriteRune(r)
	default:
		for _, u := range utf16.Encode([]rune{r}) {
			fmt.Fprintf(b, `\u%d?`, int16(u))
		}
	}
}
