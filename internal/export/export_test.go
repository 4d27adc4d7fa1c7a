package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peels/internal/models"
	"peels/internal/usecases"
)

func sampleEntry() models.Entry {
	return models.Entry{
		Title: "A {curly} day",
		Content: json.RawMessage(`{"blocks":[
			{"key":"1","text":"Big news","type":"header-one","inlineStyleRanges":[]},
			{"key":"2","text":"I felt bold and brave","type":"unstyled",
			 "inlineStyleRanges":[{"offset":7,"length":4,"style":"BOLD"},{"offset":16,"length":5,"style":"ITALIC"}]}
		],"entityMap":{}}`),
		PlainText: "Big news\nI felt bold and brave",
		Mood:      "😊",
		EntryDate: time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC),
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, PDF, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, RTF, f)

	_, err = ParseFormat("docx")
	assert.ErrorIs(t, err, usecases.ErrInvalidInput)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "my-summer-2024.rtf", RTF.Filename("My Summer 2024!"))
	assert.Equal(t, "peels-export.pdf", PDF.Filename("😊😊"))
}

func TestRenderRTF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, RTF, `Back\slash`, []models.Entry{sampleEntry()}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `{\rtf1`))
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Contains(t, out, `Back\\slash`)
	assert.Contains(t, out, `A \{curly\} day`)
	assert.Contains(t, out, `\b\fs40 Big news`)
	assert.Contains(t, out, `I felt \b bold\b0  and \i brave\i0 `)
	// U+1F60A as a surrogate pair
	assert.Contains(t, out, `\u-10179?\u-8694?`)
	assert.Equal(t, strings.Count(out, "{"), strings.Count(out, "}")+strings.Count(out, `\{`)-strings.Count(out, `\}`))
}

func TestRenderRTFSeparatesEntries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, RTF, "Journal", []models.Entry{sampleEntry(), sampleEntry()}))
	assert.Equal(t, 1, strings.Count(buf.String(), `\page`))
}

func TestStyledRTFCountsUTF16Units(t *testing.T) {
	var b strings.Builder
	writeStyledRTF(&b, usecases.Block{
		Text:              "🍌ok",
		InlineStyleRanges: []usecases.StyleRange{{Offset: 2, Length: 2, Style: "UNDERLINE"}},
	})
	assert.Equal(t, `\u-10180?\u-8372?\ul ok\ulnone `, b.String())
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Text, "Diary", []models.Entry{sampleEntry()}))

	assert.Equal(t, "Diary\n=====\n\nA {curly} day\nWednesday, May 8, 2024 | mood: 😊\n\nBig news\nI felt bold and brave\n", buf.String())
}

func TestRenderTextFallsBackToPlainText(t *testing.T) {
	e := sampleEntry()
	e.Content = json.RawMessage(`not json`)
	e.PlainText = "line one\nline two"

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Text, "D", []models.Entry{e}))
	assert.Contains(t, buf.String(), "line one\nline two\n")
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, PDF, "Diary", []models.Entry{sampleEntry()}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
