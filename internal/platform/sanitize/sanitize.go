// Package sanitize reduces clinical note bodies to an allowlist of
// formatting markup. The source schema stores note_text as HTML written by
// upstream EHR tooling; it must never reach a browser verbatim.
package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// allowedTags is the allowlist of formatting elements kept in note bodies.
// Everything else is stripped; attributes are never kept.
var allowedTags = map[string]bool{
	"b": true, "strong": true, "i": true, "em": true, "u": true, "s": true,
	"p": true, "br": true, "div": true, "span": true, "blockquote": true,
	"ul": true, "ol": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true,
	"table": true, "thead": true, "tbody": true, "tr": true, "td": true, "th": true,
}

// droppedWithContent lists elements whose entire subtree is discarded, not
// just the tags themselves.
var droppedWithContent = map[string]bool{
	"script": true, "style": true, "iframe": true, "object": true,
	"embed": true, "noscript": true,
}

// voidTags never take a closing tag.
var voidTags = map[string]bool{
	"br": true,
}

// NoteHTML returns the note body with every element outside the allowlist
// removed. Allowed elements keep their tag but lose all attributes; text
// content is re-escaped. The result is safe to inject into the note overlay.
func NoteHTML(input string) string {
	if input == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(input))

	z := html.NewTokenizer(strings.NewReader(input))
	skipDepth := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or malformed input; either way we emit what we have.
			return b.String()

		case html.TextToken:
			if skipDepth == 0 {
				b.WriteString(html.EscapeString(string(z.Text())))
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := strings.ToLower(string(name))
			if droppedWithContent[tag] {
				if tt == html.StartTagToken && !voidTags[tag] {
					skipDepth++
				}
				continue
			}
			if skipDepth > 0 || !allowedTags[tag] {
				continue
			}
			if voidTags[tag] {
				b.WriteString("<" + tag + "/>")
			} else {
				b.WriteString("<" + tag + ">")
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := strings.ToLower(string(name))
			if droppedWithContent[tag] {
				if skipDepth > 0 {
					skipDepth--
				}
				continue
			}
			if skipDepth > 0 || !allowedTags[tag] || voidTags[tag] {
				continue
			}
			b.WriteString("</" + tag + ">")

		case html.CommentToken, html.DoctypeToken:
			// dropped
		}
	}
}

// NoteText returns the plain-text content of a note body with all markup
// removed. Used where the view only needs a preview string.
func NoteText(input string) string {
	if input == "" {
		return ""
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(input))
	skipDepth := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(z.Text())
				b.WriteByte(' ')
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			if droppedWithContent[strings.ToLower(string(name))] {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if droppedWithContent[strings.ToLower(string(name))] && skipDepth > 0 {
				skipDepth--
			}
		}
	}
}
