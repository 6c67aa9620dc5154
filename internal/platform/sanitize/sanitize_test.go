package sanitize

import (
	"strings"
	"testing"
)

func TestNoteHTML_KeepsFormattingTags(t *testing.T) {
	in := "<p>Patient presents with <b>acute</b> symptoms.</p>"
	got := NoteHTML(in)
	if got != "<p>Patient presents with <b>acute</b> symptoms.</p>" {
		t.Errorf("unexpected output: %s", got)
	}
}

func TestNoteHTML_DropsScriptWithContent(t *testing.T) {
	in := `<p>Hello</p><script>alert("x")</script><p>World</p>`
	got := NoteHTML(in)
	if strings.Contains(got, "script") || strings.Contains(got, "alert") {
		t.Errorf("script content leaked: %s", got)
	}
	if !strings.Contains(got, "<p>Hello</p>") || !strings.Contains(got, "<p>World</p>") {
		t.Errorf("surrounding content lost: %s", got)
	}
}

func TestNoteHTML_StripsAttributes(t *testing.T) {
	in := `<p onclick="steal()" style="color:red">note</p>`
	got := NoteHTML(in)
	if got != "<p>note</p>" {
		t.Errorf("expected attributes stripped, got: %s", got)
	}
}

func TestNoteHTML_UnknownTagKeepsText(t *testing.T) {
	in := `<marquee>lab value 4.2</marquee>`
	got := NoteHTML(in)
	if got != "lab value 4.2" {
		t.Errorf("expected tag stripped but text kept, got: %s", got)
	}
}

func TestNoteHTML_EscapesText(t *testing.T) {
	in := `BP 120/80 <unknown> a<b`
	got := NoteHTML(in)
	if strings.Contains(got, "<unknown>") {
		t.Errorf("raw angle brackets leaked: %s", got)
	}
}

func TestNoteHTML_Empty(t *testing.T) {
	if got := NoteHTML(""); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestNoteHTML_Table(t *testing.T) {
	in := `<table><tr><td>WBC</td><td>9.1</td></tr></table>`
	got := NoteHTML(in)
	if got != in {
		t.Errorf("expected table markup preserved, got: %s", got)
	}
}

func TestNoteText_StripsAllMarkup(t *testing.T) {
	in := `<p>History of <b>hypertension</b>.</p><script>x()</script>`
	got := NoteText(in)
	if got != "History of hypertension ." {
		t.Errorf("unexpected plain text: %q", got)
	}
}

func TestNoteText_CollapsesWhitespace(t *testing.T) {
	in := "<p>line one</p>\n\n<p>line   two</p>"
	got := NoteText(in)
	if got != "line one line two" {
		t.Errorf("unexpected plain text: %q", got)
	}
}
