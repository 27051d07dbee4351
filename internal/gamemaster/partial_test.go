package gamemaster

import (
	"strings"
	"testing"
)

func TestExtractPartialFieldOpenString(t *testing.T) {
	got, ok := extractPartialField(`{"description": "Hello`, "description")
	if !ok || got != "Hello" {
		t.Fatalf("open string: got %q ok=%v, want %q", got, ok, "Hello")
	}

	got, ok = extractPartialField(`{"description": "Hello world"}`, "description")
	if !ok || got != "Hello world" {
		t.Fatalf("closed string: got %q ok=%v, want %q", got, ok, "Hello world")
	}
}

func TestExtractPartialFieldAbsent(t *testing.T) {
	cases := map[string]string{
		"field missing":     `{"actions": []}`,
		"value not started": `{"description": `,
		"empty so far":      `{"description": "`,
		"non-string value":  `{"description": 42}`,
		"empty buffer":      ``,
	}
	for name, buf := range cases {
		if got, ok := extractPartialField(buf, "description"); ok {
			t.Errorf("%s: expected absent, got %q", name, got)
		}
	}
}

func TestExtractPartialFieldCaseInsensitive(t *testing.T) {
	got, ok := extractPartialField(`{"Description": "A cave"`, "description")
	if !ok || got != "A cave" {
		t.Fatalf("got %q ok=%v, want %q", got, ok, "A cave")
	}
}

func TestExtractPartialFieldSkipsWhitespace(t *testing.T) {
	got, ok := extractPartialField("{\"description\" :\r\n \"A cave\"", "description")
	if !ok || got != "A cave" {
		t.Fatalf("got %q ok=%v, want %q", got, ok, "A cave")
	}
}

func TestExtractPartialFieldEscapes(t *testing.T) {
	got, ok := extractPartialField(`{"description": "a\"b\\c\nd\te\rf"}`, "description")
	want := "a\"b\\c\nd\te\rf"
	if !ok || got != want {
		t.Fatalf("got %q ok=%v, want %q", got, ok, want)
	}
}

func TestExtractPartialFieldUnicodeEscapePassthrough(t *testing.T) {
	// \uXXXX is not decoded; the escaped character survives literally.
	got, ok := extractPartialField(`{"description": "x\u0041y"}`, "description")
	if !ok || got != "xu0041y" {
		t.Fatalf("got %q ok=%v, want %q", got, ok, "xu0041y")
	}
}

func TestExtractPartialFieldStopsAtClosingQuote(t *testing.T) {
	got, ok := extractPartialField(`{"description": "A cave.", "imagePrompt": "ignored"}`, "description")
	if !ok || got != "A cave." {
		t.Fatalf("got %q ok=%v, want %q", got, ok, "A cave.")
	}
}

func TestExtractPartialFieldMonotonicOverGrowingBuffer(t *testing.T) {
	full := `{"description": "A dark cave full of glowing runes.", "actions": []}`
	prev := ""
	for i := 0; i <= len(full); i++ {
		got, ok := extractPartialField(full[:i], "description")
		if !ok {
			continue
		}
		if !strings.HasPrefix(got, prev) {
			t.Fatalf("prefix %d: %q is not an extension of %q", i, got, prev)
		}
		prev = got
	}
	if prev != "A dark cave full of glowing runes." {
		t.Fatalf("final value %q", prev)
	}
}
