package features

import (
	"reflect"
	"testing"

	"chatstats/internal/core/rulepack"
)

func TestWords_Table(t *testing.T) {
	e := New(nil)
	tests := []struct {
		body string
		want []string
	}{
		{"hello there", []string{"hello", "there"}},
		{"Hi ALL, what's UP?", []string{"whats"}},
		{"the cat sat", nil},
		{"  Hello,\nWORLD!  hello ", []string{"hello", "world", "hello"}},
		{"snake_case ok", []string{"snake_case"}},
		{"café ok", nil},
		{"", nil},
	}
	for _, tc := range tests {
		got := e.Words(tc.body)
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Words(%q) = %q, want %q", tc.body, got, tc.want)
		}
	}
}

func TestEmojis_CountsEachCodePoint(t *testing.T) {
	e := New(nil)

	got := e.Emojis("great job 👍👍")
	if len(got) != 2 || got[0] != "👍" || got[1] != "👍" {
		t.Fatalf("Emojis = %q", got)
	}

	// thumbs up with a skin tone counts both code points
	got = e.Emojis("👍\U0001F3FD")
	if len(got) != 2 || got[1] != "\U0001F3FD" {
		t.Fatalf("skin tone sequence = %q", got)
	}

	// heart with variation selector: only the heart is in range
	got = e.Emojis("\u2764\uFE0F")
	if len(got) != 1 || got[0] != "\u2764" {
		t.Fatalf("variation selector sequence = %q", got)
	}

	if got := e.Emojis("plain text é"); len(got) != 0 {
		t.Fatalf("expected no emoji, got %q", got)
	}
}

func TestClassify_Precedence(t *testing.T) {
	e := New(nil)
	tests := []struct {
		body string
		want string
	}{
		{"image omitted, video omitted", "images"},
		{"<Media omitted>", "images"},
		{"IMG-20240101-WA0001.jpg (file attached)", "images"},
		{"video omitted", "videos"},
		{"VID-20240101-WA0002.mp4", "videos"},
		{"audio omitted", "audio"},
		{"document omitted", "documents"},
		{"report.pdf file attached", "documents"},
		{"IMAGE OMITTED", ""},
		{"just text", ""},
	}
	for _, tc := range tests {
		if got := e.Classify(tc.body); got != tc.want {
			t.Fatalf("Classify(%q) = %q, want %q", tc.body, got, tc.want)
		}
	}
}

func TestExtract_Bundle(t *testing.T) {
	e := New(nil)
	f := e.Extract("sending photo 😀 image omitted")
	if !f.HasMedia() || f.Media != "images" {
		t.Fatalf("media = %q", f.Media)
	}
	if len(f.Emojis) != 1 {
		t.Fatalf("emojis = %q", f.Emojis)
	}
	want := []string{"sending", "photo", "image", "omitted"}
	if !reflect.DeepEqual(f.Words, want) {
		t.Fatalf("words = %q, want %q", f.Words, want)
	}
}

func TestCustomPack(t *testing.T) {
	p, err := rulepack.Parse([]byte(`{
		"version": 1,
		"media": [{"category": "Stickers", "indicators": ["sticker omitted"]}],
		"emoji_ranges": [["41", "41"]],
		"words": {"min_length": 2}
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	e := New(p)
	if e.Pack() != p {
		t.Fatalf("pack not retained")
	}
	if got := e.Classify("sticker omitted"); got != "stickers" {
		t.Fatalf("Classify = %q", got)
	}
	if got := e.Words("go is ok"); len(got) != 3 {
		t.Fatalf("Words = %q", got)
	}
	// ASCII is never scanned for emoji even when a pack range covers it
	if got := e.Emojis("AAA"); len(got) != 0 {
		t.Fatalf("Emojis = %q", got)
	}
}
