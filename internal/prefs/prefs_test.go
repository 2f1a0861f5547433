package prefs

// prefs_test.go — parsing, classification and extraction.
//
// Properties covered:
//   - line classification by the two shape predicates, 1-based numbering
//   - LF/CRLF terminators preserved per line, stray \r stripped from Text
//   - extraction: http-keyed nickname/uri/enabled only, empty nickname
//     allowed, empty uri/enabled rejected, first backslash removed from
//     uri, last write wins, first-appearance key order

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, input string) *Document {
	t.Helper()
	doc, err := ParseDocument(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	return doc
}

func TestParseDocumentClassification(t *testing.T) {
	doc := mustParse(t, "eclipse.preferences.version=1\n"+
		"repositories/http\\:__example.org/uri=http\\://example.org/\n"+
		"garbage here\n")

	want := []LineKind{KindVersion, KindRepository, KindInvalid}
	if len(doc.Lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(doc.Lines), len(want))
	}
	for i, ln := range doc.Lines {
		if ln.Kind != want[i] {
			t.Errorf("line %d: kind = %v, want %v", i+1, ln.Kind, want[i])
		}
		if ln.Num != i+1 {
			t.Errorf("line %d: Num = %d, want %d", i+1, ln.Num, i+1)
		}
	}
}

func TestParseDocumentTerminators(t *testing.T) {
	doc := mustParse(t, "eclipse.preferences.version=1\r\n"+
		"repositories/http\\:__a/enabled=true\n"+
		"repositories/http\\:__a/nickname=A")

	type want struct {
		text string
		eol  string
	}
	wants := []want{
		{"eclipse.preferences.version=1", "\r\n"},
		{"repositories/http\\:__a/enabled=true", "\n"},
		{"repositories/http\\:__a/nickname=A", ""},
	}
	if len(doc.Lines) != len(wants) {
		t.Fatalf("got %d lines, want %d", len(doc.Lines), len(wants))
	}
	for i, w := range wants {
		if doc.Lines[i].Text != w.text {
			t.Errorf("line %d: Text = %q, want %q", i+1, doc.Lines[i].Text, w.text)
		}
		if doc.Lines[i].EOL != w.eol {
			t.Errorf("line %d: EOL = %q, want %q", i+1, doc.Lines[i].EOL, w.eol)
		}
	}
	// The stray \r must not leak into extracted values.
	if got := doc.Repos["http\\:__a"]["enabled"]; got != "true" {
		t.Errorf("enabled = %q, want %q", got, "true")
	}
}

func TestExtraction(t *testing.T) {
	tests := []struct {
		name string
		line string
		key  string
		prop string
		want string
		none bool // nothing extracted
	}{
		{
			name: "empty nickname allowed",
			line: "repositories/http\\:__example.org/nickname=",
			key:  "http\\:__example.org", prop: "nickname", want: "",
		},
		{
			name: "uri backslash removed",
			line: "repositories/http\\:__example.org/uri=http\\://example.org/",
			key:  "http\\:__example.org", prop: "uri", want: "http://example.org/",
		},
		{
			name: "only first backslash removed",
			line: "repositories/http\\:__x/uri=http\\://a\\b",
			key:  "http\\:__x", prop: "uri", want: "http://a\\b",
		},
		{
			name: "enabled stored verbatim",
			line: "repositories/http\\:__example.org/enabled=true",
			key:  "http\\:__example.org", prop: "enabled", want: "true",
		},
		{
			name: "key containing slashes",
			line: "repositories/https://example.org/updates/nickname=Updates",
			key:  "https://example.org/updates", prop: "nickname", want: "Updates",
		},
		{
			name: "empty uri rejected",
			line: "repositories/http\\:__example.org/uri=",
			none: true,
		},
		{
			name: "empty enabled rejected",
			line: "repositories/http\\:__example.org/enabled=",
			none: true,
		},
		{
			name: "non-http key not significant",
			line: "repositories/file\\:__local/nickname=Local",
			none: true,
		},
		{
			name: "other property ignored",
			line: "repositories/http\\:__example.org/isSystem=false",
			none: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.line+"\n")
			if tt.none {
				if len(doc.Repos) != 0 {
					t.Fatalf("expected no extraction, got %v", doc.Repos)
				}
				return
			}
			props, ok := doc.Repos[tt.key]
			if !ok {
				t.Fatalf("key %q not extracted; repos: %v", tt.key, doc.Repos)
			}
			got, ok := props[tt.prop]
			if !ok {
				t.Fatalf("property %q not stored; props: %v", tt.prop, props)
			}
			if got != tt.want {
				t.Errorf("%s = %q, want %q", tt.prop, got, tt.want)
			}
		})
	}
}

func TestExtractionLastWriteWins(t *testing.T) {
	doc := mustParse(t, "repositories/http\\:__a/nickname=First\n"+
		"repositories/http\\:__a/nickname=Second\n")
	if got := doc.Repos["http\\:__a"]["nickname"]; got != "Second" {
		t.Errorf("nickname = %q, want %q", got, "Second")
	}
	if len(doc.Order) != 1 {
		t.Errorf("Order has %d keys, want 1", len(doc.Order))
	}
}

func TestOrderFollowsFirstAppearance(t *testing.T) {
	doc := mustParse(t, "repositories/http\\:__b/nickname=B\n"+
		"repositories/http\\:__a/nickname=A\n"+
		"repositories/http\\:__b/enabled=true\n"+
		"repositories/http\\:__c/nickname=C\n")
	want := []string{"http\\:__b", "http\\:__a", "http\\:__c"}
	if len(doc.Order) != len(want) {
		t.Fatalf("Order = %v, want %v", doc.Order, want)
	}
	for i := range want {
		if doc.Order[i] != want[i] {
			t.Errorf("Order[%d] = %q, want %q", i, doc.Order[i], want[i])
		}
	}
}

func TestInvalidLines(t *testing.T) {
	doc := mustParse(t, "eclipse.preferences.version=1\n"+
		"bogus\n"+
		"repositories/http\\:__a/nickname=A\n"+
		"more bogus\n")
	invalid := doc.InvalidLines()
	if len(invalid) != 2 {
		t.Fatalf("got %d invalid lines, want 2", len(invalid))
	}
	if invalid[0].Num != 2 || invalid[1].Num != 4 {
		t.Errorf("invalid line numbers = %d, %d; want 2, 4", invalid[0].Num, invalid[1].Num)
	}
	if invalid[0].Text != "bogus" {
		t.Errorf("invalid[0].Text = %q, want %q", invalid[0].Text, "bogus")
	}
}

func TestParseDocumentEmpty(t *testing.T) {
	doc := mustParse(t, "")
	if len(doc.Lines) != 0 {
		t.Errorf("got %d lines for empty input, want 0", len(doc.Lines))
	}
	if len(doc.Repos) != 0 {
		t.Errorf("got %d repos for empty input, want 0", len(doc.Repos))
	}
}
