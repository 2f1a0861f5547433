// Package prefs parses Eclipse p2 preferences files: line-oriented
// key/value listings that record configured software update sites.
//
// A well-formed file contains only two line shapes:
//
//	eclipse.preferences.version=<v>
//	repositories/<repoKey>/<prop>=<value>
//
// Anything else is invalid and becomes a candidate for in-place repair
// (see repair.go). Site properties are accumulated per repository key;
// keys are remembered in order of first appearance so downstream output
// follows the file.
package prefs

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// LineKind classifies a terminator-stripped input line.
type LineKind int

const (
	// KindVersion is the eclipse.preferences.version marker line.
	KindVersion LineKind = iota
	// KindRepository is any line beginning with "repositories/".
	KindRepository
	// KindInvalid is anything else.
	KindInvalid
)

// Line is one line of the input file. Text carries the content with the
// terminator stripped (including a stray \r before the \n); EOL carries
// the original terminator verbatim ("\n", "\r\n", or "" for an
// unterminated final line) so a rewrite can preserve it byte for byte.
type Line struct {
	Num  int // 1-based position in the file
	Text string
	EOL  string
	Kind LineKind
}

// Document is a parsed preferences file: every line as read, plus the
// per-repository property collection extracted from the repository lines.
type Document struct {
	Lines []Line

	// Repos maps repository key -> property name -> value.
	// Order tracks keys by first appearance in the file.
	Repos map[string]map[string]string
	Order []string
}

const versionPrefix = "eclipse.preferences.version="

// repoPropPattern matches the significant repository property lines.
// The key must start with http (covers https); the greedy key group
// pushes the property segment to the last path element. The value group
// admits the empty string; emptiness rules per property are applied in
// extract.
var repoPropPattern = regexp.MustCompile(`^repositories/(http.*)/(nickname|uri|enabled)=(.*)$`)

// ParseDocument reads a preferences file and classifies every line,
// extracting site properties from the well-formed repository lines.
// LF and CRLF terminators may be mixed freely in one file.
func ParseDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}

	doc := &Document{Repos: make(map[string]map[string]string)}
	num := 0
	for start := 0; start < len(data); {
		num++
		var raw, eol string
		if idx := bytes.IndexByte(data[start:], '\n'); idx >= 0 {
			raw = string(data[start : start+idx])
			eol = "\n"
			if strings.HasSuffix(raw, "\r") {
				raw = raw[:len(raw)-1]
				eol = "\r\n"
			}
			start += idx + 1
		} else {
			raw = string(data[start:])
			start = len(data)
		}

		ln := Line{Num: num, Text: raw, EOL: eol, Kind: classify(raw)}
		doc.Lines = append(doc.Lines, ln)
		if ln.Kind == KindRepository {
			doc.extract(raw)
		}
	}
	return doc, nil
}

// ParseFile opens and parses path. Fatal to the caller if the file
// cannot be opened.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	doc, err := ParseDocument(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// classify applies the two shape predicates in order.
func classify(text string) LineKind {
	switch {
	case strings.HasPrefix(text, versionPrefix):
		return KindVersion
	case strings.HasPrefix(text, "repositories/"):
		return KindRepository
	default:
		return KindInvalid
	}
}

// extract pulls (repoKey, prop, value) out of a repository line and
// stores it. Lines that don't carry one of the three site properties
// for an http key are ignored (they are still valid lines).
func (d *Document) extract(text string) {
	m := repoPropPattern.FindStringSubmatch(text)
	if m == nil {
		return
	}
	key, prop, value := m[1], m[2], m[3]
	// nickname may legitimately be empty; uri and enabled may not.
	if value == "" && prop != "nickname" {
		return
	}
	if prop == "uri" {
		// p2 escapes the scheme separator ("http\://..."); drop the
		// first backslash so the emitted URI is usable.
		value = strings.Replace(value, `\`, "", 1)
	}
	d.put(key, prop, value)
}

// put records value under (key, prop), last write wins. New keys enter
// Order on first sighting.
func (d *Document) put(key, prop, value string) {
	props, ok := d.Repos[key]
	if !ok {
		props = make(map[string]string)
		d.Repos[key] = props
		d.Order = append(d.Order, key)
	}
	props[prop] = value
}

// InvalidLines returns the invalid lines in file order.
func (d *Document) InvalidLines() []Line {
	var out []Line
	for _, ln := range d.Lines {
		if ln.Kind == KindInvalid {
			out = append(out, ln)
		}
	}
	return out
}
