// Package bookmarks builds the ordered site list from extracted
// preferences and renders it as a bookmarks XML document.
package bookmarks

import (
	"fmt"
	"io"
	"os"
	"strings"

	"p2bookmarks/internal/prefs"
)

// Site is one configured update site: the (nickname, uri, enabled)
// triple from the preferences file. Name may be empty.
type Site struct {
	Name    string
	URL     string
	Enabled string
}

// Collect materializes the site list from doc in first-appearance key
// order. Entries without a nickname property are repository
// registrations that are not "available software sites"; they are
// skipped silently. Missing uri/enabled default to the empty string.
// Each accepted site is printed to out for observability.
func Collect(doc *prefs.Document, out io.Writer) []Site {
	var sites []Site
	for _, key := range doc.Order {
		props := doc.Repos[key]
		name, ok := props["nickname"]
		if !ok {
			continue
		}
		s := Site{Name: name, URL: props["uri"], Enabled: props["enabled"]}
		if out != nil {
			fmt.Fprintf(out, "site: name=%q url=%s enabled=%s\n", s.Name, s.URL, s.Enabled)
		}
		sites = append(sites, s)
	}
	return sites
}

// WriteXML renders sites as a bookmarks document:
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<bookmarks>
//	   <site url="..." selected="..." name="..."/>
//	</bookmarks>
//
// Attribute values are emitted verbatim, without XML escaping, for byte
// compatibility with the original bookmark format. Inputs are assumed
// not to contain <, & or ".
func WriteXML(w io.Writer, sites []Site) error {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<bookmarks>\n")
	for _, s := range sites {
		fmt.Fprintf(&b, "   <site url=\"%s\" selected=\"%s\" name=\"%s\"/>\n", s.URL, s.Enabled, s.Name)
	}
	b.WriteString("</bookmarks>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// Write creates or truncates path and writes the XML document to it.
func Write(path string, sites []Site) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteXML(f, sites); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
