// Package audit checks synchronized pages against the structural invariant:
// one header, one footer, and exactly one reference to each shared asset.
package audit

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Report is the structural inventory of one page.
type Report struct {
	Path        string
	Headers     int
	Footers     int
	Stylesheets int
	Scripts     int
	Violations  []string
}

// OK reports whether the page satisfied every check.
func (r *Report) OK() bool {
	return len(r.Violations) == 0
}

// Inspect parses the document read from r and counts header and footer
// elements, <link> tags pointing at stylesheet and <script> tags loading script.
func Inspect(path string, r io.Reader, stylesheet, script string) (*Report, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	rep := &Report{Path: path}
	walk(doc, func(n *html.Node) {
		switch n.DataAtom {
		case atom.Header:
			rep.Headers++
		case atom.Footer:
			rep.Footers++
		case atom.Link:
			if strings.Contains(attr(n, "href"), stylesheet) {
				rep.Stylesheets++
			}
		case atom.Script:
			if strings.Contains(attr(n, "src"), script) {
				rep.Scripts++
			}
		}
	})

	rep.expect("<header>", rep.Headers)
	rep.expect("<footer>", rep.Footers)
	rep.expect(stylesheet, rep.Stylesheets)
	rep.expect(script, rep.Scripts)
	return rep, nil
}

func (r *Report) expect(what string, got int) {
	if got != 1 {
		r.Violations = append(r.Violations, fmt.Sprintf("expected exactly one %s, found %d", what, got))
	}
}

func walk(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
