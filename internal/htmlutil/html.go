// Package htmlutil loads HTML documents and walks their nodes the way the
// player page rules expect: document-order searches, lone-string matching and
// raw sibling access.
package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// LoadHTMLString parses an HTML string into a document.
func LoadHTMLString(s string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(s))
}

// LoadHTMLBytes parses raw response bytes into a document.
func LoadHTMLBytes(b []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(b))
}

// NodeText returns the concatenated text of every text node under n,
// including n itself when it is a text node.
func NodeText(n *html.Node) string {
	var buf bytes.Buffer
	nodeTextRecursive(n, &buf)
	return buf.String()
}

func nodeTextRecursive(n *html.Node, buf *bytes.Buffer) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		nodeTextRecursive(child, buf)
	}
}

// NodeString returns the text of an element's lone descendant chain.
// An element with zero or several children has no string.
func NodeString(n *html.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	if n.Type == html.TextNode {
		return n.Data, true
	}
	if n.FirstChild == nil || n.FirstChild != n.LastChild {
		return "", false
	}
	return NodeString(n.FirstChild)
}

// nextInDocument returns the node after n in document order, descending into
// n's children first.
func nextInDocument(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

// FindNext returns the first element named tag that follows n in document
// order, or nil. Descendants of n count as following it.
func FindNext(n *html.Node, tag string) *html.Node {
	if n == nil {
		return nil
	}
	for cur := nextInDocument(n); cur != nil; cur = nextInDocument(cur) {
		if cur.Type == html.ElementNode && cur.Data == tag {
			return cur
		}
	}
	return nil
}

// FindByString returns the first tag element under sel whose string contains
// any of the substrings. The selection is empty when nothing matches.
func FindByString(sel *goquery.Selection, tag string, substrings ...string) *goquery.Selection {
	return sel.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		str, ok := NodeString(s.Get(0))
		if !ok {
			return false
		}
		for _, sub := range substrings {
			if strings.Contains(str, sub) {
				return true
			}
		}
		return false
	}).First()
}

// FindByAttrContains returns the first tag element under sel whose attr value
// contains substring.
func FindByAttrContains(sel *goquery.Selection, tag, attr, substring string) *goquery.Selection {
	return sel.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr(attr)
		return ok && strings.Contains(v, substring)
	}).First()
}

// FindByAttr returns the first tag element under sel whose attr equals value.
func FindByAttr(sel *goquery.Selection, tag, attr, value string) *goquery.Selection {
	return sel.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr(attr)
		return ok && v == value
	}).First()
}
