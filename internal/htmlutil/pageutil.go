package htmlutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// GetPageTitle returns the <title> text content.
func GetPageTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// GetNestedText returns the trimmed text of the first inner element inside
// the first outer element. ok is false when either is missing.
func GetNestedText(doc *goquery.Document, outer, inner string) (string, bool) {
	o := doc.Find(outer).First()
	if o.Length() == 0 {
		return "", false
	}
	i := o.Find(inner).First()
	if i.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(i.Text()), true
}

// GetImageSrc returns the src of the first image matching selector, or "".
func GetImageSrc(doc *goquery.Document, selector string) string {
	src, _ := doc.Find(selector).First().Attr("src")
	return strings.TrimSpace(src)
}
