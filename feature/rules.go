package feature

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/happyhackingspace/hof/internal/htmlutil"
)

// Rule locates one value on a player page. It returns an error wrapping
// ErrNotFound when its anchor is absent and ErrMalformed when the anchor is
// present but unusable.
type Rule interface {
	Extract(doc *goquery.Document) (float64, error)
}

// TooltipStat reads the career value of a stat box anchored by a span whose
// data-tip equals Tip. The career value is the second <p> after the anchor.
type TooltipStat struct {
	Tip string
}

func (r TooltipStat) Extract(doc *goquery.Document) (float64, error) {
	anchor := htmlutil.FindByAttr(doc.Selection, "span", "data-tip", r.Tip)
	if anchor.Length() == 0 {
		return 0, notFound(`span[data-tip="` + r.Tip + `"]`)
	}
	return secondParagraph(anchor, r.Tip)
}

// LabeledStat reads the career value of a stat box anchored by a Tag element
// whose string contains Label, again the second <p> after the anchor.
type LabeledStat struct {
	Tag   string
	Label string
}

func (r LabeledStat) Extract(doc *goquery.Document) (float64, error) {
	anchor := htmlutil.FindByString(doc.Selection, r.Tag, r.Label)
	if anchor.Length() == 0 {
		return 0, notFound(r.Tag + " containing " + strconv.Quote(r.Label))
	}
	return secondParagraph(anchor, r.Label)
}

func secondParagraph(anchor *goquery.Selection, what string) (float64, error) {
	first := htmlutil.FindNext(anchor.Get(0), "p")
	second := htmlutil.FindNext(first, "p")
	if second == nil {
		return 0, malformed("no career value after %q", what)
	}
	return parseNumber(htmlutil.NodeText(second))
}

// SiblingStat reads the first <p> following the node right after a Tag
// element whose string contains Label.
type SiblingStat struct {
	Tag   string
	Label string
}

func (r SiblingStat) Extract(doc *goquery.Document) (float64, error) {
	anchor := htmlutil.FindByString(doc.Selection, r.Tag, r.Label)
	if anchor.Length() == 0 {
		return 0, notFound(r.Tag + " containing " + strconv.Quote(r.Label))
	}
	sibling := anchor.Get(0).NextSibling
	if sibling == nil {
		return 0, malformed("nothing after %q", r.Label)
	}
	p := htmlutil.FindNext(sibling, "p")
	if p == nil {
		return 0, malformed("no value after %q", r.Label)
	}
	return parseNumber(htmlutil.NodeText(p))
}

// YearsStat reads "<strong>Experience:</strong> 15 years" style labels;
// the first word after the label is the number of years.
type YearsStat struct {
	Labels []string
}

func (r YearsStat) Extract(doc *goquery.Document) (float64, error) {
	anchor := htmlutil.FindByString(doc.Selection, "strong", r.Labels...)
	if anchor.Length() == 0 {
		return 0, notFound("strong containing " + strings.Join(r.Labels, " or "))
	}
	sibling := anchor.Get(0).NextSibling
	if sibling == nil {
		return 0, malformed("nothing after career length label")
	}
	words := strings.Fields(htmlutil.NodeText(sibling))
	if len(words) == 0 {
		return 0, malformed("empty career length")
	}
	years, err := strconv.Atoi(words[0])
	if err != nil {
		return 0, malformed("career length %q is not an integer", words[0])
	}
	return float64(years), nil
}

// AwardCount counts an award listed as "13x All Star". An entry without the
// "Nx" prefix counts once.
type AwardCount struct {
	Tag   string // "li" for the bling list, "a" for linked awards
	Label string
}

var countPrefix = regexp.MustCompile(`^(\d+)x`)

func (r AwardCount) Extract(doc *goquery.Document) (float64, error) {
	sel := htmlutil.FindByString(doc.Selection, r.Tag, r.Label)
	if sel.Length() == 0 {
		return 0, notFound(r.Tag + " containing " + strconv.Quote(r.Label))
	}
	return parseAwardCount(sel.Text())
}

func parseAwardCount(text string) (float64, error) {
	m := countPrefix.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 1, nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, malformed("award count %q", m[1])
	}
	return float64(n), nil
}

// ListFlag is 1 when a Tag element whose string contains Label exists.
type ListFlag struct {
	Tag   string
	Label string
}

func (r ListFlag) Extract(doc *goquery.Document) (float64, error) {
	if htmlutil.FindByString(doc.Selection, r.Tag, r.Label).Length() == 0 {
		return 0, notFound(r.Tag + " containing " + strconv.Quote(r.Label))
	}
	return 1, nil
}

// AttrFlag is 1 when a Tag element whose Attr contains Substring exists.
type AttrFlag struct {
	Tag       string
	Attr      string
	Substring string
}

func (r AttrFlag) Extract(doc *goquery.Document) (float64, error) {
	if htmlutil.FindByAttrContains(doc.Selection, r.Tag, r.Attr, r.Substring).Length() == 0 {
		return 0, notFound(r.Tag + "[" + r.Attr + "] containing " + strconv.Quote(r.Substring))
	}
	return 1, nil
}

// parseNumber parses a displayed stat such as "1,000", ".473" or " 22.5 ".
func parseNumber(text string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if s == "" {
		return 0, malformed("empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, malformed("%q is not a number", strings.TrimSpace(text))
	}
	return v, nil
}
