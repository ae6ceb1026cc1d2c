package htmlutil

import (
	"strings"
	"testing"
)

const testPageHTML = `<!DOCTYPE html>
<html>
<head><title>Test Player Stats | Basketball-Reference.com</title></head>
<body>
<div id="info">
  <div class="media-item"><img src=" https://example.com/headshots/testpl01.jpg " alt="Photo"></div>
  <h1><span>Test Player</span></h1>
  <p><strong>Experience:</strong> 15 years</p>
  <ul id="bling">
    <li class="all_star"><a href="/allstar/">3x All Star</a></li>
    <li class="poptip" data-tip="2001-02 ROY"><a href="/awards/roy.html">Rookie of the Year</a></li>
    <li>Two <b>children</b></li>
  </ul>
</div>
<div class="stats_pullout">
<div><span class="poptip" data-tip="Games"><strong>G</strong></span><p>82</p><p>1,000</p></div>
<div><span class="poptip" data-tip="Win Shares"><strong>WS</strong></span><p>9.8</p><p>150.3</p></div>
</div>
</body>
</html>`

func TestGetPageTitle(t *testing.T) {
	doc, _ := LoadHTMLString(testPageHTML)
	got := GetPageTitle(doc)
	if got != "Test Player Stats | Basketball-Reference.com" {
		t.Errorf("GetPageTitle() = %q", got)
	}
}

func TestGetPageTitleEmpty(t *testing.T) {
	doc, _ := LoadHTMLString("<html><body>no title</body></html>")
	got := GetPageTitle(doc)
	if got != "" {
		t.Errorf("GetPageTitle() = %q, want empty", got)
	}
}

func TestGetNestedText(t *testing.T) {
	doc, _ := LoadHTMLString(testPageHTML)
	got, ok := GetNestedText(doc, "h1", "span")
	if !ok || got != "Test Player" {
		t.Errorf("GetNestedText() = %q, %v, want %q, true", got, ok, "Test Player")
	}
}

func TestGetNestedTextMissing(t *testing.T) {
	doc, _ := LoadHTMLString("<html><body><h1>No span</h1></body></html>")
	if _, ok := GetNestedText(doc, "h1", "span"); ok {
		t.Error("expected missing span to report ok = false")
	}
	doc, _ = LoadHTMLString("<html><body><span>No heading</span></body></html>")
	if _, ok := GetNestedText(doc, "h1", "span"); ok {
		t.Error("expected missing h1 to report ok = false")
	}
}

func TestGetImageSrc(t *testing.T) {
	doc, _ := LoadHTMLString(testPageHTML)
	got := GetImageSrc(doc, ".media-item img")
	if got != "https://example.com/headshots/testpl01.jpg" {
		t.Errorf("GetImageSrc() = %q", got)
	}
	if got := GetImageSrc(doc, ".missing img"); got != "" {
		t.Errorf("GetImageSrc() on missing container = %q, want empty", got)
	}
}

func TestNodeString(t *testing.T) {
	doc, _ := LoadHTMLString(testPageHTML)

	li := doc.Find("li.all_star").Get(0)
	got, ok := NodeString(li)
	if !ok || got != "3x All Star" {
		t.Errorf("NodeString(li) = %q, %v, want %q, true", got, ok, "3x All Star")
	}

	multi := doc.Find("#bling li").Last().Get(0)
	if _, ok := NodeString(multi); ok {
		t.Error("expected element with several children to have no string")
	}

	if _, ok := NodeString(nil); ok {
		t.Error("expected nil node to have no string")
	}
}

func TestFindByString(t *testing.T) {
	doc, _ := LoadHTMLString(testPageHTML)

	sel := FindByString(doc.Selection, "strong", "Experience:", "Career Length")
	if sel.Length() != 1 {
		t.Fatalf("FindByString() matched %d elements, want 1", sel.Length())
	}

	sel = FindByString(doc.Selection, "span", "WS")
	if v, _ := sel.Attr("data-tip"); v != "Win Shares" {
		t.Errorf("FindByString(span, WS) data-tip = %q, want %q", v, "Win Shares")
	}

	sel = FindByString(doc.Selection, "li", "children")
	if sel.Length() != 0 {
		t.Error("expected no match for text split across several children")
	}
}

func TestFindByAttr(t *testing.T) {
	doc, _ := LoadHTMLString(testPageHTML)

	if FindByAttr(doc.Selection, "span", "data-tip", "Games").Length() != 1 {
		t.Error("expected exact data-tip match")
	}
	if FindByAttr(doc.Selection, "span", "data-tip", "Game").Length() != 0 {
		t.Error("expected partial data-tip value not to match exactly")
	}
	if FindByAttrContains(doc.Selection, "li", "data-tip", "ROY").Length() != 1 {
		t.Error("expected data-tip substring match")
	}
}

func TestFindNext(t *testing.T) {
	doc, _ := LoadHTMLString(testPageHTML)
	span := FindByAttr(doc.Selection, "span", "data-tip", "Games").Get(0)

	first := FindNext(span, "p")
	if first == nil || NodeText(first) != "82" {
		t.Fatalf("first following p = %v", first)
	}
	second := FindNext(first, "p")
	if second == nil || NodeText(second) != "1,000" {
		t.Fatalf("second following p = %v", second)
	}

	last := doc.Find("p").Last().Get(0)
	if FindNext(last, "p") != nil {
		t.Error("expected no p after the last one")
	}
	if FindNext(nil, "p") != nil {
		t.Error("expected nil start to yield nil")
	}
}

func TestFindNextIncludesDescendants(t *testing.T) {
	doc, _ := LoadHTMLString(`<div id="outer"><p>inner</p></div><p>after</p>`)
	outer := doc.Find("#outer").Get(0)
	got := FindNext(outer, "p")
	if got == nil || NodeText(got) != "inner" {
		t.Errorf("FindNext() = %v, want the descendant p", got)
	}
}

func TestNodeText(t *testing.T) {
	doc, _ := LoadHTMLString(testPageHTML)
	strong := FindByString(doc.Selection, "strong", "Experience:").Get(0)
	sibling := strong.NextSibling
	if sibling == nil {
		t.Fatal("expected a sibling after the label")
	}
	if got := strings.TrimSpace(NodeText(sibling)); got != "15 years" {
		t.Errorf("NodeText(sibling) = %q, want %q", got, "15 years")
	}
}
