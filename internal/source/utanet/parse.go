package utanet

import (
	"io"
	"regexp"
	"strings"

	"creditget/internal/credit"

	"golang.org/x/net/html"
)

// Each extraction rule below targets one fragment of uta-net markup and is
// unit-tested against literal samples; none of them depend on each other.

var (
	songHrefPattern   = regexp.MustCompile(`/song/(\d+)/`)
	artistHrefPattern = regexp.MustCompile(`/artist/\d+/`)
)

// Credit labels on the song detail page, full-width colons included.
// 発売日 (release date) is not captured but terminates the field before it.
const (
	labelLyricist = "作詞："
	labelComposer = "作曲："
	labelArranger = "編曲："
	labelRelease  = "発売日："
)

var creditLabels = []string{labelLyricist, labelComposer, labelArranger, labelRelease}

// parseSearchRows extracts candidate triples from a search-results page.
// One candidate per <tr class="border-bottom"> carrying a /song/<id>/ link,
// a songlist-title span, and an /artist/<n>/ link.
func parseSearchRows(r io.Reader) ([]credit.Candidate, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var cands []credit.Candidate
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "tr" || !hasClass(n, "border-bottom") {
			return
		}
		c := candidateFromRow(n)
		if c.ID != "" && c.Title != "" {
			cands = append(cands, c)
		}
	})
	return cands, nil
}

func candidateFromRow(row *html.Node) credit.Candidate {
	var c credit.Candidate
	walk(row, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.Data {
		case "a":
			href := attrVal(n, "href")
			if c.ID == "" {
				if m := songHrefPattern.FindStringSubmatch(href); m != nil {
					c.ID = m[1]
				}
			}
			if c.Artist == "" && artistHrefPattern.MatchString(href) {
				c.Artist = collapseSpace(textContent(n))
			}
		case "span":
			if c.Title == "" && hasClass(n, "songlist-title") {
				c.Title = collapseSpace(textContent(n))
			}
		}
	})
	return c
}

// songPage holds the two flattened text blocks of a detail page.
type songPage struct {
	workName   string // tie-up / work block, may be empty
	detailText string // credits block ("作詞：… 作曲：…"), may be empty
}

// parseSongPage locates the work block (<p class="ms-2 ms-md-3 mb-0">) and
// the credits block (<p class="… detail …">). The HTML parser already
// unescapes entities in text nodes; whitespace is collapsed afterwards.
func parseSongPage(r io.Reader) (songPage, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return songPage{}, err
	}

	var page songPage
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "p" {
			return
		}
		switch {
		case hasClass(n, "detail"):
			if page.detailText == "" {
				page.detailText = collapseSpace(textContent(n))
			}
		case hasClass(n, "ms-2") && hasClass(n, "ms-md-3") && hasClass(n, "mb-0"):
			if page.workName == "" {
				page.workName = collapseSpace(textContent(n))
			}
		}
	})
	return page, nil
}

// fieldAfter returns the value following a label in the flattened credits
// text, stopped at the next known label or end of text. Absent label
// yields "".
func fieldAfter(text, label string) string {
	i := strings.Index(text, label)
	if i < 0 {
		return ""
	}
	rest := text[i+len(label):]
	end := len(rest)
	for _, stop := range creditLabels {
		if j := strings.Index(rest, stop); j >= 0 && j < end {
			end = j
		}
	}
	return strings.TrimSpace(rest[:end])
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attrVal(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrVal(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			b.WriteString(" ")
		}
	})
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
