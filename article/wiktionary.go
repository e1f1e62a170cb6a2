package article

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/wortlex"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"
)

// DefaultWiktionaryURL is the German Wiktionary.
const DefaultWiktionaryURL = "https://de.wiktionary.org"

// WiktionaryDetector reads the part-of-speech headings of a German
// Wiktionary page. A heading like "Substantiv, n" marks a neuter noun.
type WiktionaryDetector struct {
	client *resty.Client
}

// WiktionaryConfig holds configuration for the Wiktionary detector.
type WiktionaryConfig struct {
	BaseURL string        // Default: https://de.wiktionary.org
	Timeout time.Duration // Default: 10s
}

// NewWiktionaryDetector creates a new Wiktionary detector.
func NewWiktionaryDetector(cfg WiktionaryConfig) *WiktionaryDetector {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultWiktionaryURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = wortlex.RequestTimeout
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("User-Agent", wortlex.UserAgent())

	return &WiktionaryDetector{client: client}
}

// DetectArticle implements Detector. A missing page is not an error.
func (d *WiktionaryDetector) DetectArticle(ctx context.Context, word string) (*wortlex.ArticleInfo, error) {
	word = stripArticle(word)
	if word == "" {
		return nil, nil
	}

	res, err := d.client.R().
		SetContext(ctx).
		Get("/wiki/" + url.PathEscape(word))
	if err != nil {
		return nil, fmt.Errorf("fetching wiktionary page: %w", err)
	}
	switch res.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("wiktionary returned status %d", res.StatusCode())
	}

	return parseWiktionaryPage(res.Body())
}

// parseWiktionaryPage inspects the headings of the German section only.
func parseWiktionaryPage(page []byte) (*wortlex.ArticleInfo, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing wiktionary page: %w", err)
	}

	var (
		inGerman   bool
		sawGerman  bool
		genders    = map[string]bool{}
		isNoun     bool
		otherKinds int
	)
	doc.Find("h2, h3").Each(func(_ int, s *goquery.Selection) {
		text := headingText(s.Nodes[0])
		if goquery.NodeName(s) == "h2" {
			inGerman = strings.Contains(text, "(Deutsch)")
			sawGerman = sawGerman || inGerman
			return
		}
		if !inGerman {
			return
		}

		kind, rest, _ := strings.Cut(text, ",")
		if strings.TrimSpace(kind) != "Substantiv" {
			otherKinds++
			return
		}
		isNoun = true
		for _, g := range strings.Split(rest, ",") {
			// Other labels such as "Toponym" or "Nachname" are skipped.
			if g = strings.TrimSpace(g); g == "m" || g == "f" || g == "n" {
				genders[g] = true
			}
		}
	})

	if !sawGerman {
		return nil, nil
	}
	if !isNoun {
		if otherKinds == 0 {
			return nil, nil
		}
		return &wortlex.ArticleInfo{IsNoun: false, Source: "wiktionary"}, nil
	}

	// A noun with several genders is ambiguous and gets no article.
	if len(genders) != 1 {
		return &wortlex.ArticleInfo{IsNoun: true, Source: "wiktionary"}, nil
	}
	for g := range genders {
		return nounInfo(g, "wiktionary"), nil
	}
	return nil, nil
}

// headingText collects the visible text of a heading, skipping the
// "[Bearbeiten]" edit links MediaWiki renders inside it.
func headingText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				if attr.Key == "class" && strings.Contains(attr.Val, "mw-editsection") {
					return
				}
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// Verify WiktionaryDetector implements Detector
var _ Detector = (*WiktionaryDetector)(nil)
