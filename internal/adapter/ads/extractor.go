package ads

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/Koveh/telegram-ads-collector/internal/core/domain"
)

const (
	csvExportMarker = `csvExport":"`
	onHoldStatus    = "on hold"
	targetPrefix    = "Will be shown in "
)

// ExtractCampaignInfo parses a campaign status page. The page layout is
// third-party and unstable, so every field lookup is isolated: a missing
// element yields a nil field, never an aborted extraction. A body that is
// empty or garbled yields a record with all optional fields nil, an empty
// link mapping and the campaign classified inactive.
func ExtractCampaignInfo(campaignID string, body []byte) *domain.CampaignInfo {
	info := &domain.CampaignInfo{
		CampaignID:  campaignID,
		ExportLinks: map[domain.ExportKind]string{},
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return info
	}

	info.Title = elementText(doc, "div.ad-msg-link-preview-title")
	info.Description = elementText(doc, "div.ad-msg-link-preview-desc")
	info.BotLink = botLink(doc)
	info.Status = textAfterLabel(doc, "Status")
	info.CPM = parseDecimal(textAfterLabel(doc, "CPM"))
	info.Views = parseCount(textAfterLabel(doc, "Views"))
	info.TargetChannel = targetChannel(doc)
	info.IsActive = info.Status != nil && !strings.EqualFold(*info.Status, onHoldStatus)
	info.ExportLinks = exportLinks(doc)
	return info
}

// exportLinks scans inline script blocks for the csvExport marker. A block
// that also mentions "budget" carries the budget export link, any other
// matching block the views link. Zero matching blocks yield an empty map;
// downstream stages tolerate zero, one or two links.
func exportLinks(doc *goquery.Document) map[domain.ExportKind]string {
	links := make(map[domain.ExportKind]string)
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		src := s.Text()
		link, ok := cutExportLink(src)
		if !ok {
			return
		}
		if strings.Contains(src, "budget") {
			links[domain.ExportBudget] = link
		} else {
			links[domain.ExportViews] = link
		}
	})
	return links
}

// cutExportLink pulls the quoted link that follows the csvExport marker.
// Links are embedded in JSON inside the script, so "/" arrives escaped.
func cutExportLink(src string) (string, bool) {
	_, rest, ok := strings.Cut(src, csvExportMarker)
	if !ok {
		return "", false
	}
	link, _, ok := strings.Cut(rest, `"`)
	if !ok || link == "" {
		return "", false
	}
	return strings.ReplaceAll(link, `\/`, "/"), true
}

func elementText(doc *goquery.Document, selector string) *string {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	if s := strings.TrimSpace(sel.Text()); s != "" {
		return &s
	}
	return nil
}

// botLink finds the destination bot: the first anchor pointing at t.me.
func botLink(doc *goquery.Document) *string {
	var out *string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if strings.Contains(href, "t.me") {
			out = &href
			return false
		}
		return true
	})
	return out
}

func targetChannel(doc *goquery.Document) *string {
	s := elementText(doc, "div.pr-form-info-block.plus")
	if s == nil {
		return nil
	}
	trimmed := strings.TrimPrefix(*s, targetPrefix)
	return &trimmed
}

// textAfterLabel mirrors the status page layout where a value element
// immediately follows a bare text label such as "Status", "CPM" or
// "Views": it locates the text node equal to label and returns the text of
// the next element in document order.
func textAfterLabel(doc *goquery.Document, label string) *string {
	var (
		seen bool
		out  *string
	)
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if seen && n.Type == html.ElementNode {
			if s := strings.TrimSpace(nodeText(n)); s != "" {
				out = &s
			}
			return true
		}
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) == label {
			seen = true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	for _, root := range doc.Nodes {
		if walk(root) {
			break
		}
	}
	return out
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// parseDecimal reads a money-like page value. Some locales render the
// decimal separator as a comma.
func parseDecimal(s *string) *float64 {
	if s == nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(*s), ",", "."), 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseCount reads an integer counter, tolerating thousands separators.
func parseCount(s *string) *int64 {
	if s == nil {
		return nil
	}
	v := strings.NewReplacer(",", "", " ", "", "\u00a0", "").Replace(strings.TrimSpace(*s))
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
