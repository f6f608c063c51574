package folio

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"
)

const (
	feedTitle       = "Quinn Chrest - Dev Log"
	feedDescription = "Development updates, learnings, and insights from Quinn Chrest's coding journey"
	feedAuthor      = "Quinn Chrest"
	feedGenerator   = "Quinn Chrest Portfolio"
)

type rssXML struct {
	XMLName   xml.Name   `xml:"rss"`
	Version   string     `xml:"version,attr"`
	NSContent string     `xml:"xmlns:content,attr"`
	NSWfw     string     `xml:"xmlns:wfw,attr"`
	NSDC      string     `xml:"xmlns:dc,attr"`
	NSAtom    string     `xml:"xmlns:atom,attr"`
	NSSy      string     `xml:"xmlns:sy,attr"`
	NSSlash   string     `xml:"xmlns:slash,attr"`
	Channel   rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title           string      `xml:"title"`
	AtomLink        rssAtomLink `xml:"atom:link"`
	Link            string      `xml:"link"`
	Description     string      `xml:"description"`
	LastBuildDate   string      `xml:"lastBuildDate"`
	Language        string      `xml:"language"`
	UpdatePeriod    string      `xml:"sy:updatePeriod"`
	UpdateFrequency int         `xml:"sy:updateFrequency"`
	Generator       string      `xml:"generator"`
	Items           []rssItem   `xml:"item"`
}

type rssAtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	GUID        string `xml:"guid"`
	Title       cdata  `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Category    string `xml:"category"`
	Description cdata  `xml:"description"`
	Creator     string `xml:"dc:creator"`
	Subject     string `xml:"dc:subject"`
}

// cdata marshals its text inside a CDATA section so titles and bodies may
// carry arbitrary markup.
type cdata struct {
	Text string `xml:",cdata"`
}

// renderRSS builds the complete feed document for records.
func renderRSS(records []DevlogRecord, now time.Time) ([]byte, error) {
	items := make([]rssItem, 0, len(records))
	for _, r := range records {
		link := DevlogURL(r.ID)
		items = append(items, rssItem{
			GUID:        link,
			Title:       cdata{r.Title},
			Link:        link,
			PubDate:     HTTPDate(r.Date),
			Category:    CategoryLabel(r.Category),
			Description: cdata{r.Content},
			Creator:     feedAuthor,
			Subject:     JoinTags(ParseTags(r.Tags)),
		})
	}
	feed := rssXML{
		Version:   "2.0",
		NSContent: "http://purl.org/rss/1.0/modules/content/",
		NSWfw:     "http://wellformedweb.org/CommentAPI/",
		NSDC:      "http://purl.org/dc/elements/1.1/",
		NSAtom:    "http://www.w3.org/2005/Atom",
		NSSy:      "http://purl.org/rss/1.0/modules/syndication/",
		NSSlash:   "http://purl.org/rss/1.0/modules/slash/",
		Channel: rssChannel{
			Title: feedTitle,
			AtomLink: rssAtomLink{
				Href: SiteURL + "/api/feed.xml",
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Link:            SiteURL,
			Description:     feedDescription,
			LastBuildDate:   HTTPDate(now),
			Language:        "en-US",
			UpdatePeriod:    "daily",
			UpdateFrequency: 1,
			Generator:       feedGenerator,
			Items:           items,
		},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(feed); err != nil {
		return nil, fmt.Errorf("encode rss: %w", err)
	}
	return buf.Bytes(), nil
}
