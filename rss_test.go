package folio

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestRenderRSSItem(t *testing.T) {
	body, err := renderRSS([]DevlogRecord{{
		ID:       7,
		Title:    "Launch",
		Date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Category: CategoryFeature,
		Content:  "<p>hi</p>",
		Tags:     "web, launch",
	}}, fixedNow)
	require.NoError(t, err)
	out := string(body)

	assert.True(t, strings.HasPrefix(out, xml.Header))
	assert.Contains(t, out, `<rss version="2.0"`)
	assert.Contains(t, out, `xmlns:dc="http://purl.org/dc/elements/1.1/"`)
	assert.Contains(t, out, `<guid>https://quinnchrest.dev/devlog/7</guid>`)
	assert.Contains(t, out, `<link>https://quinnchrest.dev/devlog/7</link>`)
	assert.Contains(t, out, `<title><![CDATA[Launch]]></title>`)
	assert.Contains(t, out, `<description><![CDATA[<p>hi</p>]]></description>`)
	assert.Contains(t, out, `<category>Feature</category>`)
	assert.Contains(t, out, `<pubDate>Mon, 01 Jan 2024 00:00:00 GMT</pubDate>`)
	assert.Contains(t, out, `<dc:subject>web, launch</dc:subject>`)
	assert.Contains(t, out, `<dc:creator>Quinn Chrest</dc:creator>`)
	assert.Contains(t, out, `<lastBuildDate>Sat, 01 Jun 2024 12:00:00 GMT</lastBuildDate>`)
	assert.Contains(t, out, `<atom:link href="https://quinnchrest.dev/api/feed.xml" rel="self" type="application/rss+xml">`)
}

func TestRenderRSSKeepsEmptyTagPieces(t *testing.T) {
	body, err := renderRSS([]DevlogRecord{{
		ID: 3, Title: "t", Date: fixedNow, Tags: "a,, b",
	}}, fixedNow)
	require.NoError(t, err)
	assert.Contains(t, string(body), `<dc:subject>a, , b</dc:subject>`)
}

func TestRenderRSSIsWellFormed(t *testing.T) {
	body, err := renderRSS([]DevlogRecord{
		{ID: 1, Title: "a & b <c>", Date: fixedNow, Content: "ends with ]]> marker", Tags: "x&y"},
		{ID: 2, Title: "two", Date: fixedNow, Category: CategoryBugfix},
	}, fixedNow)
	require.NoError(t, err)

	var doc struct {
		Channel struct {
			Items []struct {
				Title       string `xml:"title"`
				Description string `xml:"description"`
				Category    string `xml:"category"`
			} `xml:"item"`
		} `xml:"channel"`
	}
	require.NoError(t, xml.Unmarshal(body, &doc))
	require.Len(t, doc.Channel.Items, 2)
	assert.Equal(t, "a & b <c>", doc.Channel.Items[0].Title)
	assert.Equal(t, "ends with ]]> marker", doc.Channel.Items[0].Description)
	assert.Equal(t, "Update", doc.Channel.Items[0].Category)
	assert.Equal(t, "Bug Fix", doc.Channel.Items[1].Category)
}

func TestRenderSitemap(t *testing.T) {
	stamps := []DevlogStamp{
		{ID: 9, Date: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)},
		{ID: 4, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	body, err := renderSitemap(stamps, fixedNow)
	require.NoError(t, err)

	var doc sitemapURLSet
	require.NoError(t, xml.Unmarshal(body, &doc))
	require.Len(t, doc.URLs, 3)

	assert.Equal(t, sitemapURL{
		Loc:        "https://quinnchrest.dev",
		LastMod:    "2024-06-01T12:00:00.000Z",
		ChangeFreq: "daily",
		Priority:   "1.0",
	}, doc.URLs[0])
	assert.Equal(t, sitemapURL{
		Loc:        "https://quinnchrest.dev/devlog/9",
		LastMod:    "2024-03-02T10:00:00.000Z",
		ChangeFreq: "weekly",
		Priority:   "0.8",
	}, doc.URLs[1])
	assert.Equal(t, "https://quinnchrest.dev/devlog/4", doc.URLs[2].Loc)
	assert.Contains(t, string(body), `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
}

func TestRenderSitemapEmpty(t *testing.T) {
	body, err := renderSitemap(nil, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(body), "<url>"))
}
