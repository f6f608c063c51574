package folio

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// renderSitemap lists the site root followed by one entry per devlog row.
func renderSitemap(stamps []DevlogStamp, now time.Time) ([]byte, error) {
	urls := make([]sitemapURL, 0, len(stamps)+1)
	urls = append(urls, sitemapURL{
		Loc:        SiteURL,
		LastMod:    ISOTimestamp(now),
		ChangeFreq: "daily",
		Priority:   "1.0",
	})
	for _, s := range stamps {
		urls = append(urls, sitemapURL{
			Loc:        DevlogURL(s.ID),
			LastMod:    ISOTimestamp(s.Date),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(sitemap); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	return buf.Bytes(), nil
}
