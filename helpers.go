package folio

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// SiteURL is the public origin used for every absolute link in XML output.
const SiteURL = "https://quinnchrest.dev"

// PlaceholderImage is served for projects without a thumbnail.
const PlaceholderImage = "https://images.unsplash.com/photo-1467232004584-a241de8bcf5d?w=400&h=300&fit=crop"

const isoMillis = "2006-01-02T15:04:05.000Z"

// ParseTags splits a comma-delimited tag string and trims each piece,
// preserving order and empty pieces. Only "" (and so NULL) gives an empty
// slice.
func ParseTags(tagString string) []string {
	if tagString == "" {
		return []string{}
	}
	tags := strings.Split(tagString, ",")
	for i, t := range tags {
		tags[i] = strings.TrimSpace(t)
	}
	return tags
}

// JoinTags joins tags with ", ".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// DevlogURL returns the public page for a devlog entry.
func DevlogURL(id int64) string {
	return SiteURL + "/devlog/" + strconv.FormatInt(id, 10)
}

// FormatEntryDate renders a devlog date for JSON. Values at exactly midnight
// UTC come from DATE columns and render as a bare date.
func FormatEntryDate(t time.Time) string {
	t = t.UTC()
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}

// ISOTimestamp renders t in UTC with millisecond precision, as used by
// sitemap lastmod fields.
func ISOTimestamp(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

// HTTPDate renders t as an RFC 1123 date in GMT.
func HTTPDate(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}
