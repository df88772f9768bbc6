// Package sitemap renders the sitemaps.org document listing every page of
// the site.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/quran"
)

const (
	xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

	ContentType  = "application/xml"
	CacheControl = "public, max-age=86400, s-maxage=86400"
)

type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

type route struct {
	path       string
	priority   string
	changeFreq string
}

// routes lists the site paths in sitemap order.
func routes() []route {
	out := []route{
		{"", "1.0", "daily"},
		{"/hadith", "0.9", "weekly"},
	}
	for _, n := range quran.SurahParams() {
		out = append(out, route{fmt.Sprintf("/surah/%d", n), "0.8", "monthly"})
	}
	for _, n := range quran.JuzParams() {
		out = append(out, route{fmt.Sprintf("/juz/%d", n), "0.8", "monthly"})
	}
	out = append(out, route{"/hadith/bukhari", "0.7", "weekly"})
	return out
}

// Build returns the url set for a site rooted at baseURL as of now.
func Build(baseURL string, now time.Time) URLSet {
	baseURL = strings.TrimSuffix(baseURL, "/")
	lastMod := now.UTC().Format("2006-01-02")

	rs := routes()
	set := URLSet{XMLNS: xmlns, URLs: make([]URL, 0, len(rs))}
	for _, r := range rs {
		set.URLs = append(set.URLs, URL{
			Loc:        baseURL + r.path,
			LastMod:    lastMod,
			ChangeFreq: r.changeFreq,
			Priority:   r.priority,
		})
	}
	return set
}

// Render encodes the sitemap with its XML declaration.
func Render(baseURL string, now time.Time) ([]byte, error) {
	body, err := xml.MarshalIndent(Build(baseURL, now), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
