package arxiv

import (
	"encoding/xml"
	"strings"
	"time"
)

// Metadata is the bibliographic record of one paper.
type Metadata struct {
	ID        string
	Title     string
	Summary   string
	Authors   []string
	Published time.Time
	Updated   time.Time
	PDFURL    string
}

// Atom feed wire types for the export API.
type feed struct {
	XMLName xml.Name `xml:"feed"`
	Entries []entry  `xml:"entry"`
}

type entry struct {
	ID        string   `xml:"id"`
	Title     string   `xml:"title"`
	Summary   string   `xml:"summary"`
	Published string   `xml:"published"`
	Updated   string   `xml:"updated"`
	Authors   []author `xml:"author"`
	Links     []link   `xml:"link"`
}

type author struct {
	Name string `xml:"name"`
}

type link struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

// metadata converts an Atom entry into a Metadata record. Entries without
// an identifier are placeholder error entries the API emits for bad
// queries; those report ok=false.
func (e entry) metadata() (Metadata, bool) {
	id := strings.TrimSpace(e.ID)
	if id == "" {
		return Metadata{}, false
	}

	m := Metadata{
		ID:      shortID(id),
		Title:   collapseWhitespace(e.Title),
		Summary: collapseWhitespace(e.Summary),
	}
	for _, a := range e.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			m.Authors = append(m.Authors, name)
		}
	}
	if t, err := time.Parse(time.RFC3339, e.Published); err == nil {
		m.Published = t
	}
	if t, err := time.Parse(time.RFC3339, e.Updated); err == nil {
		m.Updated = t
	}
	for _, l := range e.Links {
		if l.Title == "pdf" || l.Type == "application/pdf" {
			m.PDFURL = l.Href
			break
		}
	}
	return m, true
}

// shortID strips the "http://arxiv.org/abs/" prefix from an entry ID.
func shortID(id string) string {
	if i := strings.LastIndex(id, "/abs/"); i >= 0 {
		return id[i+len("/abs/"):]
	}
	return id
}

// collapseWhitespace joins the line-wrapped text the Atom feed carries
// into a single line.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
