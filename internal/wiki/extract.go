// Package wiki scrapes the two display fields the service takes from the
// Minecraft Wiki page of a version.
package wiki

import (
	"errors"
	"strings"

	"github.com/MrSnakeDoc/mcversion/internal/models"
	"github.com/PuerkitoBio/goquery"
)

const (
	UnknownTitle = "Unknown"

	labelOfficialName = "Official name"
	labelSnapshot     = "Snapshot"
	labelResourcePack = "Resource pack format"
)

var errEmptyDocument = errors.New("document has no elements")

type State int

const (
	NotFound State = iota
	Found
	ParseFailed
)

func (s State) String() string {
	switch s {
	case Found:
		return "found"
	case ParseFailed:
		return "parse failed"
	default:
		return "not found"
	}
}

// Result is the outcome of one field lookup before flattening.
type Result struct {
	State State
	Value string
	Err   error
}

// Extraction is the internal, un-flattened form of a page scrape.
type Extraction struct {
	Title        Result
	ResourcePack Result
}

// Extract parses markup and never fails: any parse failure collapses to
// {Title: "Unknown", ResourcePackFormat: nil}.
func Extract(html string) models.ReferencePageInfo {
	return Scan(html).Flatten()
}

// Scan runs both lookups independently and reports each outcome.
func Scan(html string) Extraction {
	doc, err := parse(html)
	if err != nil {
		failed := Result{State: ParseFailed, Err: err}
		return Extraction{Title: failed, ResourcePack: failed}
	}
	return Extraction{
		Title:        findTitle(doc),
		ResourcePack: findResourcePackFormat(doc),
	}
}

// Failed reports whether the document itself could not be used.
func (e Extraction) Failed() bool {
	return e.Title.State == ParseFailed || e.ResourcePack.State == ParseFailed
}

// Err returns the first parse error, if any.
func (e Extraction) Err() error {
	if e.Title.Err != nil {
		return e.Title.Err
	}
	return e.ResourcePack.Err
}

func (e Extraction) Flatten() models.ReferencePageInfo {
	if e.Failed() {
		return Degraded()
	}
	info := models.ReferencePageInfo{}
	if e.Title.State == Found {
		info.Title = e.Title.Value
	}
	if e.ResourcePack.State == Found {
		v := e.ResourcePack.Value
		info.ResourcePackFormat = &v
	}
	return info
}

// Degraded is the record used whenever the page is unavailable.
func Degraded() models.ReferencePageInfo {
	return models.ReferencePageInfo{Title: UnknownTitle}
}

func parse(html string) (*goquery.Document, error) {
	if strings.TrimSpace(html) == "" {
		return nil, errEmptyDocument
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	// The HTML5 parser accepts anything; text without a single element is
	// not a page we can read.
	if doc.Find("body *").Length() == 0 {
		return nil, errEmptyDocument
	}
	return doc, nil
}

func headerRow(doc *goquery.Document, labels ...string) *goquery.Selection {
	th := doc.Find("th").FilterFunction(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		for _, l := range labels {
			if strings.Contains(text, l) {
				return true
			}
		}
		return false
	}).First()
	if th.Length() == 0 {
		return nil
	}
	row := th.Closest("tr")
	if row.Length() == 0 {
		return nil
	}
	return row
}

func findTitle(doc *goquery.Document) Result {
	row := headerRow(doc, labelOfficialName, labelSnapshot)
	if row == nil {
		return Result{State: NotFound}
	}
	cell := row.Find("td").First()
	title := strings.TrimSpace(strings.ReplaceAll(cell.Text(), "\n", ""))
	if title == "" {
		return Result{State: NotFound}
	}
	return Result{State: Found, Value: title}
}

func findResourcePackFormat(doc *goquery.Document) Result {
	row := headerRow(doc, labelResourcePack)
	if row == nil {
		return Result{State: NotFound}
	}
	value := strings.TrimSpace(row.Find("td p").First().Text())
	if value == "" {
		return Result{State: NotFound}
	}
	return Result{State: Found, Value: value}
}
