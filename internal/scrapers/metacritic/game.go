package metacritic

import (
	"sync"

	"metascrape/internal/components/assert"
	"metascrape/internal/components/telemetry"

	"github.com/PuerkitoBio/goquery"
)

// Game is a fetched game page. It is read-only after construction, every accessor
// is a pure function of the page and can be called any number of times.
type Game struct {
	query string
	url   string
	doc   *goquery.Document
	tel   telemetry.API

	structuredOnce sync.Once
	structured     StructuredData
	structuredErr  error
}

// NewGame wraps an already parsed page, `query` is the name the page was looked up with.
// `doc` may be nil, in which case the game has no data.
func NewGame(query string, doc *goquery.Document, tel telemetry.API) *Game {
	assert.NotNil(tel)
	return newGame(query, "", doc, telemetry.NewScopedAPI("metacritic", tel))
}

func newGame(query, url string, doc *goquery.Document, tel telemetry.API) *Game {
	return &Game{
		query: query,
		url:   url,
		doc:   doc,
		tel:   tel,
	}
}

// Url is the url the page was fetched from.
func (g *Game) Url() string {
	return g.url
}

// Query is the name the page was looked up with.
func (g *Game) Query() string {
	return g.query
}

// Loaded reports whether the page was retrieved.
func (g *Game) Loaded() bool {
	return g.doc != nil
}

// Record collects every structured-data field of the page.
func (g *Game) Record() (GameRecord, error) {
	var record GameRecord

	name, ok, err := g.Name()
	if err != nil {
		return GameRecord{}, err
	}
	if ok {
		record.Name = &name
	}

	platforms, ok, err := g.Platforms()
	if err != nil {
		return GameRecord{}, err
	}
	if ok {
		record.Platforms = platforms
	}

	metascore, ok, err := g.Metascore()
	if err != nil {
		return GameRecord{}, err
	}
	if ok {
		record.Metascore = &metascore
	}

	publisher, ok, err := g.Publisher()
	if err != nil {
		return GameRecord{}, err
	}
	if ok {
		record.Publisher = &publisher
	}

	releaseDate, ok, err := g.ReleaseDate()
	if err != nil {
		return GameRecord{}, err
	}
	if ok {
		record.ReleaseDate = &releaseDate
	}

	summary, ok, err := g.Summary()
	if err != nil {
		return GameRecord{}, err
	}
	if ok {
		record.Summary = &summary
	}

	genres, ok, err := g.Genres()
	if err != nil {
		return GameRecord{}, err
	}
	if ok {
		record.Genres = genres
	}

	image, ok, err := g.Image()
	if err != nil {
		return GameRecord{}, err
	}
	if ok {
		record.Image = &image
	}

	return record, nil
}
