package metacritic

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"metascrape/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_game_structured_data = "game.structured-data"
	report_game_field           = "game.field"
)

// findStructuredDataText returns the payload of the last <script data-hid="ld+json">
// in the document, or "" if there is none.
func findStructuredDataText(doc *goquery.Document) string {
	content := ""
	for _, script := range doc.Find("script").Nodes {
		marker, ok := htmlutil.GetAttr(script, "data-hid")
		if !ok || marker != "ld+json" {
			continue
		}
		content = htmlutil.GetText(script)
	}
	return content
}

func parseStructuredData(text string) (StructuredData, error) {
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()

	var value any
	err := decoder.Decode(&value)
	if err == io.EOF {
		return nil, fmt.Errorf("empty payload")
	}
	if err != nil {
		return nil, err
	}
	_, err = decoder.Token()
	if err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}

	object, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a json object, got %T", value)
	}
	return object, nil
}

// StructuredData returns the decoded JSON-LD block of the page. It returns a nil map
// if the page was never retrieved and an error wrapping ErrMalformedStructuredData if
// the block (or its absence, which counts as an empty payload) is not a JSON object.
//
// The result is computed once per Game, the document never changes after construction.
func (g *Game) StructuredData() (StructuredData, error) {
	if g.doc == nil {
		return nil, nil
	}

	g.structuredOnce.Do(func() {
		text := findStructuredDataText(g.doc)
		data, err := parseStructuredData(text)
		if err != nil {
			g.structuredErr = fmt.Errorf("%w: %w", ErrMalformedStructuredData, err)
			g.tel.ReportBroken(report_game_structured_data, g.structuredErr, g.url)
			return
		}
		g.structured = data
	})

	return g.structured, g.structuredErr
}

// lookup walks `value` along `path`, string steps index objects and int steps index
// arrays. Any missing step or a null at the end yields (nil, false).
func lookup(value any, path ...any) (any, bool) {
	current := value
	for _, step := range path {
		switch key := step.(type) {
		case string:
			object, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}
			current, ok = object[key]
			if !ok {
				return nil, false
			}
		case int:
			array, ok := current.([]any)
			if !ok || key < 0 || key >= len(array) {
				return nil, false
			}
			current = array[key]
		default:
			panic(fmt.Sprintf("unsupported path step type %T", step))
		}
	}
	if current == nil {
		return nil, false
	}
	return current, true
}

func (g *Game) field(path ...any) (any, bool, error) {
	data, err := g.StructuredData()
	if err != nil {
		return nil, false, err
	}
	if data == nil {
		return nil, false, nil
	}
	value, ok := lookup(map[string]any(data), path...)
	return value, ok, nil
}

func formatPath(path []any) string {
	parts := make([]string, len(path))
	for i, step := range path {
		parts[i] = fmt.Sprint(step)
	}
	return strings.Join(parts, ".")
}

func (g *Game) reportWrongType(path []any, expected string, value any) {
	g.tel.ReportWarning(
		report_game_field,
		fmt.Errorf("expected %s, got %T", expected, value),
		formatPath(path),
		g.url,
	)
}

func (g *Game) stringField(path ...any) (string, bool, error) {
	value, ok, err := g.field(path...)
	if err != nil || !ok {
		return "", false, err
	}
	str, ok := value.(string)
	if !ok {
		g.reportWrongType(path, "string", value)
		return "", false, nil
	}
	return str, true, nil
}

func (g *Game) stringListField(wrapSingle bool, path ...any) ([]string, bool, error) {
	value, ok, err := g.field(path...)
	if err != nil || !ok {
		return nil, false, err
	}

	switch v := value.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				g.reportWrongType(path, "string item", item)
				continue
			}
			out = append(out, str)
		}
		return out, true, nil
	case string:
		if wrapSingle {
			return []string{v}, true, nil
		}
	}

	g.reportWrongType(path, "array", value)
	return nil, false, nil
}

var errNotInteger = errors.New("not an integer")

// toInt converts a JSON number or numeric string to an int, truncating fractions.
func toInt(value any) (int, error) {
	var text string
	switch v := value.(type) {
	case json.Number:
		text = v.String()
	case string:
		text = strings.TrimSpace(v)
	default:
		return 0, errNotInteger
	}

	n, err := strconv.Atoi(text)
	if err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotInteger
	}
	return int(f), nil
}

// Name is the `name` of the game.
func (g *Game) Name() (string, bool, error) {
	return g.stringField("name")
}

// Platforms is the `gamePlatform` list of the game.
func (g *Game) Platforms() ([]string, bool, error) {
	return g.stringListField(false, "gamePlatform")
}

// Metascore is `aggregateRating.ratingValue` as an integer.
func (g *Game) Metascore() (int, bool, error) {
	path := []any{"aggregateRating", "ratingValue"}
	value, ok, err := g.field(path...)
	if err != nil || !ok {
		return 0, false, err
	}
	score, err := toInt(value)
	if err != nil {
		g.reportWrongType(path, "integer", value)
		return 0, false, nil
	}
	if score < 0 || score > 100 {
		g.tel.ReportWarning(
			report_game_field,
			fmt.Errorf("metascore out of range: %d", score),
			g.url,
		)
	}
	return score, true, nil
}

// Publisher is the name of the first entry of `publisher`.
func (g *Game) Publisher() (string, bool, error) {
	return g.stringField("publisher", 0, "name")
}

// ReleaseDate is `datePublished` as it appears on the page.
func (g *Game) ReleaseDate() (string, bool, error) {
	return g.stringField("datePublished")
}

// Summary is the `description` of the game.
func (g *Game) Summary() (string, bool, error) {
	return g.stringField("description")
}

// Genres is the `genre` of the game, a single genre is returned as a one element list.
func (g *Game) Genres() ([]string, bool, error) {
	return g.stringListField(true, "genre")
}

// Image is the `image` url of the game.
func (g *Game) Image() (string, bool, error) {
	return g.stringField("image")
}
