package metacritic

import (
	"encoding/hex"
	"fmt"
	"strings"

	"metascrape/pkg/textutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_game_related_games = "game.related-games"

	productCardSelector      = `[data-testid="product-card"]`
	productContainerSelector = ".c-globalProductCard_container"
)

var nameSeparators = strings.NewReplacer("-", " ", "_", " ")

// lastPathSegment returns the final component of the path of `href`, the query,
// fragment and any trailing slashes are ignored.
func lastPathSegment(href string) string {
	p, _, _ := strings.Cut(href, "#")
	p, _, _ = strings.Cut(p, "?")
	p = strings.TrimRight(p, "/")
	idx := strings.LastIndexByte(p, '/')
	if idx >= 0 {
		p = p[idx+1:]
	}
	return p
}

// urlDecode decodes `+` to a space and every valid %XX escape, anything else
// (ex. a lone "%") is kept as is.
func urlDecode(s string) string {
	var out strings.Builder
	out.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '+' {
			out.WriteByte(' ')
			continue
		}
		if c == '%' && i+2 < len(s) {
			decoded, err := hex.DecodeString(s[i+1 : i+3])
			if err == nil {
				out.Write(decoded)
				i += 2
				continue
			}
		}
		out.WriteByte(c)
	}
	return out.String()
}

// RelatedGameName derives a display name from the href of a related game,
// ex. "/game/my-cool-game/" becomes "My Cool Game".
func RelatedGameName(href string) string {
	decoded := urlDecode(lastPathSegment(href))
	decoded = nameSeparators.Replace(decoded)
	return textutil.UpperWords(decoded)
}

// RelatedGames lists the games linked from the product cards of the page, in document
// order. Cards without a linked container are skipped. The result is never nil unless
// the document tree could not be walked, in which case the error wraps
// ErrRelatedGamesExtraction.
func (g *Game) RelatedGames() (related []RelatedGame, err error) {
	related = []RelatedGame{}
	if g.doc == nil {
		return related, nil
	}

	// selectors panic on trees that were not produced by the html parser
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		related = nil
		err = fmt.Errorf("%w: %v", ErrRelatedGamesExtraction, r)
		g.tel.ReportBroken(report_game_related_games, err, g.url)
	}()

	g.doc.Find(productCardSelector).Each(func(_ int, card *goquery.Selection) {
		container := card.Find(productContainerSelector).First()
		href, ok := container.Attr("href")
		if !ok {
			return
		}
		related = append(related, RelatedGame{
			Name: RelatedGameName(href),
			Url:  href,
		})
	})

	if len(related) == 0 {
		g.tel.ReportDebug("no related games found", g.url)
	}
	g.tel.ReportCount(report_game_related_games, int64(len(related)))

	return related, nil
}
