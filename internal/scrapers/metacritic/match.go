package metacritic

import (
	"sort"
	"strings"
	"unicode"

	"metascrape/pkg/textutil"

	"github.com/antzucaro/matchr"
)

// comparableName reduces a name or slug to its lowercase letters and digits, so that
// "League of Legends: Wild Rift" and "league-of-legends-wild-rift" compare equal.
func comparableName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, textutil.NormalizeName(name))
}

// Similarity returns the Jaro-Winkler similarity between two game names in [0, 1],
// punctuation, whitespace and casing are ignored.
func Similarity(a, b string) float64 {
	a = comparableName(a)
	b = comparableName(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	return matchr.JaroWinkler(a, b, false)
}

// NameSimilarity compares the name the page was looked up with against the name the
// page reports for itself. A low value usually means the site served a different game.
func (g *Game) NameSimilarity() (float64, bool, error) {
	name, ok, err := g.Name()
	if err != nil || !ok {
		return 0, false, err
	}
	return Similarity(g.query, name), true, nil
}

type RankedGame struct {
	RelatedGame
	Similarity float64 `json:"similarity"`
}

// RankRelatedGames orders related games by how similar their names are to `query`,
// most similar first. Ties keep document order.
func RankRelatedGames(games []RelatedGame, query string) []RankedGame {
	ranked := make([]RankedGame, len(games))
	for i, game := range games {
		ranked[i] = RankedGame{
			RelatedGame: game,
			Similarity:  Similarity(query, game.Name),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})
	return ranked
}
