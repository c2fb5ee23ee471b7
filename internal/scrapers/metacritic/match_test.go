package metacritic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimilarity(t *testing.T) {
	require.Equal(t, 1.0, Similarity("League of Legends: Wild Rift", "league-of-legends-wild-rift"))
	require.Equal(t, 1.0, Similarity("ELDEN RING", "elden_ring"))
	require.Equal(t, 0.0, Similarity("", "elden ring"))
	require.Equal(t, 0.0, Similarity("!!!", "elden ring"))
	require.Less(t, Similarity("Elden Ring", "Hollow Knight"), 0.8)
	require.Greater(t, Similarity("Elden Ring", "Elden Ring Nightreign"), 0.8)
}

func TestRankRelatedGames(t *testing.T) {
	games := []RelatedGame{
		{Name: "Hollow Knight", Url: "/game/hollow-knight/"},
		{Name: "Elden Ring Nightreign", Url: "/game/elden-ring-nightreign/"},
		{Name: "Dark Souls", Url: "/game/dark-souls/"},
	}

	ranked := RankRelatedGames(games, "elden ring")
	require.Len(t, ranked, 3)
	require.Equal(t, "Elden Ring Nightreign", ranked[0].Name)
	for i := 1; i < len(ranked); i++ {
		require.GreaterOrEqual(t, ranked[i-1].Similarity, ranked[i].Similarity)
	}

	// ties keep document order
	ties := RankRelatedGames([]RelatedGame{
		{Name: "Celeste", Url: "/a"},
		{Name: "Celeste", Url: "/b"},
	}, "celeste")
	require.Equal(t, "/a", ties[0].Url)
	require.Equal(t, "/b", ties[1].Url)

	require.Empty(t, RankRelatedGames(nil, "anything"))
}

func TestNameSimilarity(t *testing.T) {
	game, _ := gameFromHtml(t, page(ldJson(`{"name":"Hollow Knight: Silksong"}`)))

	similarity, ok, err := game.NameSimilarity()
	require.NoError(t, err)
	require.True(t, ok)
	require.Less(t, similarity, 0.8)

	game, _ = gameFromHtml(t, page(ldJson(`{"description":"no name"}`)))
	_, ok, err = game.NameSimilarity()
	require.NoError(t, err)
	require.False(t, ok)
}
