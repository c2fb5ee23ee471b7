package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"metascrape/internal/components/configutil"
	"metascrape/internal/scrapers/metacritic"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := configutil.ReadConfigOr(filepath.Join(t.TempDir(), "config.json5"), defaultConfig())
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)

	opts := cfg.clientOptions(nil)
	require.Equal(t, metacritic.DEFAULT_BASE_URL, opts.BaseUrl)
	require.Equal(t, time.Duration(0), opts.Timeout)
	require.False(t, opts.CloudflareBypass)
}

func TestConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.json5"), []byte(`{
		// mirrors work too
		base_url: "http://localhost:8080/game/",
		timeout: 10,
		otlp: { traces: { http_endpoint: "localhost:4318" } },
	}`), 0600)
	require.NoError(t, err)

	cfg, err := configutil.ReadConfigOr(filepath.Join(dir, "config.json5"), defaultConfig())
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/game/", cfg.BaseUrl)
	require.Equal(t, metacritic.DEFAULT_USER_AGENT, cfg.UserAgent)
	require.Equal(t, "localhost:4318", cfg.Otlp.Traces.HttpEndpoint)

	opts := cfg.clientOptions(nil)
	require.Equal(t, 10*time.Second, opts.Timeout)
}

func TestRecordRows(t *testing.T) {
	name := "Celeste"
	score := 94
	rows := recordRows("https://example.com/game/celeste", metacritic.GameRecord{
		Name:      &name,
		Metascore: &score,
		Genres:    []string{"Platformer", "Indie"},
		Platforms: []string{},
	})

	require.Equal(t, table.Row{"Url", "https://example.com/game/celeste"}, rows[0])
	require.Equal(t, table.Row{"Name", "Celeste"}, rows[1])
	require.Equal(t, table.Row{"Platforms", ""}, rows[2])
	require.Equal(t, table.Row{"Metascore", "94"}, rows[3])
	require.Equal(t, table.Row{"Publisher", "-"}, rows[4])
	require.Equal(t, table.Row{"Genres", "Platformer, Indie"}, rows[6])
}

func TestRankedRows(t *testing.T) {
	rows := rankedRows([]metacritic.RankedGame{
		{RelatedGame: metacritic.RelatedGame{Name: "A", Url: "/a"}, Similarity: 0.5},
	})
	require.Equal(t, []table.Row{{"A", "/a", "0.50"}}, rows)
}
