package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl   string `json:"base_url"`
	UserAgent string `json:"user_agent"`
	Timeout   int    `json:"timeout"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestSplitExt(t *testing.T) {
	table := []struct {
		input  string
		prefix string
		ext    string
	}{
		{input: "config.json5", prefix: "config", ext: "json5"},
		{input: "config.local.json5", prefix: "config.local", ext: "json5"},
		{input: "config", prefix: "config", ext: ""},
	}

	for _, row := range table {
		prefix, ext := splitExt(row.input)
		require.Equal(t, row.prefix, prefix)
		require.Equal(t, row.ext, ext)
	}
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{
		// comments are allowed
		base_url: "https://example.com/game/",
		timeout: 10,
	}`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{timeout: 3}`)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://example.com/game/", config.BaseUrl)
	require.Equal(t, 3, config.Timeout)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.True(t, os.IsNotExist(err))
}

func TestReadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{base_url: `)

	_, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.Error(t, err)
	require.False(t, os.IsNotExist(err))
}

func TestReadConfigOr(t *testing.T) {
	defaults := testConfig{
		BaseUrl:   "https://www.metacritic.com/game/",
		UserAgent: "agent",
	}

	config, err := ReadConfigOr(filepath.Join(t.TempDir(), "config.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, config)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{user_agent: "custom"}`)

	config, err = ReadConfigOr(filepath.Join(dir, "config.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, "https://www.metacritic.com/game/", config.BaseUrl)
	require.Equal(t, "custom", config.UserAgent)
}
