package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"metascrape/cmd/metascrape/globals"
	"metascrape/cmd/metascrape/utils"
	"metascrape/internal/components/serviceutil"
	"metascrape/internal/scrapers/metacritic"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// below this, the page most likely belongs to a different game than the one asked for
const nameMismatchThreshold = 0.8

var gameJson *bool

func init() {
	gameJson = gameCmd.Flags().Bool("json", false, "Print the record as JSON.")
	rootCmd.AddCommand(gameCmd)
}

func fetchGame(ctx context.Context, args []string) *metacritic.Game {
	client := globals.Get(ctx).Client
	game, err := client.FetchGame(ctx, strings.Join(args, " "))
	if err != nil {
		serviceutil.Fatal("failed to fetch game", err)
	}
	return game
}

func warnNameMismatch(game *metacritic.Game) {
	similarity, ok, err := game.NameSimilarity()
	if err != nil || !ok {
		return
	}
	if similarity < nameMismatchThreshold {
		name, _, _ := game.Name()
		slog.Warn(
			"the page may be for a different game",
			"query", game.Query(),
			"name", name,
			"similarity", similarity,
		)
	}
}

func optional[T any](value *T) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprint(*value)
}

func optionalList(values []string) string {
	if values == nil {
		return "-"
	}
	return strings.Join(values, ", ")
}

func recordRows(url string, record metacritic.GameRecord) []table.Row {
	metascore := "-"
	if record.Metascore != nil {
		metascore = strconv.Itoa(*record.Metascore)
	}
	return []table.Row{
		{"Url", url},
		{"Name", optional(record.Name)},
		{"Platforms", optionalList(record.Platforms)},
		{"Metascore", metascore},
		{"Publisher", optional(record.Publisher)},
		{"Release date", optional(record.ReleaseDate)},
		{"Genres", optionalList(record.Genres)},
		{"Image", optional(record.Image)},
		{"Summary", optional(record.Summary)},
	}
}

type gameOutput struct {
	Url    string                `json:"url"`
	Record metacritic.GameRecord `json:"record"`
}

var gameCmd = &cobra.Command{
	Use:   "game <game name...> [--json]",
	Short: "Fetches the page of a game and prints the fields it describes.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		game := fetchGame(cmd.Context(), args)

		record, err := game.Record()
		if err != nil {
			serviceutil.Fatal("failed to read game page", err)
		}
		warnNameMismatch(game)

		if *gameJson {
			printJson(gameOutput{Url: game.Url(), Record: record})
			return
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Field", "Value"})
		t.AppendRows(recordRows(game.Url(), record))
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, WidthMax: 80},
		})
		t.Render()
	},
}
