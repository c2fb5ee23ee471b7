package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"metascrape/cmd/metascrape/utils"
	"metascrape/internal/components/serviceutil"
	"metascrape/internal/scrapers/metacritic"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	relatedMatch *bool
	relatedJson  *bool
)

func init() {
	relatedMatch = relatedCmd.Flags().Bool("match", false, "Order the related games by similarity to the given name.")
	relatedJson = relatedCmd.Flags().Bool("json", false, "Print the related games as JSON.")
	rootCmd.AddCommand(relatedCmd)
}

func rankedRows(games []metacritic.RankedGame) []table.Row {
	rows := make([]table.Row, len(games))
	for i, game := range games {
		rows[i] = table.Row{game.Name, game.Url, fmt.Sprintf("%.2f", game.Similarity)}
	}
	return rows
}

func relatedRows(games []metacritic.RelatedGame) []table.Row {
	rows := make([]table.Row, len(games))
	for i, game := range games {
		rows[i] = table.Row{game.Name, game.Url}
	}
	return rows
}

func printJson(value any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	err := encoder.Encode(value)
	if err != nil {
		serviceutil.Fatal("failed to encode output", err)
	}
}

var relatedCmd = &cobra.Command{
	Use:   "related <game name...> [--match] [--json]",
	Short: "Fetches the page of a game and lists the games it links to.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		game := fetchGame(cmd.Context(), args)

		related, err := game.RelatedGames()
		if err != nil {
			serviceutil.Fatal("failed to read related games", err)
		}

		t := utils.NewTable()
		if *relatedMatch {
			ranked := metacritic.RankRelatedGames(related, game.Query())
			if *relatedJson {
				printJson(ranked)
				return
			}
			t.AppendHeader(table.Row{"Name", "Url", "Similarity"})
			t.AppendRows(rankedRows(ranked))
		} else {
			if *relatedJson {
				printJson(related)
				return
			}
			t.AppendHeader(table.Row{"Name", "Url"})
			t.AppendRows(relatedRows(related))
		}
		t.Render()
	},
}
