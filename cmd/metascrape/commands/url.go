package commands

import (
	"fmt"
	"strings"

	"metascrape/cmd/metascrape/globals"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(urlCmd)
}

var urlCmd = &cobra.Command{
	Use:   "url <game name...>",
	Short: "Prints the page url a game name maps to, without fetching it.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := globals.Get(cmd.Context()).Client
		fmt.Println(client.GameUrl(strings.Join(args, " ")))
	},
}
