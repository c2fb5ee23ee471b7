package main

import (
	"metascrape/cmd/metascrape/commands"
	"metascrape/internal/components/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
