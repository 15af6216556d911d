// json2toon converts JSON to the token-efficient TOON text format and back.
package main

import (
	"os"

	"github.com/slkpatel/json2toon/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
