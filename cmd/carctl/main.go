// carctl is a command-line client for the car catalog API.
package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"carcatalog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
