package main

import (
	"os"

	"founderlens/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
