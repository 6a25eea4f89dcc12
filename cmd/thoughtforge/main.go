package main

import (
	"log"

	"github.com/kyaoi/thoughtforge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
