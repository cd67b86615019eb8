package main

import (
	"log"

	"github.com/flarebyte/dbreset/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
