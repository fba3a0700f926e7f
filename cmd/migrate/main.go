package main

import (
	"log"
	"os"

	"roomslot/config"
	"roomslot/helper"
)

const (
	argLength = 2
)

func main() {
	if len(os.Args) < argLength {
		log.Fatal("Migration action is required: up, down, drop, step-up or version")
	}

	cfg := config.Get()

	if err := helper.Runner(cfg, os.Args[1]); err != nil {
		log.Fatal(err)
	}
}
