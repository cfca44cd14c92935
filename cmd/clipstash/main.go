package main

import (
	"fmt"
	"log"
	"os"

	"github.com/clipstash/clipstash/internal/app"
	"github.com/clipstash/clipstash/internal/config"
)

const version = "v0.3.0"

func main() {
	log.Printf("ClipStash %s starting...", version)

	settings, err := config.Load("config.json")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	application, err := app.New(settings, version)
	if err != nil {
		log.Fatalf("Error initializing application: %v", err)
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", r)
			os.Exit(1)
		}
	}()

	application.Run()
}
