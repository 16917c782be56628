// Command searchdump runs a single search or detail call against one
// configured source and prints the raw JSON, for provider debugging.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Keyon00/MoonTV/config"
	"github.com/Keyon00/MoonTV/services/videoapi"
)

func main() {
	configPath := flag.String("config", "data/settings.json", "path to settings file")
	sourceKey := flag.String("source", "", "source key to query")
	query := flag.String("q", "", "search query")
	id := flag.String("id", "", "content id for a detail lookup")
	flag.Parse()

	if *sourceKey == "" || (*query == "" && *id == "") {
		fmt.Fprintln(os.Stderr, "usage: searchdump -source KEY (-q QUERY | -id ID) [-config PATH]")
		os.Exit(2)
	}

	settings, err := config.NewManager(*configPath).Load()
	if err != nil {
		log.Fatalf("load settings: %v", err)
	}

	svc := videoapi.NewService(settings, nil)
	source, ok := svc.Source(*sourceKey)
	if !ok {
		log.Fatalf("unknown or disabled source: %s", *sourceKey)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var payload any
	if *id != "" {
		result, err := svc.Detail(ctx, source, *id)
		if err != nil {
			log.Fatalf("detail failed: %v", err)
		}
		payload = result
	} else {
		payload = svc.Search(ctx, source, *query)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		log.Fatalf("encode: %v", err)
	}
}
