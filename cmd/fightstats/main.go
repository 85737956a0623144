package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/tomkerrigan/fightstats-scraper/internal/config"
	"github.com/tomkerrigan/fightstats-scraper/internal/discover"
	"github.com/tomkerrigan/fightstats-scraper/internal/export"
	"github.com/tomkerrigan/fightstats-scraper/internal/extract"
	"github.com/tomkerrigan/fightstats-scraper/internal/fetch"
	"github.com/tomkerrigan/fightstats-scraper/internal/worker"
	"github.com/tomkerrigan/fightstats-scraper/pkg/models"
)

func main() {
	// Define command-line flags
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	limit := flag.Int("limit", 0, "Maximum number of events to scrape (0 = no cap)")
	cutoffYear := flag.Int("cutoff-year", 0, "Stop at events dated this year or earlier (0 = no cutoff)")
	eventsFile := flag.String("events", "", "File listing event URLs to scrape instead of crawling the listing")
	outputFile := flag.String("output", "fights.csv", "File to save fight records to")
	outputFormat := flag.String("format", "csv", "Output format (csv or json)")
	tabPrefix := flag.Bool("tab-prefix", false, "Prefix W-L-D records with a tab to defeat spreadsheet date coercion")
	numWorkers := flag.Int("workers", 3, "Number of concurrent fight workers")
	rateLimitDelay := flag.Duration("rate-limit", 1*time.Second, "Delay between fight fetches")
	maxRetries := flag.Int("retries", 3, "Maximum number of retries per fetch")
	linkStrategy := flag.String("link-strategy", "flag-class", "Fight-link disambiguation rule (flag-class, every-other, every-third)")
	enableBrowser := flag.Bool("browser", false, "Enable browser-based fetching")
	seed := flag.Int64("seed", 0, "Seed for side-label randomization (0 = time-based)")
	flag.Parse()

	fmt.Println("Fight Statistics Scraper Starting...")

	// Load configuration
	var appConfig *config.AppConfig
	if *configFile != "" {
		var err error
		appConfig, err = config.Load(*configFile)
		if err != nil {
			log.Fatalf("Error loading configuration: %v", err)
		}
		fmt.Printf("Loaded configuration from %s\n", *configFile)
	} else {
		appConfig = config.CreateDefault()
	}

	// Override config with command-line flags if provided
	if *limit > 0 {
		appConfig.Crawl.Limit = *limit
	}
	if *cutoffYear > 0 {
		appConfig.Crawl.CutoffYear = *cutoffYear
	}
	if *eventsFile != "" {
		appConfig.Crawl.EventsFile = *eventsFile
	}
	if *linkStrategy != "flag-class" {
		appConfig.Crawl.LinkStrategy = *linkStrategy
	}
	if *outputFile != "fights.csv" {
		appConfig.Output.File = *outputFile
	}
	if *outputFormat != "csv" {
		appConfig.Output.Format = *outputFormat
	}
	if *tabPrefix {
		appConfig.Output.TabPrefixRecords = true
	}
	if *numWorkers != 3 {
		appConfig.Scraper.Workers = *numWorkers
	}
	if *rateLimitDelay != 1*time.Second {
		appConfig.Scraper.RateLimit = *rateLimitDelay
	}
	if *maxRetries != 3 {
		appConfig.Scraper.MaxRetries = *maxRetries
	}
	if *enableBrowser {
		appConfig.Browser.Enabled = true
	}

	strategy, err := extract.StrategyForName(appConfig.Crawl.LinkStrategy)
	if err != nil {
		log.Fatalf("Error resolving link strategy: %v", err)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	// Wire the pipeline
	fetcher := fetch.New(appConfig)
	profiles := extract.NewProfileCache(extract.NewFighterExtractor(fetcher))
	fights := extract.NewFightExtractor(fetcher, profiles, rng)
	eventExtractor := extract.NewEventExtractor(fetcher, fights, strategy)

	// Discover events to scrape
	var events []models.EventDescriptor
	if appConfig.Crawl.EventsFile != "" {
		reader := export.NewEventListReader(appConfig.Crawl.EventsFile)
		events, err = reader.ReadEvents()
		if err != nil {
			log.Fatalf("Error reading event list: %v", err)
		}
		fmt.Printf("Loaded %d events from %s\n", len(events), appConfig.Crawl.EventsFile)
	} else {
		discoverer := discover.New(fetcher, &appConfig.Crawl)
		events, err = discoverer.Events(discover.Options{
			Limit:      appConfig.Crawl.Limit,
			CutoffYear: appConfig.Crawl.CutoffYear,
		})
		if err != nil {
			log.Fatalf("Error discovering events: %v", err)
		}
		fmt.Printf("Discovered %d events\n", len(events))
	}

	if len(events) == 0 {
		log.Fatal("No events to scrape")
	}

	// Enumerate fights per event; job indexes preserve (event order,
	// in-event listing order) in the final output.
	var jobs []worker.Job
	skippedEvents := 0
	for i, event := range events {
		fmt.Printf("Listing fights for %s (%d/%d)\n", event.Name, i+1, len(events))
		urls, err := eventExtractor.FightURLs(event.URL)
		if err != nil {
			fmt.Printf("Skipping event %s: %v\n", event.URL, err)
			skippedEvents++
			continue
		}
		for _, fightURL := range urls {
			jobs = append(jobs, worker.Job{
				Index:    len(jobs),
				URL:      fightURL,
				Date:     event.Date,
				Location: event.Location,
			})
		}
	}

	fmt.Printf("Preparing to scrape %d fights with %d workers\n", len(jobs), appConfig.Scraper.Workers)

	pool := worker.NewPool(appConfig, fights, len(jobs))
	pool.Start()
	pool.AddJobs(jobs)

	records, failedFights := worker.Collect(pool.Results)

	// Save records to file
	writer := export.NewResultWriter(&appConfig.Output)
	if err := writer.SaveToFile(records); err != nil {
		log.Fatalf("Error saving records to file: %v", err)
	}

	fmt.Printf("All fights have been processed. Success: %d, Failures: %d, Skipped events: %d\n",
		len(records), failedFights, skippedEvents)
	fmt.Printf("Fighter profiles fetched: %d\n", profiles.Len())
	fmt.Printf("Records saved to %s\n", appConfig.Output.File)
}
