package worker

import (
	"sort"
	"sync"
	"time"

	"github.com/tomkerrigan/fightstats-scraper/internal/config"
	"github.com/tomkerrigan/fightstats-scraper/internal/extract"
	"github.com/tomkerrigan/fightstats-scraper/pkg/models"
)

// Job is one fight to process. Index records the fight's position in
// (event order, in-event listing order) so output ordering does not depend
// on completion order.
type Job struct {
	Index    int
	URL      string
	Date     string
	Location string
}

// Result is the outcome of processing one fight
type Result struct {
	Index  int
	URL    string
	Record models.FightRecord
	Err    error
}

// Pool manages a pool of worker goroutines processing fights
type Pool struct {
	Config    *config.AppConfig
	Source    extract.FightSource
	Jobs      chan Job
	Results   chan Result
	WaitGroup *sync.WaitGroup
}

// NewPool creates a new worker pool over a fight source
func NewPool(config *config.AppConfig, source extract.FightSource, capacity int) *Pool {
	return &Pool{
		Config:    config,
		Source:    source,
		Jobs:      make(chan Job, capacity),
		Results:   make(chan Result, capacity),
		WaitGroup: &sync.WaitGroup{},
	}
}

// Start starts the worker pool
func (p *Pool) Start() {
	// One shared ticker rate-limits outbound fetches across all workers
	rateLimiter := time.NewTicker(p.Config.Scraper.RateLimit)

	for w := 1; w <= p.Config.Scraper.Workers; w++ {
		p.WaitGroup.Add(1)
		go p.worker(rateLimiter)
	}

	// Close the results channel when all workers are done
	go func() {
		p.WaitGroup.Wait()
		rateLimiter.Stop()
		close(p.Results)
	}()
}

// worker processes jobs from the jobs channel and sends results to the
// results channel
func (p *Pool) worker(rateLimiter *time.Ticker) {
	defer p.WaitGroup.Done()

	for job := range p.Jobs {
		<-rateLimiter.C

		record, err := p.Source.Fight(job.URL, job.Date, job.Location)
		p.Results <- Result{
			Index:  job.Index,
			URL:    job.URL,
			Record: record,
			Err:    err,
		}
	}
}

// AddJobs adds jobs to the pool and signals workers that no more are coming
func (p *Pool) AddJobs(jobs []Job) {
	for _, job := range jobs {
		p.Jobs <- job
	}
	close(p.Jobs)
}

// Collect drains the results channel and returns the successful records in
// job-index order along with the number of failed fights.
func Collect(results <-chan Result) ([]models.FightRecord, int) {
	var all []Result
	failures := 0

	for result := range results {
		if result.Err != nil {
			failures++
			continue
		}
		all = append(all, result)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Index < all[j].Index })

	records := make([]models.FightRecord, 0, len(all))
	for _, result := range all {
		records = append(records, result.Record)
	}
	return records, failures
}
