package export

import (
	"bufio"
	"os"
	"strings"

	"github.com/tomkerrigan/fightstats-scraper/pkg/models"
)

// EventListReader reads a prepared event list instead of crawling the
// listing pages
type EventListReader struct {
	File string
}

// NewEventListReader creates a new event list reader
func NewEventListReader(file string) *EventListReader {
	return &EventListReader{File: file}
}

// ReadEvents reads events from the file, one per line as
// URL<TAB>date<TAB>location. Date and location may be omitted; blank lines
// and lines starting with # are skipped.
func (r *EventListReader) ReadEvents() ([]models.EventDescriptor, error) {
	file, err := os.Open(r.File)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var events []models.EventDescriptor
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "\t")
		event := models.EventDescriptor{URL: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			event.Date = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			event.Location = strings.TrimSpace(parts[2])
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
