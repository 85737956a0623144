// Package export reads event lists in and writes assembled fight records out
// as delimited text, flattened to one row per fight with a fixed column set.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/tomkerrigan/fightstats-scraper/internal/config"
	"github.com/tomkerrigan/fightstats-scraper/pkg/models"
)

// maxRounds fixes the per-round column count; title fights go five rounds.
const maxRounds = 5

var bioKeys = []string{"name", "record", "height", "weight", "reach", "stance", "dob"}

var metaColumns = []string{
	"date", "location", "weight_class", "victory_method",
	"final_round", "finish_time", "number_of_rounds",
	"winner", "winner_ambiguous",
}

var statKeys = []string{
	"kd",
	"sig_str_landed", "sig_str_attempted", "sig_str_pct",
	"total_str_landed", "total_str_attempted",
	"td_landed", "td_attempted", "td_pct",
	"sub_att", "rev", "ctrl_seconds",
	"head_landed", "head_attempted",
	"body_landed", "body_attempted",
	"leg_landed", "leg_attempted",
	"distance_landed", "distance_attempted",
	"clinch_landed", "clinch_attempted",
	"ground_landed", "ground_attempted",
}

// ResultWriter writes fight records to the configured output
type ResultWriter struct {
	Config *config.OutputConfig
}

// NewResultWriter creates a new result writer
func NewResultWriter(config *config.OutputConfig) *ResultWriter {
	return &ResultWriter{
		Config: config,
	}
}

// SaveToFile saves the records to a file in the configured format
func (w *ResultWriter) SaveToFile(records []models.FightRecord) error {
	switch w.Config.Format {
	case "csv":
		return w.saveCSV(records)

	case "json":
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		return os.WriteFile(w.Config.File, data, 0644)

	default:
		return fmt.Errorf("unsupported output format: %s", w.Config.Format)
	}
}

func (w *ResultWriter) saveCSV(records []models.FightRecord) error {
	file, err := os.Create(w.Config.File)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(Columns()); err != nil {
		return err
	}
	for _, record := range records {
		if err := writer.Write(Flatten(record, w.Config.TabPrefixRecords)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Columns returns the fixed flattened column set, in output order: both
// fighters' biographical fields, fight metadata, aggregate statistics, then
// the round-suffixed statistics. Round keys carry a _0r suffix so they never
// collide with the aggregate key for the same stat.
func Columns() []string {
	var cols []string
	for _, side := range []string{"fighter_a", "fighter_b"} {
		for _, key := range bioKeys {
			cols = append(cols, side+"_"+key)
		}
	}
	cols = append(cols, metaColumns...)
	for _, side := range []string{"fighter_a", "fighter_b"} {
		for _, key := range statKeys {
			cols = append(cols, side+"_"+key)
		}
	}
	for r := 1; r <= maxRounds; r++ {
		for _, side := range []string{"fighter_a", "fighter_b"} {
			for _, key := range statKeys {
				cols = append(cols, fmt.Sprintf("%s_%s_0%d", side, key, r))
			}
		}
	}
	return cols
}

// Flatten renders one record as a CSV row matching Columns. With tabPrefix
// set, W-L-D record strings get a leading tab so spreadsheets do not
// reinterpret them as dates.
func Flatten(record models.FightRecord, tabPrefix bool) []string {
	var row []string

	for _, snapshot := range []models.FighterSnapshot{record.FighterA, record.FighterB} {
		rec := snapshot.Record
		if tabPrefix {
			rec = "\t" + rec
		}
		row = append(row,
			snapshot.Name,
			rec,
			unknownIfZero(snapshot.HeightInches),
			unknownIfZero(snapshot.WeightPounds),
			unknownIfZero(snapshot.ReachInches),
			snapshot.Stance,
			snapshot.DateOfBirth,
		)
	}

	row = append(row,
		record.Date,
		record.Location,
		record.WeightClass,
		record.VictoryMethod,
		strconv.Itoa(record.FinalRound),
		record.FinishTime,
		strconv.Itoa(record.NumberOfRounds),
		string(record.Winner),
		strconv.FormatBool(record.WinnerAmbiguous),
	)

	for _, stats := range []models.SideStats{record.StatsA, record.StatsB} {
		row = append(row, statValues(stats.Totals)...)
	}
	for r := 0; r < maxRounds; r++ {
		for _, stats := range []models.SideStats{record.StatsA, record.StatsB} {
			var line models.StatLine
			if r < len(stats.Rounds) {
				line = stats.Rounds[r]
			}
			row = append(row, statValues(line)...)
		}
	}

	return row
}

func statValues(line models.StatLine) []string {
	return []string{
		strconv.Itoa(line.Knockdowns),
		strconv.Itoa(line.SigStrikesLanded),
		strconv.Itoa(line.SigStrikesAttempts),
		formatPct(line.SigStrikePct),
		strconv.Itoa(line.TotalStrikesLanded),
		strconv.Itoa(line.TotalStrikesAtt),
		strconv.Itoa(line.TakedownsLanded),
		strconv.Itoa(line.TakedownsAttempted),
		formatPct(line.TakedownPct),
		strconv.Itoa(line.SubmissionAttempts),
		strconv.Itoa(line.Reversals),
		strconv.Itoa(line.ControlSeconds),
		strconv.Itoa(line.HeadLanded),
		strconv.Itoa(line.HeadAttempted),
		strconv.Itoa(line.BodyLanded),
		strconv.Itoa(line.BodyAttempted),
		strconv.Itoa(line.LegLanded),
		strconv.Itoa(line.LegAttempted),
		strconv.Itoa(line.DistanceLanded),
		strconv.Itoa(line.DistanceAttempted),
		strconv.Itoa(line.ClinchLanded),
		strconv.Itoa(line.ClinchAttempted),
		strconv.Itoa(line.GroundLanded),
		strconv.Itoa(line.GroundAttempted),
	}
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func unknownIfZero(v int) string {
	if v == 0 {
		return models.Unknown
	}
	return strconv.Itoa(v)
}
