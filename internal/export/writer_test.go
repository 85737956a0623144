package export_test

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomkerrigan/fightstats-scraper/internal/config"
	"github.com/tomkerrigan/fightstats-scraper/internal/export"
	"github.com/tomkerrigan/fightstats-scraper/pkg/models"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleRecord() models.FightRecord {
	return models.FightRecord{
		FighterA: models.FighterSnapshot{
			Name:         "Alpha Fighter",
			Record:       "21-3-0",
			HeightInches: 71,
			WeightPounds: 155,
			ReachInches:  74,
			Stance:       "Orthodox",
			DateOfBirth:  "14/07/1992",
		},
		FighterB: models.FighterSnapshot{
			Name:   "Beta Fighter",
			Record: "18-5-1",
			Stance: models.Unknown,
		},
		Date:           "01/06/2025",
		Location:       "Las Vegas, Nevada, USA",
		WeightClass:    "Lightweight",
		VictoryMethod:  "KO/TKO",
		FinalRound:     2,
		FinishTime:     "3:27",
		NumberOfRounds: 3,
		Winner:         models.SideA,
		StatsA: models.SideStats{
			Totals: models.StatLine{
				Knockdowns:         1,
				SigStrikesLanded:   30,
				SigStrikesAttempts: 55,
				SigStrikePct:       54.5,
				ControlSeconds:     185,
				HeadLanded:         20,
				HeadAttempted:      40,
			},
			Rounds: []models.StatLine{
				{SigStrikesLanded: 12, SigStrikesAttempts: 25},
				{SigStrikesLanded: 18, SigStrikesAttempts: 30, Knockdowns: 1},
			},
		},
		StatsB: models.SideStats{
			Totals: models.StatLine{SigStrikesLanded: 14, SigStrikesAttempts: 40},
			Rounds: []models.StatLine{
				{SigStrikesLanded: 8, SigStrikesAttempts: 22},
				{SigStrikesLanded: 6, SigStrikesAttempts: 18},
			},
		},
	}
}

func columnIndex(t *testing.T, cols []string, name string) int {
	t.Helper()
	for i, col := range cols {
		if col == name {
			return i
		}
	}
	t.Fatalf("column %q not found", name)
	return -1
}

func TestColumns(t *testing.T) {
	Convey("Given the flattened column set", t, func() {
		cols := export.Columns()

		Convey("Bio, metadata, aggregate and five rounds of stats are present", func() {
			// 2*7 bio + 9 metadata + 2*24 aggregate + 5*2*24 per-round.
			So(len(cols), ShouldEqual, 311)
		})

		Convey("Every column name is unique", func() {
			seen := make(map[string]bool, len(cols))
			for _, col := range cols {
				So(seen[col], ShouldBeFalse)
				seen[col] = true
			}
		})

		Convey("Round columns carry a zero-padded suffix distinct from aggregates", func() {
			So(cols, ShouldContain, "fighter_a_sig_str_landed")
			So(cols, ShouldContain, "fighter_a_sig_str_landed_01")
			So(cols, ShouldContain, "fighter_b_ctrl_seconds_05")
			So(cols, ShouldNotContain, "fighter_a_sig_str_landed_1")
		})

		Convey("Bio columns come first, per side", func() {
			So(cols[0], ShouldEqual, "fighter_a_name")
			So(cols[7], ShouldEqual, "fighter_b_name")
			So(cols[14], ShouldEqual, "date")
		})
	})
}

func TestFlatten(t *testing.T) {
	Convey("Given a fight record flattened to a row", t, func() {
		cols := export.Columns()
		record := sampleRecord()

		Convey("The row lines up with the column set", func() {
			row := export.Flatten(record, false)
			So(len(row), ShouldEqual, len(cols))

			So(row[columnIndex(t, cols, "fighter_a_name")], ShouldEqual, "Alpha Fighter")
			So(row[columnIndex(t, cols, "fighter_a_height")], ShouldEqual, "71")
			So(row[columnIndex(t, cols, "winner")], ShouldEqual, "a")
			So(row[columnIndex(t, cols, "winner_ambiguous")], ShouldEqual, "false")
			So(row[columnIndex(t, cols, "fighter_a_sig_str_pct")], ShouldEqual, "54.5")
			So(row[columnIndex(t, cols, "fighter_a_ctrl_seconds")], ShouldEqual, "185")
			So(row[columnIndex(t, cols, "fighter_a_kd_02")], ShouldEqual, "1")
			So(row[columnIndex(t, cols, "fighter_b_sig_str_landed_01")], ShouldEqual, "8")
		})

		Convey("Missing biographical numbers render as unknown", func() {
			row := export.Flatten(record, false)
			So(row[columnIndex(t, cols, "fighter_b_height")], ShouldEqual, models.Unknown)
			So(row[columnIndex(t, cols, "fighter_b_weight")], ShouldEqual, models.Unknown)
			So(row[columnIndex(t, cols, "fighter_b_reach")], ShouldEqual, models.Unknown)
		})

		Convey("Rounds the fight never reached render as zeroes", func() {
			row := export.Flatten(record, false)
			So(row[columnIndex(t, cols, "fighter_a_sig_str_landed_03")], ShouldEqual, "0")
			So(row[columnIndex(t, cols, "fighter_a_sig_str_landed_05")], ShouldEqual, "0")
		})

		Convey("Tab prefixing guards W-L-D records, and nothing else", func() {
			row := export.Flatten(record, true)
			So(row[columnIndex(t, cols, "fighter_a_record")], ShouldEqual, "\t21-3-0")
			So(row[columnIndex(t, cols, "fighter_b_record")], ShouldEqual, "\t18-5-1")
			So(row[columnIndex(t, cols, "fighter_a_name")], ShouldEqual, "Alpha Fighter")
		})
	})
}

func TestSaveToFile(t *testing.T) {
	Convey("Given a result writer and one record", t, func() {
		dir := t.TempDir()
		record := sampleRecord()

		Convey("CSV output has a header row plus one row per record", func() {
			cfg := &config.OutputConfig{File: filepath.Join(dir, "fights.csv"), Format: "csv"}
			writer := export.NewResultWriter(cfg)

			So(writer.SaveToFile([]models.FightRecord{record, record}), ShouldBeNil)

			file, err := os.Open(cfg.File)
			So(err, ShouldBeNil)
			defer file.Close()

			rows, err := csv.NewReader(file).ReadAll()
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 3)
			So(rows[0], ShouldResemble, export.Columns())
			So(len(rows[1]), ShouldEqual, len(rows[0]))
		})

		Convey("JSON output round-trips the records", func() {
			cfg := &config.OutputConfig{File: filepath.Join(dir, "fights.json"), Format: "json"}
			writer := export.NewResultWriter(cfg)

			So(writer.SaveToFile([]models.FightRecord{record}), ShouldBeNil)

			data, err := os.ReadFile(cfg.File)
			So(err, ShouldBeNil)

			var out []models.FightRecord
			So(json.Unmarshal(data, &out), ShouldBeNil)
			So(len(out), ShouldEqual, 1)
			So(out[0], ShouldResemble, record)
		})

		Convey("An unsupported format is refused", func() {
			cfg := &config.OutputConfig{File: filepath.Join(dir, "fights.xml"), Format: "xml"}
			writer := export.NewResultWriter(cfg)

			So(writer.SaveToFile([]models.FightRecord{record}), ShouldNotBeNil)
		})
	})
}
