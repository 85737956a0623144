package models

// Unknown is the placeholder stored for biographical or categorical fields
// that are missing or unparsable on the source page. Numeric counts default
// to zero instead and never carry this sentinel.
const Unknown = "unknown"

// Side labels one of the two competitors in a fight. Labels are assigned
// per fight by a coin flip, never by the page's display order.
type Side string

const (
	// SideA is the first anonymized fighter label.
	SideA Side = "a"
	// SideB is the second anonymized fighter label.
	SideB Side = "b"
	// SideUnknown marks a fight whose winner could not be resolved.
	SideUnknown Side = ""
)

// EventDescriptor identifies one fight card discovered on the listing pages.
// The date keeps the source "Month DD, YYYY" format until it is attached to a
// fight record.
type EventDescriptor struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Location string `json:"location"`
	URL      string `json:"url"`
}

// FighterSnapshot holds a fighter's biographical data as shown on their
// profile page at scrape time. Height and reach are inches, weight is pounds;
// zero means the value was missing or unparsable.
type FighterSnapshot struct {
	Name         string `json:"name"`
	Record       string `json:"record"`
	HeightInches int    `json:"height"`
	WeightPounds int    `json:"weight"`
	ReachInches  int    `json:"reach"`
	Stance       string `json:"stance"`
	DateOfBirth  string `json:"dob"`
}

// StatLine holds one fighter's combat statistics for a single scope: either
// the whole fight or one round. Missing or malformed tokens parse to zero.
type StatLine struct {
	Knockdowns         int     `json:"kd"`
	SigStrikesLanded   int     `json:"sig_str_landed"`
	SigStrikesAttempts int     `json:"sig_str_attempted"`
	SigStrikePct       float64 `json:"sig_str_pct"`
	TotalStrikesLanded int     `json:"total_str_landed"`
	TotalStrikesAtt    int     `json:"total_str_attempted"`
	TakedownsLanded    int     `json:"td_landed"`
	TakedownsAttempted int     `json:"td_attempted"`
	TakedownPct        float64 `json:"td_pct"`
	SubmissionAttempts int     `json:"sub_att"`
	Reversals          int     `json:"rev"`
	ControlSeconds     int     `json:"ctrl_seconds"`

	// Significant-strike breakdown by target area and position. The overall
	// significant-strike totals above are not repeated here.
	HeadLanded        int `json:"head_landed"`
	HeadAttempted     int `json:"head_attempted"`
	BodyLanded        int `json:"body_landed"`
	BodyAttempted     int `json:"body_attempted"`
	LegLanded         int `json:"leg_landed"`
	LegAttempted      int `json:"leg_attempted"`
	DistanceLanded    int `json:"distance_landed"`
	DistanceAttempted int `json:"distance_attempted"`
	ClinchLanded      int `json:"clinch_landed"`
	ClinchAttempted   int `json:"clinch_attempted"`
	GroundLanded      int `json:"ground_landed"`
	GroundAttempted   int `json:"ground_attempted"`
}

// SideStats groups one fighter's fight-aggregate line with their per-round
// lines. Rounds[0] is round 1. Keeping the scopes in separate fields means a
// round value can never overwrite an aggregate value.
type SideStats struct {
	Totals StatLine   `json:"totals"`
	Rounds []StatLine `json:"rounds,omitempty"`
}

// FightRecord is one completed bout with event metadata, both fighters'
// biographical snapshots and the full per-side statistics.
type FightRecord struct {
	FighterA FighterSnapshot `json:"fighter_a"`
	FighterB FighterSnapshot `json:"fighter_b"`

	Date        string `json:"date"` // DD/MM/YYYY
	Location    string `json:"location"`
	WeightClass string `json:"weight_class"`

	VictoryMethod  string `json:"victory_method"`
	FinalRound     int    `json:"final_round"`
	FinishTime     string `json:"finish_time"` // MM:SS
	NumberOfRounds int    `json:"number_of_rounds"`

	// Winner is resolved by matching the page's winner marker against the
	// already-shuffled side labels. WinnerAmbiguous is set when the marker is
	// absent or matches neither name; Winner is left unresolved in that case.
	Winner          Side `json:"winner"`
	WinnerAmbiguous bool `json:"winner_ambiguous,omitempty"`

	StatsA SideStats `json:"stats_a"`
	StatsB SideStats `json:"stats_b"`
}
