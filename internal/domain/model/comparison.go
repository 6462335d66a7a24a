package model

// ComparisonRecord is one athlete's result within a single race.
type ComparisonRecord struct {
	AthleteName string
	RecordTime  float64
	Rank        int
}

// ReferenceMarks are the optional record times a race is measured against.
// A nil mark means the record was not supplied, which is different from a zero time.
type ReferenceMarks struct {
	NationalRecord *float64
	GamesRecord    *float64
}

// ResultComparison is the comparison output for one athlete.
// Diff fields are nil when the corresponding baseline is absent or not applicable.
type ResultComparison struct {
	AthleteName            string
	RecordTime             float64
	Rank                   int
	DiffFromNationalRecord *float64
	DiffFromGamesRecord    *float64
	DiffFromTarget         *float64
}

// Float returns a pointer to v, for populating optional marks and diffs.
func Float(v float64) *float64 { return &v }
