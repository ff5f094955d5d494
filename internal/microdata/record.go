package microdata

// Sheet holds one candidate's exam data for a single subject.
// Answers and Key are empty when the candidate was absent or the
// source field was blank; Score and Booklet are nil in the same case.
type Sheet struct {
	Answers  string
	Key      string
	Score    *float64
	Booklet  *int64
	Presence *int64
}

// Attributes is the demographic/school attribute set carried through
// the pipeline unchanged. Pointer fields are nil when the source value
// is missing.
type Attributes struct {
	Sex                   *int64
	RaceColor             *int64
	HSCompletionStatus    *int64
	SchoolType            *int64
	TeachingMode          *int64
	IsTester              *int64
	SchoolAdminDependency *int64
	SchoolLocation        *int64
	SchoolOperStatus      *int64
	FamilyIncomeBracket   *int64
	SchoolFundingSrc      *int64
}

// Candidate is one row of the processed microdata: identity, the four
// subject sheets, and the passthrough attributes.
type Candidate struct {
	RegistrationID int64
	ExamYear       int
	Exams          [NumSubjects]Sheet
	Attrs          Attributes
}

// Present reports whether the candidate sat all four exams
// (presence flag 1 in every subject).
func (c *Candidate) Present() bool {
	for _, sh := range c.Exams {
		if sh.Presence == nil || *sh.Presence != 1 {
			return false
		}
	}
	return true
}

func F64(v float64) *float64 { return &v }
func I64(v int64) *int64     { return &v }
