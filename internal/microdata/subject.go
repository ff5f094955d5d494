package microdata

// Subject identifies one of the four ENEM exam areas.
type Subject int

const (
	Science Subject = iota // CN - natural sciences
	Humanities             // CH - human sciences
	Language               // LC - languages and codes
	Math                   // MT - mathematics

	NumSubjects int = 4
)

// Subjects lists all exam areas in canonical order.
func Subjects() []Subject {
	return []Subject{Science, Humanities, Language, Math}
}

func (s Subject) String() string {
	switch s {
	case Science:
		return "science"
	case Humanities:
		return "humanities"
	case Language:
		return "language"
	case Math:
		return "math"
	default:
		return "unknown"
	}
}

// Label returns the long English name used in figures and tables.
func (s Subject) Label() string {
	switch s {
	case Science:
		return "Natural Sciences"
	case Humanities:
		return "Humanities"
	case Language:
		return "Languages and Codes"
	case Math:
		return "Mathematics"
	default:
		return "Unknown"
	}
}

// Code returns the INEP area code used in raw column names and
// artifact file names.
func (s Subject) Code() string {
	switch s {
	case Science:
		return "CN"
	case Humanities:
		return "CH"
	case Language:
		return "LC"
	default:
		return "MT"
	}
}

// AnswerLen is the fixed length of the answer and key strings for the
// subject: 50 questions for language, 45 for the other three areas.
func (s Subject) AnswerLen() int {
	if s == Language {
		return 50
	}
	return 45
}
