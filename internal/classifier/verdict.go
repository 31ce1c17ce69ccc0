package classifier

type Verdict int

const (
	Unknown Verdict = iota
	Affirmative
	Negative
)

func (v Verdict) String() string {
	switch v {
	case Affirmative:
		return "affirmative"
	case Negative:
		return "negative"
	default:
		return "unknown"
	}
}

// ParseVerdict maps model output to a Verdict. Only the exact text "YES"
// is affirmative; "yes", "YES." and truncated output are not.
func ParseVerdict(text string) Verdict {
	switch text {
	case "YES":
		return Affirmative
	case "":
		return Unknown
	default:
		return Negative
	}
}
