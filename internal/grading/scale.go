package grading

// Threshold maps an inclusive lower percentage bound to a letter.
type Threshold struct {
	Min    int
	Letter string
}

// Scale is an ordered list of thresholds, highest Min first.
type Scale []Threshold

// FailingLetter is returned for percentages below every threshold.
const FailingLetter = "F"

// DefaultScale is the letter scale used for answers and session totals.
var DefaultScale = Scale{
	{Min: 93, Letter: "A"},
	{Min: 87, Letter: "B+"},
	{Min: 80, Letter: "B"},
	{Min: 73, Letter: "C+"},
	{Min: 65, Letter: "C"},
	{Min: 55, Letter: "D"},
}

// Letter returns the letter for pct.
func (s Scale) Letter(pct int) string {
	for _, t := range s {
		if pct >= t.Min {
			return t.Letter
		}
	}
	return FailingLetter
}

// Band classifies a letter for display: "strong", "fair" or "weak".
func Band(letter string) string {
	switch letter {
	case "A", "B+", "B":
		return "strong"
	case "C+", "C":
		return "fair"
	default:
		return "weak"
	}
}
