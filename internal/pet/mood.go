package pet

// Mood is the discrete classification of the average need.
type Mood int

const (
	MoodHappy Mood = iota
	MoodOkay
	MoodSad
	MoodSick
	MoodDepressed
)

func (m Mood) String() string {
	switch m {
	case MoodHappy:
		return "Happy"
	case MoodOkay:
		return "Okay"
	case MoodSad:
		return "Sad"
	case MoodSick:
		return "Sick"
	case MoodDepressed:
		return "Depressed"
	default:
		return "Unknown"
	}
}

// MoodThreshold maps an average at or above Min to Mood.
type MoodThreshold struct {
	Min  float64
	Mood Mood
}

// Mood thresholds, checked in descending order. An average below every entry gets the
// scheme's floor mood.
var (
	FiveTierThresholds = []MoodThreshold{
		{Min: 85, Mood: MoodHappy},
		{Min: 65, Mood: MoodOkay},
		{Min: 40, Mood: MoodSad},
		{Min: 20, Mood: MoodSick},
	}
	ThreeTierThresholds = []MoodThreshold{
		{Min: 75, Mood: MoodHappy},
		{Min: 50, Mood: MoodOkay},
	}
)

// Thresholds returns the descending thresholds and floor mood of a scheme.
// Unknown schemes fall back to the default one.
func (s MoodScheme) Thresholds() ([]MoodThreshold, Mood) {
	switch s {
	case MoodSchemeThreeTier:
		return ThreeTierThresholds, MoodSad
	default:
		return FiveTierThresholds, MoodDepressed
	}
}

// Valid reports whether s names a known scheme.
func (s MoodScheme) Valid() bool {
	return s == MoodSchemeFiveTier || s == MoodSchemeThreeTier
}

// ClassifyMood maps an average need to a mood.
func ClassifyMood(average float64, scheme MoodScheme) Mood {
	thresholds, floor := scheme.Thresholds()
	for _, t := range thresholds {
		if average >= t.Min {
			return t.Mood
		}
	}
	return floor
}
