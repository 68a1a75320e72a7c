package pet

// Game constants
const (
	DefaultPetName = "Pou"
	MaxStat        = 100.0
	MinStat        = 0.0

	// Decay rates (points per second)
	DefaultHungerDecay      = 1.0
	DefaultEnergyDecay      = 0.5
	DefaultCleanlinessDecay = 0.3

	// Illness parameters
	DefaultSickThreshold = 40.0
	DefaultSicknessRate  = 0.2 // Health lost per second while sick

	// Energy drains faster at night
	DefaultNightEnergyMultiplier = 1.5

	// Amount restored by a single item
	DefaultItemAmount = 20.0

	// Low stat threshold for the "want" indicator
	WantThreshold = 50.0

	MaxMoodLog = 20 // Keep last 20 mood transitions
)

// Status emojis
const (
	StatusEmojiHappy     = "😸"
	StatusEmojiOkay      = "🙂"
	StatusEmojiSad       = "😿"
	StatusEmojiSick      = "🤢"
	StatusEmojiDepressed = "😾"
	StatusEmojiNight     = "🌙"
)

// MoodScheme selects the set of thresholds used to classify the average need.
type MoodScheme string

const (
	// MoodSchemeFiveTier maps the average to Happy ≥85, Okay ≥65, Sad ≥40, Sick ≥20, else Depressed.
	MoodSchemeFiveTier MoodScheme = "five-tier"
	// MoodSchemeThreeTier maps the average to Happy ≥75, Okay ≥50, else Sad.
	MoodSchemeThreeTier MoodScheme = "three-tier"

	DefaultMoodScheme = MoodSchemeFiveTier
)
