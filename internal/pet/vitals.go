package pet

import "math"

// Config holds the decay and illness parameters of a creature.
type Config struct {
	HungerDecay           float64    `toml:"hunger_decay"`
	EnergyDecay           float64    `toml:"energy_decay"`
	CleanlinessDecay      float64    `toml:"cleanliness_decay"`
	SickThreshold         float64    `toml:"sick_threshold"`
	SicknessRate          float64    `toml:"sickness_rate"`
	NightEnergyMultiplier float64    `toml:"night_energy_multiplier"`
	MoodScheme            MoodScheme `toml:"mood_scheme"`
}

// DefaultConfig returns the stock decay parameters.
func DefaultConfig() Config {
	return Config{
		HungerDecay:           DefaultHungerDecay,
		EnergyDecay:           DefaultEnergyDecay,
		CleanlinessDecay:      DefaultCleanlinessDecay,
		SickThreshold:         DefaultSickThreshold,
		SicknessRate:          DefaultSicknessRate,
		NightEnergyMultiplier: DefaultNightEnergyMultiplier,
		MoodScheme:            DefaultMoodScheme,
	}
}

// Need identifies one of the four bounded vitals.
type Need int

const (
	NeedHunger Need = iota
	NeedEnergy
	NeedHealth
	NeedCleanliness
)

func (n Need) String() string {
	switch n {
	case NeedHunger:
		return "hunger"
	case NeedEnergy:
		return "energy"
	case NeedHealth:
		return "health"
	case NeedCleanliness:
		return "cleanliness"
	default:
		return "unknown"
	}
}

// Vitals holds the four needs of one creature. Every value stays in [MinStat, MaxStat].
type Vitals struct {
	Hunger      float64 `json:"hunger"`
	Energy      float64 `json:"energy"`
	Health      float64 `json:"health"`
	Cleanliness float64 `json:"cleanliness"`
	Night       bool    `json:"night"`

	cfg Config
}

// NewVitals creates vitals with every need full.
func NewVitals(cfg Config) *Vitals {
	return &Vitals{
		Hunger:      MaxStat,
		Energy:      MaxStat,
		Health:      MaxStat,
		Cleanliness: MaxStat,
		cfg:         cfg,
	}
}

// Config returns the parameters the vitals decay with.
func (v *Vitals) Config() Config {
	return v.cfg
}

// SetConfig replaces the decay parameters, keeping the current needs.
func (v *Vitals) SetConfig(cfg Config) {
	v.cfg = cfg
}

// SetNight toggles the night energy multiplier.
func (v *Vitals) SetNight(night bool) {
	v.Night = night
}

// Tick applies dt seconds of decay. Negative or NaN durations are treated as zero.
func (v *Vitals) Tick(dt float64) {
	if !(dt > 0) {
		return
	}
	// keep zero rates from turning an infinite step into NaN
	dt = math.Min(dt, math.MaxFloat64)

	energyRate := v.cfg.EnergyDecay
	if v.Night && v.cfg.NightEnergyMultiplier > 0 {
		energyRate *= v.cfg.NightEnergyMultiplier
	}

	v.Hunger = clamp(v.Hunger - v.cfg.HungerDecay*dt)
	v.Energy = clamp(v.Energy - energyRate*dt)
	v.Cleanliness = clamp(v.Cleanliness - v.cfg.CleanlinessDecay*dt)

	// Health decays only while hunger or cleanliness sits below the sick threshold
	if v.IsSick() {
		v.Health = clamp(v.Health - v.cfg.SicknessRate*dt)
	}
}

// Feed adds amount to hunger.
func (v *Vitals) Feed(amount float64) { v.Hunger = add(v.Hunger, amount) }

// Rest adds amount to energy.
func (v *Vitals) Rest(amount float64) { v.Energy = add(v.Energy, amount) }

// Clean adds amount to cleanliness.
func (v *Vitals) Clean(amount float64) { v.Cleanliness = add(v.Cleanliness, amount) }

// Heal adds amount to health.
func (v *Vitals) Heal(amount float64) { v.Health = add(v.Health, amount) }

// Get returns the current value of a need.
func (v *Vitals) Get(n Need) float64 {
	switch n {
	case NeedHunger:
		return v.Hunger
	case NeedEnergy:
		return v.Energy
	case NeedHealth:
		return v.Health
	case NeedCleanliness:
		return v.Cleanliness
	}
	return 0
}

// Set overwrites a need, clamped to range.
func (v *Vitals) Set(n Need, value float64) {
	if math.IsNaN(value) {
		return
	}
	switch n {
	case NeedHunger:
		v.Hunger = clamp(value)
	case NeedEnergy:
		v.Energy = clamp(value)
	case NeedHealth:
		v.Health = clamp(value)
	case NeedCleanliness:
		v.Cleanliness = clamp(value)
	}
}

// IsSick reports whether hunger or cleanliness is below the sick threshold.
func (v *Vitals) IsSick() bool {
	return v.Hunger < v.cfg.SickThreshold || v.Cleanliness < v.cfg.SickThreshold
}

// Average returns the mean of the four needs.
func (v *Vitals) Average() float64 {
	return (v.Hunger + v.Energy + v.Health + v.Cleanliness) / 4
}

// CurrentMood classifies the average need with the configured scheme.
func (v *Vitals) CurrentMood() Mood {
	return ClassifyMood(v.Average(), v.cfg.MoodScheme)
}

// LowestNeed returns the most depleted need and its value.
func (v *Vitals) LowestNeed() (Need, float64) {
	lowest, value := NeedHunger, v.Hunger
	for _, n := range []Need{NeedEnergy, NeedHealth, NeedCleanliness} {
		if v.Get(n) < value {
			lowest, value = n, v.Get(n)
		}
	}
	return lowest, value
}

// sanitize loaded values which may come from a hand-edited state file
func (v *Vitals) sanitize() {
	for _, n := range []Need{NeedHunger, NeedEnergy, NeedHealth, NeedCleanliness} {
		value := v.Get(n)
		if math.IsNaN(value) {
			value = MaxStat
		}
		v.Set(n, value)
	}
}

func add(value, amount float64) float64 {
	if math.IsNaN(amount) {
		return value
	}
	return clamp(value + amount)
}

func clamp(value float64) float64 {
	return math.Max(MinStat, math.Min(value, MaxStat))
}
