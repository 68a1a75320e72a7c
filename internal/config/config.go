// Package config loads and saves the TOML settings file.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"pou/internal/memory"
	"pou/internal/pet"
	"pou/internal/weather"
)

// ErrInvalid is returned for settings that cannot be used.
var ErrInvalid = errors.New("config: invalid value")

// Weather modes
const (
	WeatherClock     = "clock"
	WeatherForced    = "forced"
	WeatherDescribed = "described"
)

const (
	DefaultAutosaveSeconds    = 30.0
	DefaultWeatherPollSeconds = 60.0
)

// Config is the whole settings file.
type Config struct {
	Name    string        `toml:"name"`
	Vitals  pet.Config    `toml:"vitals"`
	Items   pet.Amounts   `toml:"items"`
	Memory  MemoryConfig  `toml:"memory"`
	Weather WeatherConfig `toml:"weather"`
	State   StateConfig   `toml:"state"`
	Scores  ScoresConfig  `toml:"scores"`
	Log     LogConfig     `toml:"log"`
}

// MemoryConfig holds the memory game pacing in seconds.
type MemoryConfig struct {
	AlphabetSize        int     `toml:"alphabet_size"`
	RevealSeconds       float64 `toml:"reveal_seconds"`
	GapSeconds          float64 `toml:"gap_seconds"`
	PostCorrectSeconds  float64 `toml:"post_correct_seconds"`
	LeadInSeconds       float64 `toml:"lead_in_seconds"`
	TailSeconds         float64 `toml:"tail_seconds"`
	CountdownSteps      int     `toml:"countdown_steps"`
	CountdownSeconds    float64 `toml:"countdown_seconds"`
	GameOverHoldSeconds float64 `toml:"game_over_hold_seconds"`
}

// WeatherConfig selects where conditions come from.
type WeatherConfig struct {
	Mode        string             `toml:"mode"`
	Description string             `toml:"description,omitempty"`
	Forced      weather.Conditions `toml:"forced"`
	PollSeconds float64            `toml:"poll_seconds"`
}

type StateConfig struct {
	Path            string  `toml:"path"`
	OfflineDecay    bool    `toml:"offline_decay"`
	AutosaveSeconds float64 `toml:"autosave_seconds"`
}

type ScoresConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	Path string `toml:"path"`
}

// Default returns the stock settings.
func Default() Config {
	mem := memory.DefaultConfig()
	return Config{
		Name:   pet.DefaultPetName,
		Vitals: pet.DefaultConfig(),
		Items:  pet.DefaultAmounts(),
		Memory: MemoryConfig{
			AlphabetSize:        mem.AlphabetSize,
			RevealSeconds:       mem.RevealDuration.Seconds(),
			GapSeconds:          mem.InterSymbolGap.Seconds(),
			PostCorrectSeconds:  mem.PostCorrectDelay.Seconds(),
			LeadInSeconds:       mem.LeadIn.Seconds(),
			TailSeconds:         mem.Tail.Seconds(),
			CountdownSteps:      mem.CountdownSteps,
			CountdownSeconds:    mem.CountdownStep.Seconds(),
			GameOverHoldSeconds: mem.GameOverHold.Seconds(),
		},
		Weather: WeatherConfig{
			Mode:        WeatherClock,
			PollSeconds: DefaultWeatherPollSeconds,
		},
		State: StateConfig{
			AutosaveSeconds: DefaultAutosaveSeconds,
		},
	}
}

// DefaultPath returns ~/.config/pou/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pou", "config.toml"), nil
}

// ResolvePath returns path, or the default path when it is empty.
func ResolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return DefaultPath()
}

// Load reads the settings at path. A missing file yields the defaults; keys absent
// from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory.
func Save(path string, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Marshal encodes cfg as TOML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	rates := []struct {
		name  string
		value float64
	}{
		{"vitals.hunger_decay", c.Vitals.HungerDecay},
		{"vitals.energy_decay", c.Vitals.EnergyDecay},
		{"vitals.cleanliness_decay", c.Vitals.CleanlinessDecay},
		{"vitals.sickness_rate", c.Vitals.SicknessRate},
		{"vitals.night_energy_multiplier", c.Vitals.NightEnergyMultiplier},
		{"memory.reveal_seconds", c.Memory.RevealSeconds},
		{"memory.gap_seconds", c.Memory.GapSeconds},
		{"memory.post_correct_seconds", c.Memory.PostCorrectSeconds},
		{"memory.lead_in_seconds", c.Memory.LeadInSeconds},
		{"memory.tail_seconds", c.Memory.TailSeconds},
		{"memory.countdown_seconds", c.Memory.CountdownSeconds},
		{"memory.game_over_hold_seconds", c.Memory.GameOverHoldSeconds},
		{"state.autosave_seconds", c.State.AutosaveSeconds},
		{"weather.poll_seconds", c.Weather.PollSeconds},
	}
	for _, r := range rates {
		if r.value < 0 || math.IsNaN(r.value) || math.IsInf(r.value, 0) {
			return fmt.Errorf("%w: %s = %v", ErrInvalid, r.name, r.value)
		}
	}

	if math.IsNaN(c.Vitals.SickThreshold) || c.Vitals.SickThreshold < pet.MinStat || c.Vitals.SickThreshold > pet.MaxStat {
		return fmt.Errorf("%w: vitals.sick_threshold = %v", ErrInvalid, c.Vitals.SickThreshold)
	}
	if !c.Vitals.MoodScheme.Valid() {
		return fmt.Errorf("%w: vitals.mood_scheme = %q", ErrInvalid, c.Vitals.MoodScheme)
	}
	// symbols are delivered as items, so the alphabet cannot outgrow the item kinds
	if c.Memory.AlphabetSize < 1 || c.Memory.AlphabetSize > pet.ItemCount() {
		return fmt.Errorf("%w: memory.alphabet_size = %d (1-%d)", ErrInvalid, c.Memory.AlphabetSize, pet.ItemCount())
	}
	if c.Memory.CountdownSteps < 0 {
		return fmt.Errorf("%w: memory.countdown_steps = %d", ErrInvalid, c.Memory.CountdownSteps)
	}

	switch c.Weather.Mode {
	case WeatherClock, WeatherForced, WeatherDescribed:
	default:
		return fmt.Errorf("%w: weather.mode = %q", ErrInvalid, c.Weather.Mode)
	}
	return nil
}

// PetOptions returns the creature settings.
func (c Config) PetOptions() pet.Options {
	return pet.Options{
		Name:         c.Name,
		Path:         c.State.Path,
		OfflineDecay: c.State.OfflineDecay,
		Config:       c.Vitals,
		Amounts:      c.Items,
	}
}

// MemoryConfig returns the game settings.
func (c Config) MemoryConfig() memory.Config {
	return memory.Config{
		AlphabetSize:     c.Memory.AlphabetSize,
		RevealDuration:   seconds(c.Memory.RevealSeconds),
		InterSymbolGap:   seconds(c.Memory.GapSeconds),
		PostCorrectDelay: seconds(c.Memory.PostCorrectSeconds),
		LeadIn:           seconds(c.Memory.LeadInSeconds),
		Tail:             seconds(c.Memory.TailSeconds),
		CountdownSteps:   c.Memory.CountdownSteps,
		CountdownStep:    seconds(c.Memory.CountdownSeconds),
		GameOverHold:     seconds(c.Memory.GameOverHoldSeconds),
	}
}

// WeatherSource returns the configured conditions source.
func (c Config) WeatherSource() weather.Source {
	switch c.Weather.Mode {
	case WeatherForced:
		return weather.Forced{Fixed: c.Weather.Forced}
	case WeatherDescribed:
		return weather.Described{Description: c.Weather.Description}
	default:
		return weather.Clock{}
	}
}

// AutosaveInterval returns how often the UI saves; zero disables autosave.
func (c Config) AutosaveInterval() time.Duration {
	return seconds(c.State.AutosaveSeconds)
}

// WeatherPollInterval returns how often the UI re-reads the weather source.
func (c Config) WeatherPollInterval() time.Duration {
	return seconds(c.Weather.PollSeconds)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
