package pet

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// TestConfigPath is used for testing to override the state path
var TestConfigPath string

// TestConfig allows overriding default values for testing
type TestConfig struct {
	InitialHunger      float64
	InitialEnergy      float64
	InitialHealth      float64
	InitialCleanliness float64
	Night              bool
	LastSavedTime      time.Time
}

// Options controls how a creature is created, loaded and saved.
type Options struct {
	Name         string
	Path         string // state file; empty means ~/.config/pou/pou.json
	OfflineDecay bool   // apply the time elapsed since the last save on load
	Config       Config
	Amounts      Amounts
}

// DefaultOptions returns options with the stock parameters.
func DefaultOptions() Options {
	return Options{
		Name:    DefaultPetName,
		Config:  DefaultConfig(),
		Amounts: DefaultAmounts(),
	}
}

// GetStatePath returns the path to the pet state file, creating its directory
func GetStatePath(path string) (string, error) {
	if TestConfigPath != "" {
		path = TestConfigPath
	}
	if path == "" {
		configDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		path = filepath.Join(configDir, ".config", "pou", "pou.json")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create state directory: %w", err)
	}
	return path, nil
}

// NewPet creates a new pet with default values or test values if provided
func NewPet(opts Options, testCfg *TestConfig) *Pet {
	p := New(opts.Name, opts.Config, opts.Amounts)

	if testCfg != nil {
		p.Vitals.Set(NeedHunger, testCfg.InitialHunger)
		p.Vitals.Set(NeedEnergy, testCfg.InitialEnergy)
		p.Vitals.Set(NeedHealth, testCfg.InitialHealth)
		p.Vitals.Set(NeedCleanliness, testCfg.InitialCleanliness)
		p.Vitals.SetNight(testCfg.Night)
		if !testCfg.LastSavedTime.IsZero() {
			p.LastSaved = testCfg.LastSavedTime
		}
		p.LastMood = p.Mood().String()
	}

	log.Printf("Created new pet: %s", p.Name)
	return p
}

// LoadState loads the pet's state from file or creates a new pet.
// A missing or unreadable state file yields a fresh creature; only path errors are returned.
func LoadState(opts Options) (*Pet, error) {
	path, err := GetStatePath(opts.Path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Error reading state file: %v. Creating new pet.", err)
		}
		return NewPet(opts, nil), nil
	}

	var p Pet
	if err := json.Unmarshal(data, &p); err != nil || p.Vitals == nil {
		log.Printf("Error loading state: %v. Creating new pet.", err)
		return NewPet(opts, nil), nil
	}

	p.Vitals.SetConfig(opts.Config)
	p.Vitals.sanitize()
	p.amounts = opts.Amounts
	if p.Name == "" {
		p.Name = opts.Name
	}

	now := TimeNow()
	if opts.OfflineDecay && !p.LastSaved.IsZero() {
		elapsed := now.Sub(p.LastSaved.UTC())
		log.Printf("Applying %.0fs of offline decay", elapsed.Seconds())
		p.Update(elapsed.Seconds())
	}

	p.LastSaved = now
	return &p, nil
}

// SaveState saves the pet's state to file
func SaveState(p *Pet, path string) error {
	path, err := GetStatePath(path)
	if err != nil {
		return err
	}

	p.LastSaved = TimeNow()
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
