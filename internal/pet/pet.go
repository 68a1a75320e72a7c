package pet

import (
	"fmt"
	"log"
	"time"

	"pou/internal/weather"
)

// Testable time function
var TimeNow = func() time.Time { return time.Now().UTC() }

// LogEntry records a mood transition
type LogEntry struct {
	Time    time.Time `json:"time"`
	OldMood string    `json:"old_mood"`
	NewMood string    `json:"new_mood"`
}

// Animator plays creature reactions. The terminal UI implements it.
type Animator interface {
	React(r Reaction)
}

// Delivery receives items as minigame input while a session is accepting them.
type Delivery interface {
	Accepting() bool
	Deliver(symbol int) error
}

// UseResult describes the effect of using an item.
type UseResult struct {
	Item      Item
	Delivered bool // routed to the minigame instead of the vitals
	Need      Need
	Before    float64
	After     float64
}

// Pet is one live creature: its vitals plus the collaborators it drives.
type Pet struct {
	Name      string         `json:"name"`
	Vitals    *Vitals        `json:"vitals"`
	Outfit    weather.Outfit `json:"outfit"`
	LastMood  string         `json:"last_mood,omitempty"`
	Logs      []LogEntry     `json:"logs,omitempty"`
	LastSaved time.Time      `json:"last_saved"`

	amounts  Amounts
	animator Animator
	delivery Delivery
}

// New creates a creature with full needs.
func New(name string, cfg Config, amounts Amounts) *Pet {
	if name == "" {
		name = DefaultPetName
	}
	p := &Pet{
		Name:      name,
		Vitals:    NewVitals(cfg),
		amounts:   amounts,
		LastSaved: TimeNow(),
	}
	p.LastMood = p.Mood().String()
	return p
}

// SetAnimator attaches the reaction player.
func (p *Pet) SetAnimator(a Animator) { p.animator = a }

// SetDelivery attaches a minigame input target. Pass nil to detach.
func (p *Pet) SetDelivery(d Delivery) { p.delivery = d }

// SetAmounts replaces the per-item amounts.
func (p *Pet) SetAmounts(a Amounts) { p.amounts = a }

// Amounts returns the per-item amounts.
func (p *Pet) Amounts() Amounts { return p.amounts }

// Mood returns the current mood.
func (p *Pet) Mood() Mood { return p.Vitals.CurrentMood() }

// IsSick reports whether the creature is losing health.
func (p *Pet) IsSick() bool { return p.Vitals.IsSick() }

// Update advances the vitals by dt seconds and records a mood change.
func (p *Pet) Update(dt float64) {
	p.Vitals.Tick(dt)
	p.recordMood()
}

func (p *Pet) recordMood() {
	current := p.Mood().String()
	if p.LastMood == "" {
		p.LastMood = current
		return
	}
	if current == p.LastMood {
		return
	}

	p.Logs = append(p.Logs, LogEntry{
		Time:    TimeNow(),
		OldMood: p.LastMood,
		NewMood: current,
	})
	if len(p.Logs) > MaxMoodLog {
		p.Logs = p.Logs[len(p.Logs)-MaxMoodLog:]
	}
	log.Printf("%s mood changed: %s -> %s (average %.1f)", p.Name, p.LastMood, current, p.Vitals.Average())
	p.LastMood = current
}

// Use applies an item. While a minigame is accepting input the item is delivered to it
// instead and the vitals are untouched.
func (p *Pet) Use(item Item) (UseResult, error) {
	def := GetItemDefinition(item)
	if def == nil {
		return UseResult{}, fmt.Errorf("use %d: %w", int(item), ErrUnknownItem)
	}

	result := UseResult{Item: item, Need: def.Need}

	if p.delivery != nil && p.delivery.Accepting() {
		if err := p.delivery.Deliver(int(item)); err != nil {
			return result, fmt.Errorf("deliver %s: %w", def.Name, err)
		}
		result.Delivered = true
		log.Printf("Delivered %s to %s", def.Name, p.Name)
		return result, nil
	}

	amount := p.amounts.For(item)
	result.Before = p.Vitals.Get(def.Need)
	def.Apply(p.Vitals, amount)
	result.After = p.Vitals.Get(def.Need)

	if p.animator != nil {
		p.animator.React(def.Reaction)
	}
	log.Printf("%s %s %s, %s increased by %.0f (now %.1f)", p.Name, def.Message, def.Name, def.Need, amount, result.After)

	p.recordMood()
	return result, nil
}

// ApplyWeather updates the night flag and outfit from new conditions.
func (p *Pet) ApplyWeather(c weather.Conditions) {
	p.Vitals.SetNight(c.Night)
	outfit := weather.OutfitFor(c)
	if outfit != p.Outfit {
		log.Printf("%s changed outfit: %s -> %s", p.Name, p.Outfit, outfit)
	}
	p.Outfit = outfit
}
