// Package weather derives outfit and day/night conditions for the creature and
// broadcasts them to subscribers.
package weather

import (
	"log"
	"strings"
	"time"
)

// Night hours: from NightStartHour until DayStartHour the next morning.
const (
	NightStartHour = 20
	DayStartHour   = 6
)

// Conditions is one weather observation.
type Conditions struct {
	Raining bool `toml:"raining"`
	Sunny   bool `toml:"sunny"`
	Snowing bool `toml:"snowing"`
	Cloudy  bool `toml:"cloudy"`
	Night   bool `toml:"night"`
}

// IsNightHour reports whether a clock hour falls in the night window.
func IsNightHour(hour int) bool {
	return hour >= NightStartHour || hour < DayStartHour
}

// Classify turns a free-form conditions description and a local hour into flags.
// Only one sky flag is set: rain wins over snow, snow over clear, clear over cloud.
func Classify(description string, hour int) Conditions {
	c := Conditions{Night: IsNightHour(hour)}

	d := strings.ToLower(description)
	switch {
	case strings.Contains(d, "rain"):
		c.Raining = true
	case strings.Contains(d, "snow"):
		c.Snowing = true
	case strings.Contains(d, "clear"):
		c.Sunny = true
	case strings.Contains(d, "cloud"):
		c.Cloudy = true
	}
	return c
}

// Outfit is the accessory the creature wears for the weather.
type Outfit string

const (
	OutfitNone       Outfit = ""
	OutfitRainHat    Outfit = "rain hat"
	OutfitBeanie     Outfit = "beanie"
	OutfitSunglasses Outfit = "sunglasses"
)

func (o Outfit) String() string {
	if o == OutfitNone {
		return "none"
	}
	return string(o)
}

// Emoji returns the icon drawn next to the creature.
func (o Outfit) Emoji() string {
	switch o {
	case OutfitRainHat:
		return "☂️"
	case OutfitBeanie:
		return "🧣"
	case OutfitSunglasses:
		return "🕶️"
	}
	return ""
}

// OutfitFor picks the outfit for conditions. Sunglasses are only worn in daylight.
func OutfitFor(c Conditions) Outfit {
	switch {
	case c.Raining:
		return OutfitRainHat
	case c.Snowing:
		return OutfitBeanie
	case c.Sunny && !c.Night:
		return OutfitSunglasses
	default:
		return OutfitNone
	}
}

// Source produces the current conditions.
type Source interface {
	Conditions(now time.Time) Conditions
}

// Clock derives only the night flag from the local hour.
type Clock struct{}

// Conditions implements Source
func (Clock) Conditions(now time.Time) Conditions {
	return Conditions{Night: IsNightHour(now.Local().Hour())}
}

// Forced always reports the same conditions.
type Forced struct {
	Fixed Conditions
}

// Conditions implements Source
func (f Forced) Conditions(time.Time) Conditions {
	return f.Fixed
}

// Described classifies a fixed description with the hour of the observation time.
type Described struct {
	Description string
}

// Conditions implements Source
func (d Described) Conditions(now time.Time) Conditions {
	return Classify(d.Description, now.Local().Hour())
}

// Broadcaster owns the latest conditions and the list of parties interested in them.
type Broadcaster struct {
	current Conditions
	known   bool
	nextID  int
	subs    map[int]func(Conditions)
	order   []int
}

// NewBroadcaster creates a broadcaster with no conditions yet.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]func(Conditions))}
}

// Subscribe registers fn. If conditions are already known fn receives them immediately.
// The returned function removes the subscription.
func (b *Broadcaster) Subscribe(fn func(Conditions)) (cancel func()) {
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.order = append(b.order, id)

	if b.known {
		fn(b.current)
	}

	return func() {
		delete(b.subs, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Publish stores c and notifies subscribers when it differs from the previous conditions.
// It reports whether anyone was notified.
func (b *Broadcaster) Publish(c Conditions) bool {
	if b.known && c == b.current {
		return false
	}
	b.current = c
	b.known = true
	log.Printf("Weather flags: rain=%t snow=%t sunny=%t cloudy=%t night=%t", c.Raining, c.Snowing, c.Sunny, c.Cloudy, c.Night)

	// subscribers may cancel from inside their callback
	ids := append([]int(nil), b.order...)
	for _, id := range ids {
		if fn, ok := b.subs[id]; ok {
			fn(c)
		}
	}
	return true
}

// Current returns the latest conditions and whether any were published.
func (b *Broadcaster) Current() (Conditions, bool) {
	return b.current, b.known
}

// Poll reads src and publishes the result.
func (b *Broadcaster) Poll(src Source, now time.Time) bool {
	return b.Publish(src.Conditions(now))
}
