package pet

import (
	"errors"
	"strings"
	"testing"
	"time"

	"pou/internal/weather"
)

// fakeDelivery records the symbols routed to it
type fakeDelivery struct {
	accepting bool
	received  []int
	err       error
}

func (f *fakeDelivery) Accepting() bool { return f.accepting }

func (f *fakeDelivery) Deliver(symbol int) error {
	if f.err != nil {
		return f.err
	}
	f.received = append(f.received, symbol)
	return nil
}

type fakeAnimator struct {
	reactions []Reaction
}

func (f *fakeAnimator) React(r Reaction) { f.reactions = append(f.reactions, r) }

// mockTimeNow sets a fixed time for deterministic tests and auto-restores after test
func mockTimeNow(t *testing.T) time.Time {
	originalTimeNow := TimeNow
	currentTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	TimeNow = func() time.Time { return currentTime }
	t.Cleanup(func() { TimeNow = originalTimeNow })
	return currentTime
}

func TestNewPet(t *testing.T) {
	p := New("", DefaultConfig(), DefaultAmounts())

	if p.Name != DefaultPetName {
		t.Errorf("Expected pet name to be %s, got %s", DefaultPetName, p.Name)
	}
	if p.Mood() != MoodHappy {
		t.Errorf("Expected a fresh pet to be happy, got %s", p.Mood())
	}
	if p.LastMood != MoodHappy.String() {
		t.Errorf("Expected LastMood %q, got %q", MoodHappy, p.LastMood)
	}
}

func TestUseItems(t *testing.T) {
	tests := []struct {
		item     Item
		need     Need
		reaction Reaction
	}{
		{ItemPizza, NeedHunger, ReactFeed},
		{ItemBed, NeedEnergy, ReactSleep},
		{ItemSoap, NeedCleanliness, ReactClean},
		{ItemPill, NeedHealth, ReactMedicine},
	}

	for _, tt := range tests {
		t.Run(tt.item.String(), func(t *testing.T) {
			p := New("Test", DefaultConfig(), DefaultAmounts())
			anim := &fakeAnimator{}
			p.SetAnimator(anim)
			p.Vitals.Set(tt.need, 50)

			result, err := p.Use(tt.item)
			if err != nil {
				t.Fatalf("Use(%s) returned error: %v", tt.item, err)
			}
			if result.Delivered {
				t.Error("Item should not be delivered without a minigame")
			}
			if result.Need != tt.need || result.Before != 50 || result.After != 70 {
				t.Errorf("Unexpected result: %+v", result)
			}
			if got := p.Vitals.Get(tt.need); got != 70 {
				t.Errorf("Expected %s 70, got %f", tt.need, got)
			}
			if len(anim.reactions) != 1 || anim.reactions[0] != tt.reaction {
				t.Errorf("Expected reaction %d, got %v", tt.reaction, anim.reactions)
			}
		})
	}
}

func TestUseSaturates(t *testing.T) {
	p := New("Test", DefaultConfig(), DefaultAmounts())
	p.Vitals.Set(NeedHunger, 95)

	result, err := p.Use(ItemPizza)
	if err != nil {
		t.Fatal(err)
	}
	if result.After != MaxStat {
		t.Errorf("Expected hunger to saturate at %.0f, got %f", MaxStat, result.After)
	}
}

func TestUseUnknownItem(t *testing.T) {
	p := New("Test", DefaultConfig(), DefaultAmounts())
	_, err := p.Use(Item(9))
	if !errors.Is(err, ErrUnknownItem) {
		t.Errorf("Expected ErrUnknownItem, got %v", err)
	}
}

func TestUseRoutesToDelivery(t *testing.T) {
	p := New("Test", DefaultConfig(), DefaultAmounts())
	anim := &fakeAnimator{}
	d := &fakeDelivery{accepting: true}
	p.SetAnimator(anim)
	p.SetDelivery(d)
	p.Vitals.Set(NeedCleanliness, 50)

	result, err := p.Use(ItemSoap)
	if err != nil {
		t.Fatalf("Use returned error: %v", err)
	}
	if !result.Delivered {
		t.Error("Expected the item to be delivered")
	}
	if len(d.received) != 1 || d.received[0] != int(ItemSoap) {
		t.Errorf("Expected symbol %d delivered, got %v", ItemSoap, d.received)
	}
	if p.Vitals.Cleanliness != 50 {
		t.Errorf("Delivered items must not change vitals, cleanliness = %f", p.Vitals.Cleanliness)
	}
	if len(anim.reactions) != 0 {
		t.Errorf("Delivered items must not animate, got %v", anim.reactions)
	}

	// once the game stops accepting, items go back to the creature
	d.accepting = false
	if result, _ := p.Use(ItemSoap); result.Delivered || p.Vitals.Cleanliness != 70 {
		t.Errorf("Expected soap applied after delivery closed, got %+v", result)
	}
}

func TestUseDeliveryError(t *testing.T) {
	sentinel := errors.New("boom")
	p := New("Test", DefaultConfig(), DefaultAmounts())
	p.SetDelivery(&fakeDelivery{accepting: true, err: sentinel})

	if _, err := p.Use(ItemBed); !errors.Is(err, sentinel) {
		t.Errorf("Expected wrapped delivery error, got %v", err)
	}
}

func TestMoodLog(t *testing.T) {
	mockTimeNow(t)
	p := New("Test", DefaultConfig(), DefaultAmounts())

	// average 70 is Okay
	p.Vitals.Set(NeedHunger, 40)
	p.Vitals.Set(NeedEnergy, 40)
	p.Update(0)

	if len(p.Logs) != 1 {
		t.Fatalf("Expected 1 mood log entry, got %d", len(p.Logs))
	}
	entry := p.Logs[0]
	if entry.OldMood != "Happy" || entry.NewMood != "Okay" {
		t.Errorf("Unexpected log entry: %+v", entry)
	}

	// no change, no entry
	p.Update(0)
	if len(p.Logs) != 1 {
		t.Errorf("Expected no new entry without a mood change, got %d", len(p.Logs))
	}

	for i := 0; i < MaxMoodLog+5; i++ {
		if i%2 == 0 {
			p.Vitals.Set(NeedHunger, 100)
			p.Vitals.Set(NeedEnergy, 100)
		} else {
			p.Vitals.Set(NeedHunger, 40)
			p.Vitals.Set(NeedEnergy, 40)
		}
		p.Update(0)
	}
	if len(p.Logs) != MaxMoodLog {
		t.Errorf("Expected log capped at %d, got %d", MaxMoodLog, len(p.Logs))
	}
}

func TestApplyWeather(t *testing.T) {
	p := New("Test", DefaultConfig(), DefaultAmounts())

	p.ApplyWeather(weather.Conditions{Sunny: true})
	if p.Outfit != weather.OutfitSunglasses || p.Vitals.Night {
		t.Errorf("Sunny day: outfit %q night %t", p.Outfit, p.Vitals.Night)
	}

	p.ApplyWeather(weather.Conditions{Sunny: true, Night: true})
	if p.Outfit != weather.OutfitNone || !p.Vitals.Night {
		t.Errorf("Clear night: outfit %q night %t", p.Outfit, p.Vitals.Night)
	}

	p.ApplyWeather(weather.Conditions{Raining: true})
	if p.Outfit != weather.OutfitRainHat {
		t.Errorf("Rain: outfit %q", p.Outfit)
	}
}

func TestGetStatus(t *testing.T) {
	tests := []struct {
		name      string
		hunger    float64
		energy    float64
		clean     float64
		health    float64
		want      string
		wantLabel string
	}{
		{"content", 100, 100, 100, 100, StatusEmojiHappy, "Happy"},
		{"tired", 100, 30, 100, 100, StatusEmojiOkay + "🛏️", "(wants rest)"},
		{"hungry and sick", 20, 100, 100, 100, StatusEmojiOkay + StatusEmojiSick, "(sick)"},
		{"low health", 100, 100, 100, 45, StatusEmojiHappy + "💊", "(wants medicine)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("Test", DefaultConfig(), DefaultAmounts())
			p.Vitals.Set(NeedHunger, tt.hunger)
			p.Vitals.Set(NeedEnergy, tt.energy)
			p.Vitals.Set(NeedCleanliness, tt.clean)
			p.Vitals.Set(NeedHealth, tt.health)

			if got := GetStatus(p); got != tt.want {
				t.Errorf("GetStatus() = %q, want %q", got, tt.want)
			}
			if got := GetStatusWithLabel(p); !strings.Contains(got, tt.wantLabel) {
				t.Errorf("GetStatusWithLabel() = %q, want it to contain %q", got, tt.wantLabel)
			}
		})
	}
}

func TestStatusShowsNight(t *testing.T) {
	p := New("Test", DefaultConfig(), DefaultAmounts())
	p.Vitals.SetNight(true)

	if got := GetStatusWithLabel(p); !strings.Contains(got, StatusEmojiNight) {
		t.Errorf("Expected night marker in %q", got)
	}
}
