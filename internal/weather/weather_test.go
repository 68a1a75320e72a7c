package weather

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		description string
		hour        int
		want        Conditions
	}{
		{"rain at noon", "Rain, Partially cloudy", 12, Conditions{Raining: true}},
		{"snow at night", "Snow", 22, Conditions{Snowing: true, Night: true}},
		{"clear morning", "Clear", 6, Conditions{Sunny: true}},
		{"clear early hours", "clear", 5, Conditions{Sunny: true, Night: true}},
		{"overcast is cloudy", "Overcast, Cloudy", 15, Conditions{Cloudy: true}},
		{"rain beats snow", "Snow, Rain", 10, Conditions{Raining: true}},
		{"unknown description", "Fog", 20, Conditions{Night: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.description, tt.hour); got != tt.want {
				t.Errorf("Classify(%q, %d) = %+v, want %+v", tt.description, tt.hour, got, tt.want)
			}
		})
	}
}

func TestOutfitFor(t *testing.T) {
	tests := []struct {
		name string
		c    Conditions
		want Outfit
	}{
		{"rain hat", Conditions{Raining: true, Sunny: true}, OutfitRainHat},
		{"beanie", Conditions{Snowing: true}, OutfitBeanie},
		{"sunglasses by day", Conditions{Sunny: true}, OutfitSunglasses},
		{"no sunglasses at night", Conditions{Sunny: true, Night: true}, OutfitNone},
		{"cloudy", Conditions{Cloudy: true}, OutfitNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutfitFor(tt.c); got != tt.want {
				t.Errorf("OutfitFor(%+v) = %q, want %q", tt.c, got, tt.want)
			}
		})
	}
}

func TestBroadcasterNotifiesOnChangeOnly(t *testing.T) {
	b := NewBroadcaster()
	var received []Conditions
	b.Subscribe(func(c Conditions) { received = append(received, c) })

	if !b.Publish(Conditions{Sunny: true}) {
		t.Error("First publish should notify")
	}
	if b.Publish(Conditions{Sunny: true}) {
		t.Error("Publishing identical conditions should not notify")
	}
	b.Publish(Conditions{Raining: true})

	if len(received) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(received))
	}
	if !received[1].Raining {
		t.Errorf("Expected second notification to be rain, got %+v", received[1])
	}
}

func TestBroadcasterLateSubscriberGetsCurrent(t *testing.T) {
	b := NewBroadcaster()
	b.Publish(Conditions{Snowing: true})

	var got Conditions
	calls := 0
	b.Subscribe(func(c Conditions) {
		got = c
		calls++
	})

	if calls != 1 || !got.Snowing {
		t.Errorf("Expected immediate delivery of current conditions, calls=%d got=%+v", calls, got)
	}
}

func TestBroadcasterCancel(t *testing.T) {
	b := NewBroadcaster()
	calls := 0
	cancel := b.Subscribe(func(Conditions) { calls++ })
	b.Publish(Conditions{Cloudy: true})
	cancel()
	b.Publish(Conditions{Raining: true})

	if calls != 1 {
		t.Errorf("Expected 1 call before cancel, got %d", calls)
	}
}

func TestSources(t *testing.T) {
	night := time.Date(2024, 1, 1, 23, 0, 0, 0, time.Local)
	day := time.Date(2024, 1, 1, 13, 0, 0, 0, time.Local)

	if !(Clock{}).Conditions(night).Night {
		t.Error("Clock should report night at 23:00")
	}
	if (Clock{}).Conditions(day).Night {
		t.Error("Clock should report day at 13:00")
	}

	forced := Forced{Fixed: Conditions{Snowing: true}}
	if got := forced.Conditions(day); !got.Snowing || got.Night {
		t.Errorf("Forced source returned %+v", got)
	}

	described := Described{Description: "Clear"}
	if got := described.Conditions(day); !got.Sunny {
		t.Errorf("Described source returned %+v", got)
	}

	b := NewBroadcaster()
	if !b.Poll(forced, day) {
		t.Error("Poll should publish the first observation")
	}
	if c, ok := b.Current(); !ok || !c.Snowing {
		t.Errorf("Current() = %+v, %t", c, ok)
	}
}
