package ui

import (
	"strings"
	"testing"
	"time"

	"pou/internal/pet"
)

func TestAnimationTypes(t *testing.T) {
	tests := []struct {
		name     string
		reaction pet.Reaction
		want     AnimationType
	}{
		{"Feed animation", pet.ReactFeed, AnimFeed},
		{"Sleep animation", pet.ReactSleep, AnimSleep},
		{"Clean animation", pet.ReactClean, AnimClean},
		{"Medicine animation", pet.ReactMedicine, AnimMedicine},
		{"No reaction", pet.ReactNone, AnimNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnimationFor(tt.reaction)
			if got != tt.want {
				t.Fatalf("AnimationFor(%d) = %d, want %d", tt.reaction, got, tt.want)
			}
			if got != AnimNone && len(AnimationFrames[got]) < 3 {
				t.Errorf("Expected at least 3 frames for %d, got %d", got, len(AnimationFrames[got]))
			}
		})
	}
}

func TestGetAnimationFrame(t *testing.T) {
	anim := Animation{
		Type:      AnimFeed,
		Frame:     0,
		StartTime: time.Now(),
	}

	if frame := GetAnimationFrame(anim); frame == "" {
		t.Error("Expected non-empty frame for AnimFeed at frame 0")
	}

	// Test frame beyond total
	anim.Frame = 100
	if frame := GetAnimationFrame(anim); frame == "" {
		t.Error("Expected last frame for out-of-bounds frame index")
	}

	if frame := GetAnimationFrame(Animation{}); frame != "" {
		t.Errorf("Expected no frame for AnimNone, got %q", frame)
	}
}

func TestIsAnimationComplete(t *testing.T) {
	frames := len(AnimationFrames[AnimClean])
	tests := []struct {
		name     string
		frame    int
		expected bool
	}{
		{"Animation at start is not complete", 0, false},
		{"Animation at last frame is not complete", frames - 1, false},
		{"Animation past last frame is complete", frames, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anim := Animation{Type: AnimClean, Frame: tt.frame}
			if got := IsAnimationComplete(anim); got != tt.expected {
				t.Errorf("IsAnimationComplete() = %t, want %t", got, tt.expected)
			}
		})
	}
}

func TestAnimatorDropsStaleTicks(t *testing.T) {
	original := pet.TimeNow
	t.Cleanup(func() { pet.TimeNow = original })

	first := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	pet.TimeNow = func() time.Time { return first }

	a := &Animator{}
	a.React(pet.ReactFeed)
	if !a.Playing() {
		t.Fatal("React should start an animation")
	}

	// a second reaction replaces the first
	second := first.Add(time.Second)
	pet.TimeNow = func() time.Time { return second }
	a.React(pet.ReactSleep)

	if a.Advance(first) {
		t.Error("Tick of the replaced animation should be dropped")
	}
	if a.Current.Frame != 0 || a.Current.Type != AnimSleep {
		t.Errorf("Stale tick changed the animation: %+v", a.Current)
	}

	for i := 0; i < len(AnimationFrames[AnimSleep])-1; i++ {
		if !a.Advance(second) {
			t.Fatalf("Animation ended early at frame %d", i)
		}
	}
	if a.Advance(second) || a.Playing() {
		t.Error("Animation should end after its last frame")
	}
}

func TestFramesDoNotShowFixedAmounts(t *testing.T) {
	// item amounts are configurable, so frames must not print a number
	for typ, frames := range AnimationFrames {
		for i, frame := range frames {
			if strings.ContainsAny(frame, "0123456789") {
				t.Errorf("Frame %d of animation %d shows a number: %q", i, typ, frame)
			}
		}
	}
}
