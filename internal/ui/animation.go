package ui

import (
	"time"

	"pou/internal/pet"
)

// AnimationType represents the type of reaction animation
type AnimationType int

const (
	AnimNone AnimationType = iota
	AnimFeed
	AnimSleep
	AnimClean
	AnimMedicine
)

// Animation holds the current animation state
type Animation struct {
	Type      AnimationType
	Frame     int
	StartTime time.Time
}

// AnimationFrames contains ASCII art frames for each animation type
var AnimationFrames = map[AnimationType][]string{
	AnimFeed: {
		`
   🍕
     \
      🟤
`,
		`

   🍕→🟤

`,
		`

     😋
   *nom*
`,
		`

     😸
   *munch*
`,
	},
	AnimSleep: {
		`
   🛏️ 🟤
`,
		`
     😪
      z
`,
		`
     😴
     z
      z
`,
		`
     😴
    z
     z
      z
`,
	},
	AnimClean: {
		`
  🧼       🟤
`,
		`
     🫧 🧼 🟤
`,
		`
      🫧🚿🫧
        😌
`,
		`
           ✨
          😸
           ✨
`,
	},
	AnimMedicine: {
		`
  💊       🤢
`,
		`
     💊    🤢
`,
		`
       💊→ 😐
`,
		`
           😺
           ❤️
`,
		`
           😸
        ✨ ❤️ ✨
`,
	},
}

// AnimationFrameDuration is how long each frame displays
const AnimationFrameDuration = 200 * time.Millisecond

// AnimationFor maps a creature reaction to its animation
func AnimationFor(r pet.Reaction) AnimationType {
	switch r {
	case pet.ReactFeed:
		return AnimFeed
	case pet.ReactSleep:
		return AnimSleep
	case pet.ReactClean:
		return AnimClean
	case pet.ReactMedicine:
		return AnimMedicine
	}
	return AnimNone
}

// GetAnimationFrame returns the current frame for an animation
func GetAnimationFrame(anim Animation) string {
	frames := AnimationFrames[anim.Type]
	if len(frames) == 0 {
		return ""
	}
	if anim.Frame >= len(frames) {
		return frames[len(frames)-1]
	}
	return frames[anim.Frame]
}

// IsAnimationComplete returns true if the animation has finished
func IsAnimationComplete(anim Animation) bool {
	frames := AnimationFrames[anim.Type]
	return anim.Frame >= len(frames)
}

// Animator plays creature reactions. Bubble Tea copies the model on every update,
// so the model keeps a pointer and the creature shares the same state.
type Animator struct {
	Current Animation
}

// React implements pet.Animator
func (a *Animator) React(r pet.Reaction) {
	t := AnimationFor(r)
	if t == AnimNone {
		return
	}
	a.Current = Animation{
		Type:      t,
		StartTime: pet.TimeNow(),
	}
}

// Playing reports whether an animation is on screen.
func (a *Animator) Playing() bool {
	return a.Current.Type != AnimNone
}

// Advance moves to the next frame of the animation started at started. Ticks of an
// older animation are dropped. It reports whether more frames remain.
func (a *Animator) Advance(started time.Time) bool {
	if a.Current.Type == AnimNone || !a.Current.StartTime.Equal(started) {
		return false
	}
	a.Current.Frame++
	if IsAnimationComplete(a.Current) {
		a.Current = Animation{}
		return false
	}
	return true
}
