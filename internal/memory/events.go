package memory

// EventKind identifies a game notification.
type EventKind int

const (
	EventCountdown EventKind = iota
	EventRoundStarted
	EventReveal
	EventConceal
	EventTurnOpened
	EventCorrect
	EventRoundComplete
	EventWrong
	EventGameOver
	EventStopped
)

var eventNames = map[EventKind]string{
	EventCountdown:     "countdown",
	EventRoundStarted:  "round started",
	EventReveal:        "reveal",
	EventConceal:       "conceal",
	EventTurnOpened:    "turn opened",
	EventCorrect:       "correct",
	EventRoundComplete: "round complete",
	EventWrong:         "wrong",
	EventGameOver:      "game over",
	EventStopped:       "stopped",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is emitted synchronously from the call that caused it.
type Event struct {
	Kind       EventKind
	Generation uint64
	Round      int
	Index      int // position in the sequence, for reveal and input events
	Symbol     int
	Expected   int // the symbol that was due, for EventWrong
	Value      int // countdown value; 0 means GO!
	Score      int // final score, for EventGameOver
}

// Listener receives game events.
type Listener func(Event)

// Subscribe registers l and returns a function that removes it. Listeners may call
// back into the game; a call that supersedes the current round stops the rest of
// the interrupted step.
func (g *Game) Subscribe(l Listener) (cancel func()) {
	id := g.nextID
	g.nextID++
	g.listeners[id] = l
	g.order = append(g.order, id)

	return func() {
		delete(g.listeners, id)
		for i, v := range g.order {
			if v == id {
				g.order = append(g.order[:i], g.order[i+1:]...)
				break
			}
		}
	}
}

func (g *Game) emit(e Event) {
	e.Generation = g.gen
	if e.Round == 0 {
		e.Round = g.round
	}
	ids := append([]int(nil), g.order...)
	for _, id := range ids {
		if l, ok := g.listeners[id]; ok {
			l(e)
		}
	}
}
