// Package memory implements the sequence memory minigame: each round appends one random
// symbol, reveals the whole sequence, then waits for the player to repeat it.
package memory

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"
)

var (
	// ErrSymbolOutOfRange is returned when a submitted symbol is not in the alphabet.
	ErrSymbolOutOfRange = errors.New("memory: symbol out of range")
	// ErrInvalidConfig is returned by New for unusable settings.
	ErrInvalidConfig = errors.New("memory: invalid config")
)

// Phase is the turn state of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRevealing
	PhasePlayerTurn
	PhaseEvaluating
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRevealing:
		return "revealing"
	case PhasePlayerTurn:
		return "player turn"
	case PhaseEvaluating:
		return "evaluating"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Outcome is the result of one submitted symbol.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeCorrect
	OutcomeComplete
	OutcomeWrong
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeComplete:
		return "complete"
	case OutcomeWrong:
		return "wrong"
	default:
		return "ignored"
	}
}

// Config holds the alphabet and the reveal pacing.
type Config struct {
	AlphabetSize     int
	RevealDuration   time.Duration // how long each symbol stays visible
	InterSymbolGap   time.Duration // pause after each symbol is hidden
	PostCorrectDelay time.Duration // input lock after a correct but unfinished answer
	LeadIn           time.Duration // pause before the first symbol of a round
	Tail             time.Duration // pause after the last gap before the turn opens
	CountdownSteps   int           // countdown before the first round; 0 disables it
	CountdownStep    time.Duration
	GameOverHold     time.Duration // stop the session this long after a mismatch; 0 holds until restarted
}

// DefaultConfig returns the stock pacing for a four-item alphabet.
func DefaultConfig() Config {
	return Config{
		AlphabetSize:     4,
		RevealDuration:   time.Second,
		InterSymbolGap:   time.Second,
		PostCorrectDelay: 2 * time.Second,
		LeadIn:           800 * time.Millisecond,
		Tail:             200 * time.Millisecond,
		CountdownSteps:   3,
		CountdownStep:    time.Second,
	}
}

// Validate reports whether cfg can drive a game.
func (c Config) Validate() error {
	if c.AlphabetSize < 1 {
		return fmt.Errorf("%w: alphabet size %d", ErrInvalidConfig, c.AlphabetSize)
	}
	if c.CountdownSteps < 0 {
		return fmt.Errorf("%w: countdown steps %d", ErrInvalidConfig, c.CountdownSteps)
	}
	for _, d := range []time.Duration{c.RevealDuration, c.InterSymbolGap, c.PostCorrectDelay, c.LeadIn, c.Tail, c.CountdownStep, c.GameOverHold} {
		if d < 0 {
			return fmt.Errorf("%w: negative duration %s", ErrInvalidConfig, d)
		}
	}
	return nil
}

// Source draws symbols. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

type stepKind int

const (
	stepCountdown stepKind = iota
	stepReveal
	stepConceal
	stepOpenTurn
	stepStop
)

// step runs once its delay, counted from the previous step, has elapsed
type step struct {
	after time.Duration
	kind  stepKind
	index int
	value int
}

// Game is one minigame session. It is driven from a single goroutine: the caller
// advances time with Advance and feeds input with SubmitInput.
type Game struct {
	cfg Config
	rnd Source

	sequence []int
	input    []int
	round    int
	phase    Phase
	active   bool

	// gen changes whenever the pending schedule is replaced, so work belonging to
	// a superseded round or session is never resumed
	gen      uint64
	schedule []step
	elapsed  time.Duration

	revealed  int
	countdown int

	nextID    int
	listeners map[int]Listener
	order     []int
}

// New creates an idle game. A nil src uses a time-seeded generator.
func New(cfg Config, src Source) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := &Game{
		cfg:       cfg,
		rnd:       src,
		listeners: make(map[int]Listener),
	}
	g.clear()
	return g, nil
}

// Config returns the game settings.
func (g *Game) Config() Config { return g.cfg }

// Start begins a fresh session from round 1, discarding any previous one.
func (g *Game) Start() {
	g.clear()
	g.active = true
	log.Printf("Memory game started")
	g.beginRound(true)
}

// Reset restarts the session. It behaves exactly like Start.
func (g *Game) Reset() {
	g.Start()
}

// Stop ends the session from any phase and clears it.
func (g *Game) Stop() {
	wasActive := g.active
	g.clear()
	g.gen++
	if wasActive {
		log.Printf("Memory game stopped")
		g.emit(Event{Kind: EventStopped})
	}
}

// BeginRound appends a symbol and starts revealing the sequence. It does nothing
// unless a session is running, not over, and the current round has no symbol yet,
// so the sequence never grows past the round number.
func (g *Game) BeginRound() bool {
	if !g.active || g.phase == PhaseGameOver || len(g.sequence) >= g.round {
		return false
	}
	g.beginRound(false)
	return true
}

func (g *Game) beginRound(first bool) {
	g.gen++
	g.input = g.input[:0]
	g.sequence = append(g.sequence, g.rnd.Intn(g.cfg.AlphabetSize))
	g.phase = PhaseRevealing
	g.revealed = -1
	g.countdown = -1
	g.schedule = g.buildSchedule(first)
	g.elapsed = 0

	log.Printf("Round %d: sequence = %v", g.round, g.sequence)
	gen := g.gen
	g.emit(Event{Kind: EventRoundStarted})
	if g.gen != gen {
		return
	}
	g.run()
}

func (g *Game) buildSchedule(first bool) []step {
	var steps []step
	if first && g.cfg.CountdownSteps > 0 {
		for v := g.cfg.CountdownSteps; v >= 0; v-- {
			after := g.cfg.CountdownStep
			if v == g.cfg.CountdownSteps {
				after = 0
			}
			steps = append(steps, step{after: after, kind: stepCountdown, value: v})
		}
		// clear the GO! marker once it has been shown for a full step
		steps = append(steps, step{after: g.cfg.CountdownStep, kind: stepCountdown, value: -1})
	}

	for i := range g.sequence {
		after := g.cfg.InterSymbolGap
		if i == 0 {
			after = g.cfg.LeadIn
		}
		steps = append(steps,
			step{after: after, kind: stepReveal, index: i},
			step{after: g.cfg.RevealDuration, kind: stepConceal, index: i},
		)
	}

	return append(steps, step{after: g.cfg.InterSymbolGap + g.cfg.Tail, kind: stepOpenTurn})
}

// Advance moves the session clock forward by dt and runs every step that came due.
func (g *Game) Advance(dt time.Duration) {
	if !g.active || len(g.schedule) == 0 || dt < 0 {
		return
	}
	g.elapsed += dt
	g.run()
}

func (g *Game) run() {
	gen := g.gen
	for len(g.schedule) > 0 && g.gen == gen {
		next := g.schedule[0]
		if g.elapsed < next.after {
			return
		}
		g.elapsed -= next.after
		g.schedule = g.schedule[1:]
		g.execute(next)
	}
	if g.gen == gen && len(g.schedule) == 0 {
		g.elapsed = 0
	}
}

func (g *Game) execute(s step) {
	switch s.kind {
	case stepCountdown:
		g.countdown = s.value
		if s.value >= 0 {
			g.emit(Event{Kind: EventCountdown, Value: s.value})
		}
	case stepReveal:
		g.revealed = s.index
		g.emit(Event{Kind: EventReveal, Index: s.index, Symbol: g.sequence[s.index]})
	case stepConceal:
		g.revealed = -1
		g.emit(Event{Kind: EventConceal, Index: s.index, Symbol: g.sequence[s.index]})
	case stepOpenTurn:
		g.phase = PhasePlayerTurn
		g.emit(Event{Kind: EventTurnOpened})
	case stepStop:
		g.Stop()
	}
}

// SubmitInput checks one symbol from the player. Input outside the player's turn is
// ignored; a symbol outside the alphabet is a caller error.
func (g *Game) SubmitInput(symbol int) (Outcome, error) {
	if symbol < 0 || symbol >= g.cfg.AlphabetSize {
		return OutcomeIgnored, fmt.Errorf("submit %d (alphabet %d): %w", symbol, g.cfg.AlphabetSize, ErrSymbolOutOfRange)
	}
	if !g.active || g.phase != PhasePlayerTurn {
		log.Printf("Not your turn yet, or game is over! (phase %s)", g.phase)
		return OutcomeIgnored, nil
	}

	g.input = append(g.input, symbol)
	pos := len(g.input) - 1
	expected := g.sequence[pos]

	if symbol != expected {
		g.phase = PhaseGameOver
		g.schedule = nil
		g.elapsed = 0
		g.revealed = -1
		g.gen++
		gen := g.gen
		log.Printf("Final score: %d rounds completed", g.Score())
		g.emit(Event{Kind: EventWrong, Index: pos, Symbol: symbol, Expected: expected})
		if g.gen == gen {
			g.emit(Event{Kind: EventGameOver, Score: g.Score()})
		}
		if g.gen == gen && g.cfg.GameOverHold > 0 {
			g.schedule = []step{{after: g.cfg.GameOverHold, kind: stepStop}}
		}
		return OutcomeWrong, nil
	}

	if len(g.input) == len(g.sequence) {
		completed := g.round
		g.round++
		// lock input until the next round is revealed
		g.phase = PhaseEvaluating
		gen := g.gen
		g.emit(Event{Kind: EventRoundComplete, Round: completed, Index: pos, Symbol: symbol})
		if g.gen == gen {
			g.beginRound(false)
		}
		return OutcomeComplete, nil
	}

	if g.cfg.PostCorrectDelay > 0 {
		g.phase = PhaseEvaluating
		g.schedule = []step{{after: g.cfg.PostCorrectDelay, kind: stepOpenTurn}}
		g.elapsed = 0
	}
	g.emit(Event{Kind: EventCorrect, Index: pos, Symbol: symbol})
	return OutcomeCorrect, nil
}

// Accepting reports whether delivered items belong to the game. It implements pet.Delivery.
func (g *Game) Accepting() bool { return g.active }

// Deliver submits symbol and drops the outcome, which subscribers see as events.
// It implements pet.Delivery.
func (g *Game) Deliver(symbol int) error {
	_, err := g.SubmitInput(symbol)
	return err
}

func (g *Game) clear() {
	g.sequence = nil
	g.input = nil
	g.round = 1
	g.phase = PhaseIdle
	g.active = false
	g.schedule = nil
	g.elapsed = 0
	g.revealed = -1
	g.countdown = -1
}

// Phase returns the turn state.
func (g *Game) Phase() Phase { return g.phase }

// Round returns the current round, starting at 1.
func (g *Game) Round() int { return g.round }

// Active reports whether a session is running (including a finished one not yet stopped).
func (g *Game) Active() bool { return g.active }

// IsGameOver reports whether the session ended with a mismatch.
func (g *Game) IsGameOver() bool { return g.phase == PhaseGameOver }

// IsPlayerTurn reports whether input is accepted right now.
func (g *Game) IsPlayerTurn() bool { return g.phase == PhasePlayerTurn }

// Score returns the number of fully completed rounds.
func (g *Game) Score() int { return g.round - 1 }

// Generation identifies the current schedule. Asynchronous presenters compare it to drop
// callbacks that belong to a superseded round or session.
func (g *Game) Generation() uint64 { return g.gen }

// Sequence returns a copy of the symbols to repeat.
func (g *Game) Sequence() []int { return append([]int(nil), g.sequence...) }

// PlayerInput returns a copy of the symbols submitted this round.
func (g *Game) PlayerInput() []int { return append([]int(nil), g.input...) }

// Revealed returns the symbol currently on display, if any.
func (g *Game) Revealed() (index, symbol int, ok bool) {
	if g.revealed < 0 || g.revealed >= len(g.sequence) {
		return -1, -1, false
	}
	return g.revealed, g.sequence[g.revealed], true
}

// Countdown returns the countdown value on display; 0 means "GO!".
func (g *Game) Countdown() (int, bool) {
	if g.countdown < 0 {
		return 0, false
	}
	return g.countdown, true
}
