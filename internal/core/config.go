package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use it to size the viewport and to run deterministic simulations.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in cells (or pixels for the window frontend)
	ScreenH  int   // Screen height in cells
	CellW    int   // World pixels covered by one cell horizontally
	CellH    int   // World pixels covered by one cell vertically
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 lets the frontend pick one
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 30 ticks
// per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		CellW:    16,
		CellH:    32,
		TickRate: 30,
	}
}

// ViewportSize returns the visible world area in pixels.
func (c RuntimeConfig) ViewportSize() (float64, float64) {
	cw, ch := c.CellW, c.CellH
	if cw <= 0 {
		cw = 1
	}
	if ch <= 0 {
		ch = 1
	}
	return float64(c.ScreenW * cw), float64(c.ScreenH * ch)
}

// Dt returns the fixed simulation step in seconds.
func (c RuntimeConfig) Dt() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 30.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the run has ended (died or cleared)
	Won      bool // Whether the run ended by clearing the level
	Paused   bool // Whether the game is paused
}

// Event is something that happened during a tick that a frontend may want to
// react to, typically by playing a sound.
type Event int

const (
	EventJump Event = iota + 1
	EventLand
	EventShoot
	EventEnemyKilled
	EventPlayerDied
	EventPlayerFell
	EventLevelCleared
)

// String returns the event name; it doubles as the sound asset key.
func (e Event) String() string {
	switch e {
	case EventJump:
		return "jump"
	case EventLand:
		return "land"
	case EventShoot:
		return "shoot"
	case EventEnemyKilled:
		return "enemy_killed"
	case EventPlayerDied:
		return "player_died"
	case EventPlayerFell:
		return "player_fell"
	case EventLevelCleared:
		return "level_cleared"
	default:
		return "unknown"
	}
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the tick produced the given event.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeDied    Outcome = "died"
	OutcomeFell    Outcome = "fell"
	OutcomeCleared Outcome = "cleared"
	OutcomeQuit    Outcome = "quit"
)

// RunSummary describes a run for the score store.
type RunSummary struct {
	LevelID string
	Score   int
	Kills   int
	Ticks   int
	Outcome Outcome
}
