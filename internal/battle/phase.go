package battle

// Phase represents where the battle is in its turn cycle.
type Phase int

const (
	// PhaseSetup - units are being placed, no turn planned yet
	PhaseSetup Phase = iota
	// PhasePlanning - plans are being declared and previewed
	PhasePlanning
	// PhaseResolving - the committed queue is executing
	PhaseResolving
	// PhaseFinished - one side has no units left standing
	PhaseFinished
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhasePlanning:
		return "planning"
	case PhaseResolving:
		return "resolving"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Outcome is the result of the battle so far.
type Outcome int

const (
	OutcomeOngoing Outcome = iota
	OutcomeLeftWins
	OutcomeRightWins
	// OutcomeDraw - both sides fell on the same turn
	OutcomeDraw
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeOngoing:
		return "ongoing"
	case OutcomeLeftWins:
		return "left_wins"
	case OutcomeRightWins:
		return "right_wins"
	case OutcomeDraw:
		return "draw"
	default:
		return "unknown"
	}
}
