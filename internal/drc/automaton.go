package drc

// Polarity is the kind of run the automaton is currently in.
type Polarity uint8

const (
	Gap Polarity = iota
	Feature
)

func (p Polarity) String() string {
	switch p {
	case Gap:
		return "gap"
	case Feature:
		return "feature"
	default:
		return "unknown"
	}
}

// Action is what a single Step did.
type Action uint8

const (
	// Extend continues the current run with a matching cell.
	Extend Action = iota
	// Open starts a feature after a long enough gap.
	Open
	// Close ends a feature that reached the minimum width.
	Close
	// Heal keeps a too-short feature open over a background cell.
	Heal
	// Suppress keeps a too-short gap open over a foreground cell.
	Suppress
)

func (a Action) String() string {
	switch a {
	case Extend:
		return "extend"
	case Open:
		return "open"
	case Close:
		return "close"
	case Heal:
		return "heal"
	case Suppress:
		return "suppress"
	default:
		return "unknown"
	}
}

// Segment is an accepted feature: the half-open scan interval [Start, End)
// of stripe Stripe.
type Segment struct {
	Stripe int
	Start  int
	End    int
}

// Len returns the segment length in cells.
func (s Segment) Len() int { return s.End - s.Start }

// State is the automaton for one stripe. Start is only meaningful while
// Polarity is Feature.
type State struct {
	Stripe   int
	Polarity Polarity
	Counter  int // cells since the last transition
	Start    int

	width, gap int
}

// NewState seeds a stripe whose first cell is first.
func NewState(stripe int, first bool, rules Rules) State {
	s := State{
		Stripe:  stripe,
		Counter: rules.Bias,
		width:   rules.WidthCells(),
		gap:     rules.GapCells(),
	}
	if first {
		s.Polarity = Feature
		s.Start = 0
	}
	return s
}

// Step feeds the observed cell v at scan index j. It returns what the
// automaton did and, for Close, the accepted segment.
func (s *State) Step(j int, v bool) (Action, Segment) {
	switch {
	case s.Polarity == Feature && v:
		s.Counter++
		return Extend, Segment{}

	case s.Polarity == Feature:
		if s.Counter >= s.width {
			seg := Segment{Stripe: s.Stripe, Start: s.Start, End: j}
			s.Polarity = Gap
			s.Counter = 0
			return Close, seg
		}
		s.Counter++
		return Heal, Segment{}

	case !v:
		s.Counter++
		return Extend, Segment{}

	default:
		if s.Counter >= s.gap {
			s.Polarity = Feature
			s.Start = j
			s.Counter = 0
			return Open, Segment{}
		}
		s.Counter++
		return Suppress, Segment{}
	}
}

// Rendering reports whether the cell just stepped over is drawn as
// foreground. Healed cells are foreground and suppressed cells are not, so
// this is simply whether a feature is open.
func (s *State) Rendering() bool {
	return s.Polarity == Feature
}
