package tooltip

// Phase is the controller's visibility phase.
type Phase int

const (
	PhaseHidden Phase = iota
	PhasePendingShow
	PhaseVisible
	PhasePendingHide
	PhaseExiting
)

func (p Phase) String() string {
	switch p {
	case PhaseHidden:
		return "hidden"
	case PhasePendingShow:
		return "pending-show"
	case PhaseVisible:
		return "visible"
	case PhasePendingHide:
		return "pending-hide"
	case PhaseExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(s string) (Phase, bool) {
	for p := PhaseHidden; p <= PhaseExiting; p++ {
		if p.String() == s {
			return p, true
		}
	}
	return 0, false
}

// Mounted reports whether tooltip content belongs in the render tree.
func (p Phase) Mounted() bool { return p != PhaseHidden }

// Up reports whether the tooltip can be on screen: shown, or shown and
// counting down to hide.
func (p Phase) Up() bool { return p == PhaseVisible || p == PhasePendingHide }

// Stage is the animation lifecycle stage derived from the phase.
type Stage int

const (
	StageUnmounted Stage = iota
	StageMounted
	StageEntering
	StageShown
	StageExiting
)

func (s Stage) String() string {
	switch s {
	case StageUnmounted:
		return "unmounted"
	case StageMounted:
		return "mounted"
	case StageEntering:
		return "entering"
	case StageShown:
		return "shown"
	case StageExiting:
		return "exiting"
	default:
		return "unknown"
	}
}
