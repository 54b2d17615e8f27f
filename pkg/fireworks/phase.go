package fireworks

// Phase is the lifecycle stage of a Firework. Transitions only move forward.
type Phase int

const (
	PhaseLaunch Phase = iota
	PhaseExplosion
	PhaseSecondary
	PhaseDecay
	PhaseComplete
)

var phaseNames = [...]string{
	PhaseLaunch:    "launch",
	PhaseExplosion: "explosion",
	PhaseSecondary: "secondary",
	PhaseDecay:     "decay",
	PhaseComplete:  "complete",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}
