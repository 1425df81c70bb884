package ingest

// Phase is a stage of a batch run
type Phase int

// batch run phases, in order
const (
	PhaseIdle Phase = iota
	PhaseFetching
	PhaseExtracting
	PhaseDeduplicating
	PhasePersisting
	PhaseReporting
)

var phaseNames = map[Phase]string{
	PhaseIdle:          "idle",
	PhaseFetching:      "fetching",
	PhaseExtracting:    "extracting",
	PhaseDeduplicating: "deduplicating",
	PhasePersisting:    "persisting",
	PhaseReporting:     "reporting",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// MarshalText renders the phase name in JSON
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
