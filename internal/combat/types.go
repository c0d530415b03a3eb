package combat

// Event is one entry of a recorded trial trace.
type Event struct {
	Phase   int            `json:"phase"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// MoraleFloor is the lowest morale a unit can fall to.
const MoraleFloor = 0.2

type Unit struct {
	Name      string  `json:"name"`
	Strength  float64 `json:"strength"`
	Morale    float64 `json:"morale"`
	Firepower float64 `json:"firepower"`
}

// TrialResult is the final strength of each side after one trial.
type TrialResult struct {
	FinalA float64 `json:"final_a"`
	FinalB float64 `json:"final_b"`
}

// Advantage is side A's remaining strength minus side B's.
func (r TrialResult) Advantage() float64 { return r.FinalA - r.FinalB }
