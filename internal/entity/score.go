package entity

// ScoreTally counts finished matches per client. Each match increments
// exactly one of the three counters.
type ScoreTally struct {
	ClientID string `json:"client_id"`
	XWins    int    `json:"x_wins"`
	OWins    int    `json:"o_wins"`
	Draws    int    `json:"draws"`
}
