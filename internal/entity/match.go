package entity

const (
	StateInProgress = "in_progress"
	StateWon        = "won"
	StateDrawn      = "drawn"

	MarkX   = "X"
	MarkO   = "O"
	MarkTie = "-"

	EmptyCell = ""
)

const (
	ModeTwoPlayer  = "two_player"
	ModeVsComputer = "vs_computer"
)

// WinLines - the 8 canonical winning triples: rows, then columns, then diagonals.
// Win detection scans them in exactly this order.
var WinLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Match is one game session from empty board to a terminal outcome.
type Match struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id,omitempty"`
	Board       [9]string `json:"board"`
	Turn        string    `json:"player_turn"`
	State       string    `json:"state"`
	Winner      string    `json:"winner,omitempty"`
	WinLine     []int     `json:"win_line,omitempty"`
	Mode        string    `json:"mode"`
	TurnsPlayed int       `json:"turns_played"`
}

func NewMatch(id, mode string) *Match {
	return &Match{
		ID:    id,
		Board: [9]string{},
		Turn:  MarkX,
		State: StateInProgress,
		Mode:  mode,
	}
}

// Reset - returns the match to its initial state: empty board, X to move,
// in progress. Always succeeds and is idempotent.
func (that *Match) Reset() {
	that.Board = [9]string{}
	that.Turn = MarkX
	that.State = StateInProgress
	that.Winner = ""
	that.WinLine = nil
	that.TurnsPlayed = 0
}

// Snapshot - returns a read-only copy of the match for presentation layers.
// Mutating the copy never touches the live session.
func (that *Match) Snapshot() Match {
	view := *that
	if that.WinLine != nil {
		view.WinLine = append([]int(nil), that.WinLine...)
	}
	return view
}

func (that *Match) IsInProgress() bool {
	return that.State == StateInProgress
}

func (that *Match) IsWon() bool {
	return that.State == StateWon
}

func (that *Match) IsDrawn() bool {
	return that.State == StateDrawn
}

// IsFinished - reports whether the match is terminal; no further moves are
// accepted until Reset.
func (that *Match) IsFinished() bool {
	return that.IsWon() || that.IsDrawn()
}

func (that *Match) IsVsComputer() bool {
	return that.Mode == ModeVsComputer
}

// ToggleMark - returns the other player's mark.
func ToggleMark(mark string) string {
	if mark == MarkX {
		return MarkO
	}
	return MarkX
}

// ValidMode - reports whether mode is one of the supported game modes.
func ValidMode(mode string) bool {
	return mode == ModeTwoPlayer || mode == ModeVsComputer
}
