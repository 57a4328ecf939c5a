package board

type State uint8

const (
	// StateUnknown is when game state is unknown.
	StateUnknown State = iota

	// StateRunning is when game is on progress.
	StateRunning

	// StateWhiteWins is when Black has no pieces or no legal move on its turn.
	StateWhiteWins

	// StateBlackWins is when White has no pieces or no legal move on its turn.
	StateBlackWins
)

func (s State) IsRunning() bool {
	return s == StateRunning
}

func (s State) Winner() Side {
	switch s {
	case StateWhiteWins:
		return SideWhite
	case StateBlackWins:
		return SideBlack
	default:
		return SideUnknown
	}
}

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "StateUnknown"
	case StateRunning:
		return "StateRunning"
	case StateWhiteWins:
		return "StateWhiteWins"
	case StateBlackWins:
		return "StateBlackWins"
	default:
		return ""
	}
}
