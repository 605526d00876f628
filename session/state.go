package session

// State of a punch-and-verify session.
type State int

//go:generate go tool stringer -type=State
const (
	Idle           = State(0) // Nothing punched yet.
	LeaderPunched  = State(1) // Source encoded, leader punched.
	PayloadPunched = State(2) // Encoded tape punched.
	TrailerPunched = State(3) // Trailer punched.
	AwaitingReload = State(4) // Operator has mounted the tape in the reader.
	Verifying      = State(5) // Tape read back and trimmed.
	Done           = State(6) // Tape verified.
	Failed         = State(7) // Session aborted.
)
