package quiz

//go:generate enumer -type=State -trimprefix=State -transform=kebab -json

// State is the position of a session in its question cycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateAnswered
)
