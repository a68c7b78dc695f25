package model

//go:generate enumer -type=Kind -trimprefix=Kind -transform=kebab -json

// Kind is one of the four browsable entity kinds. Its string form doubles as
// the upstream API path segment and the cache namespace.
type Kind int

const (
	KindPokemon Kind = iota
	KindMove
	KindAbility
	KindItem
)
