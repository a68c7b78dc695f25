package typechart

// Type is a creature type identifier as used by the upstream API.
type Type string

const (
	Normal   Type = "normal"
	Fighting Type = "fighting"
	Flying   Type = "flying"
	Poison   Type = "poison"
	Ground   Type = "ground"
	Rock     Type = "rock"
	Bug      Type = "bug"
	Ghost    Type = "ghost"
	Steel    Type = "steel"
	Fire     Type = "fire"
	Water    Type = "water"
	Grass    Type = "grass"
	Electric Type = "electric"
	Psychic  Type = "psychic"
	Ice      Type = "ice"
	Dragon   Type = "dragon"
	Dark     Type = "dark"
	Fairy    Type = "fairy"
)

// Types is the fixed vocabulary in upstream ID order (normal = 1).
var Types = []Type{
	Normal, Fighting, Flying, Poison, Ground, Rock, Bug, Ghost, Steel,
	Fire, Water, Grass, Electric, Psychic, Ice, Dragon, Dark, Fairy,
}

const numTypes = 18

var typeIndex = func() map[Type]int {
	m := make(map[Type]int, numTypes)
	for i, t := range Types {
		m[t] = i
	}
	return m
}()

func (t Type) Valid() bool {
	_, ok := typeIndex[t]
	return ok
}

// ID is the upstream numeric ID of the type, or 0 for unknown types.
func (t Type) ID() int {
	i, ok := typeIndex[t]
	if !ok {
		return 0
	}
	return i + 1
}

// TypeByID is the inverse of Type.ID.
func TypeByID(id int) (Type, bool) {
	if id < 1 || id > numTypes {
		return "", false
	}
	return Types[id-1], true
}
