package model

type LearnMethodName string

const (
	LevelUp LearnMethodName = "level-up"
	Egg     LearnMethodName = "egg"
	Machine LearnMethodName = "machine"
	Tutor   LearnMethodName = "tutor"
)

var learnMethodOrder = map[LearnMethodName]int{
	LevelUp: 0,
	Machine: 1,
	Egg:     2,
	Tutor:   3,
}

// LearnMethodRank orders learnsets: level-up first, unknown methods last.
func LearnMethodRank(name LearnMethodName) int {
	if r, ok := learnMethodOrder[name]; ok {
		return r
	}
	return len(learnMethodOrder)
}
