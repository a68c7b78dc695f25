package cache

//go:generate enumer -type=Strategy -trimprefix=Strategy -transform=kebab -json

// Strategy selects the tiers a namespace is cached in.
type Strategy int

const (
	StrategyServer Strategy = iota
	StrategyClient
	StrategyBoth
)

func (s Strategy) server() bool {
	return s == StrategyServer || s == StrategyBoth
}

func (s Strategy) client() bool {
	return s == StrategyClient || s == StrategyBoth
}
