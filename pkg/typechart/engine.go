package typechart

// AttackMultiplier multiplies the single-defender factors of attack against
// every defending type. The result does not depend on defender order.
func AttackMultiplier(c *Chart, attack Type, defenders ...Type) float64 {
	m := 1.0
	for _, d := range defenders {
		m *= c.Multiplier(attack, d)
	}
	return m
}

// Profile groups types by bucket. Within a bucket, types keep vocabulary
// order.
type Profile struct {
	Immune    []Type `json:"immune"`
	Quarter   []Type `json:"quarter"`
	Half      []Type `json:"half"`
	Neutral   []Type `json:"neutral"`
	Double    []Type `json:"double"`
	Quadruple []Type `json:"quadruple"`
}

func (p *Profile) add(b Bucket, t Type) {
	switch b {
	case BucketImmune:
		p.Immune = append(p.Immune, t)
	case BucketQuarter:
		p.Quarter = append(p.Quarter, t)
	case BucketHalf:
		p.Half = append(p.Half, t)
	case BucketDouble:
		p.Double = append(p.Double, t)
	case BucketQuadruple:
		p.Quadruple = append(p.Quadruple, t)
	default:
		p.Neutral = append(p.Neutral, t)
	}
}

// In returns the types of one bucket.
func (p Profile) In(b Bucket) []Type {
	switch b {
	case BucketImmune:
		return p.Immune
	case BucketQuarter:
		return p.Quarter
	case BucketHalf:
		return p.Half
	case BucketDouble:
		return p.Double
	case BucketQuadruple:
		return p.Quadruple
	default:
		return p.Neutral
	}
}

// DefenseProfile evaluates every attacking type of the chart against the
// defender set.
func DefenseProfile(c *Chart, defenders ...Type) Profile {
	var p Profile
	for _, attack := range c.Types() {
		p.add(BucketOf(AttackMultiplier(c, attack, defenders...)), attack)
	}
	return p
}

// AttackProfile evaluates one attacking type against every single
// defending type of the chart.
func AttackProfile(c *Chart, attack Type) Profile {
	var p Profile
	for _, defend := range c.Types() {
		p.add(BucketOf(c.Multiplier(attack, defend)), defend)
	}
	return p
}
