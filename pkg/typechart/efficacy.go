package typechart

//go:generate enumer -type=Bucket -trimprefix=Bucket -transform=kebab -json

// Bucket is a coarse damage class used by matchup tables and quiz answers.
type Bucket int

const (
	BucketImmune Bucket = iota
	BucketQuarter
	BucketHalf
	BucketNeutral
	BucketDouble
	BucketQuadruple
)

// EfficacyLevel is a damage multiplier in percent.
type EfficacyLevel int

const (
	DoubleSuperEffective   EfficacyLevel = 400
	SuperEffective         EfficacyLevel = 200
	NormalEffective        EfficacyLevel = 100
	NotVeryEffective       EfficacyLevel = 50
	DoubleNotVeryEffective EfficacyLevel = 25
	Immune                 EfficacyLevel = 0
)

var bucketLevels = [...]EfficacyLevel{
	BucketImmune:    Immune,
	BucketQuarter:   DoubleNotVeryEffective,
	BucketHalf:      NotVeryEffective,
	BucketNeutral:   NormalEffective,
	BucketDouble:    SuperEffective,
	BucketQuadruple: DoubleSuperEffective,
}

// BucketOf classifies a multiplier at the thresholds 0, ≤0.25, ≤0.5, ≥4, ≥2;
// everything else is neutral.
func BucketOf(multiplier float64) Bucket {
	switch {
	case multiplier == 0:
		return BucketImmune
	case multiplier <= 0.25:
		return BucketQuarter
	case multiplier <= 0.5:
		return BucketHalf
	case multiplier >= 4:
		return BucketQuadruple
	case multiplier >= 2:
		return BucketDouble
	default:
		return BucketNeutral
	}
}

func (b Bucket) Level() EfficacyLevel {
	if !b.IsABucket() {
		return NormalEffective
	}
	return bucketLevels[b]
}

func (b Bucket) Multiplier() float64 {
	return float64(b.Level()) / 100
}

// Label renders the bucket the way matchup tables show it ("0.25x").
func (b Bucket) Label() string {
	switch b {
	case BucketImmune:
		return "0x"
	case BucketQuarter:
		return "0.25x"
	case BucketHalf:
		return "0.5x"
	case BucketDouble:
		return "2x"
	case BucketQuadruple:
		return "4x"
	default:
		return "1x"
	}
}
