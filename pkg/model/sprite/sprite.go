package sprite

// Sprite is an image URL as served by the upstream API. Missing images
// decode to the empty string.
type Sprite string

func (s Sprite) Empty() bool {
	return s == ""
}

// Or returns s unless it is empty.
func (s Sprite) Or(fallback Sprite) Sprite {
	if s.Empty() {
		return fallback
	}
	return s
}
