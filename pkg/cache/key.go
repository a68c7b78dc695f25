package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Key identifies a cached value: a namespace followed by parameters, e.g.
// Key{"pokemon", 25}.
type Key []any

func NewKey(namespace string, params ...any) Key {
	return append(Key{namespace}, params...)
}

func (k Key) Namespace() string {
	if len(k) == 0 {
		return ""
	}
	s, _ := k[0].(string)
	return s
}

// String is the canonical JSON form, e.g. `["pokemon",25]`.
func (k Key) String() string {
	b, err := json.Marshal([]any(k))
	if err != nil {
		return fmt.Sprint([]any(k))
	}
	return string(b)
}

// Hash is a fixed-length form of String for external stores.
func (k Key) Hash() string {
	sum := sha256.Sum256([]byte(k.String()))
	return hex.EncodeToString(sum[:])
}

// Tags are the invalidation handles of a key: its namespace and
// "<namespace>-<param>" for the first parameter.
func (k Key) Tags() []string {
	ns := k.Namespace()
	if ns == "" {
		return nil
	}
	tags := []string{ns}
	if len(k) > 1 {
		tags = append(tags, fmt.Sprintf("%s-%v", ns, k[1]))
	}
	return tags
}
