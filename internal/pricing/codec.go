// WHY: the fingerprint is the whole point of this system — replay is
// only a meaningful equality check if the same logical state always
// produces the same bytes, independent of map iteration order, field
// insertion order, or whether state_hash happens to be populated.
package pricing

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// canonicalState is the hashed view of RulesState: identical fields,
// minus StateHash. encoding/json emits struct fields in declaration
// order but sorts map keys, so CanonicalBytes re-encodes this struct
// through a generic map form to get sorted keys at every depth.
type canonicalState struct {
	Version int                  `json:"version"`
	Items   map[string]ItemState `json:"items"`
}

// CanonicalBytes returns the byte-exact canonical serialization of s,
// with state_hash excluded, minimal separators, sorted keys at every
// nesting level, UTF-8 encoded.
func CanonicalBytes(s *RulesState) ([]byte, error) {
	cs := canonicalState{Version: s.Version, Items: s.Items}
	if cs.Items == nil {
		cs.Items = map[string]ItemState{}
	}
	raw, err := json.Marshal(cs)
	if err != nil {
		return nil, err
	}
	// Decoding into a generic value turns every object into a map, and
	// re-encoding sorts its keys; UseNumber keeps integers exact.
	var generic any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}

// Fingerprint returns the lowercase hex SHA-256 of s's canonical form.
func Fingerprint(s *RulesState) (string, error) {
	b, err := CanonicalBytes(s)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
