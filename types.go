package authcache

import "encoding/json"

// Identity is the cached, trusted representation of an authenticated user,
// derived purely from verified token claims. Instances are immutable once
// constructed and never partially populated: every field comes from the claim
// set that produced the record.
//
//	Docs: docs/identity.md
type Identity struct {
	Subject string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// EncodeIdentity serializes an [Identity] into the JSON layout persisted in
// the backing store.
func EncodeIdentity(id *Identity) ([]byte, error) {
	return json.Marshal(id)
}

// DecodeIdentity deserializes a stored cache entry back into an [Identity].
// A decode failure means the entry is corrupt and must be treated as a miss.
func DecodeIdentity(data []byte) (*Identity, error) {
	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, err
	}
	return &id, nil
}
