package config

import (
	"encoding/json"
	"strings"
)

// Secret is a credential string that masks itself everywhere it could be
// printed. Only Reveal returns the cleartext.
type Secret string

func (s Secret) String() string {
	return strings.Repeat("*", len(s))
}

func (s Secret) GoString() string {
	return "'" + s.String() + "'"
}

// MarshalJSON masks the secret, so dumping a settings struct never leaks
// the password.
func (s Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Reveal returns the cleartext for handing to the RPC layer.
func (s Secret) Reveal() string {
	return string(s)
}

// IsSet reports whether the secret holds a value.
func (s Secret) IsSet() bool {
	return len(s) > 0
}
