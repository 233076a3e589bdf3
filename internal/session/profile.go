// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/taibuivan/campus/internal/platform/sec"
)

// Profile is the cached snapshot of the signed-in user.
//
// It exists for display only. Authorization decisions read the token claims
// through [Guard.Role] instead.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`

	// Extras keeps role-specific fields (student number, university, ...) verbatim.
	Extras map[string]json.RawMessage `json:"-"`
}

// knownProfileFields are consumed by the typed fields above.
var knownProfileFields = map[string]bool{
	"id": true, "_id": true, "userId": true, "name": true, "email": true, "role": true,
}

// UnmarshalJSON accepts the user object as returned by the backend, including
// numeric ids and "_id"/"userId" spellings.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for _, field := range []string{"id", "_id", "userId"} {
		value, ok := raw[field]
		if !ok || p.ID != "" {
			continue
		}
		var id sec.FlexibleID
		if err := json.Unmarshal(value, &id); err != nil {
			return fmt.Errorf("profile %s: %w", field, err)
		}
		p.ID = string(id)
	}

	for field, target := range map[string]*string{"name": &p.Name, "email": &p.Email, "role": &p.Role} {
		value, ok := raw[field]
		if !ok || bytes.Equal(value, []byte("null")) {
			continue
		}
		if err := json.Unmarshal(value, target); err != nil {
			return fmt.Errorf("profile %s: %w", field, err)
		}
	}

	for field, value := range raw {
		if knownProfileFields[field] {
			continue
		}
		if p.Extras == nil {
			p.Extras = make(map[string]json.RawMessage)
		}
		p.Extras[field] = value
	}
	return nil
}

// MarshalJSON flattens Extras back next to the typed fields.
func (p Profile) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Extras)+4)
	for field, value := range p.Extras {
		out[field] = value
	}
	out["id"] = p.ID
	out["name"] = p.Name
	out["email"] = p.Email
	out["role"] = p.Role
	return json.Marshal(out)
}

// ProfileFromClaims builds a minimal profile when the backend returned none.
func ProfileFromClaims(claims *sec.Claims) Profile {
	return Profile{
		ID:    claims.SubjectID(),
		Email: claims.Email,
		Role:  string(claims.Role()),
	}
}
