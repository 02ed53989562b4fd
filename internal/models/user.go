// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures shared by the stores, the
// resource API client and the HTTP handlers.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CredState describes what is known about a user's GitHub access token.
type CredState string

const (
	CredStateUnknown CredState = ""        // not checked, or the check failed
	CredStateMissing CredState = "missing" // no token stored
	CredStateValid   CredState = "valid"
	CredStateInvalid CredState = "invalid" // rejected by GitHub or missing scope
)

// User is the account record served by the resource API. Creds is not part
// of the payload; it is filled in after the token has been checked.
type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	GitHubUsername    string    `json:"github_username"`
	GitHubAccessToken string    `json:"github_access_token"`
	Creds             CredState `json:"-"`
}

// UnmarshalJSON accepts the id either as a JSON number or as a string.
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	aux := struct {
		*plain
		ID json.RawMessage `json:"id"`
	}{plain: (*plain)(u)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	id, err := decodeID(aux.ID)
	if err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	u.ID = id
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

// CredsPresent reports whether the user has stored a GitHub token.
func (u *User) CredsPresent() bool {
	return u.GitHubAccessToken != ""
}

// CredsValid reports whether the stored token was accepted by GitHub with
// the required scope.
func (u *User) CredsValid() bool {
	return u.Creds == CredStateValid
}

// CredsInvalid reports whether the stored token was rejected. A user who
// never stored a token is neither valid nor invalid.
func (u *User) CredsInvalid() bool {
	return u.Creds == CredStateInvalid
}
