// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Type is an entry in the catalog of selectable template types.
type Type struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
