package models

import "time"

type School struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	City      *string   `json:"city,omitempty" db:"city"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	ShieldKey *string `json:"-" db:"shield_key"`
	ShieldURL *string `json:"shield_url,omitempty" db:"-"`
}
