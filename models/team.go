package models

// Team is immutable reference data for a tournament entrant.
type Team struct {
	ID    int    `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Code  string `json:"code" db:"code"`   // FIFA trigram, e.g. "BRA"
	Group string `json:"group" db:"group"` // single letter, empty for extra-group formats

	FlagKey *string `json:"-" db:"flag_key"`
	FlagURL *string `json:"flag_url,omitempty" db:"flag_url"`
}
