package models

import "time"

type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	FavoriteTeam string    `json:"favorite_team,omitempty" db:"favorite_team"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
