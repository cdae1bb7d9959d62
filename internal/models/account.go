package models

import "time"

// Account is a credential record owned by the local auth provider. Supabase
// deployments keep these in auth.users instead.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
