package domain

import "github.com/google/uuid"

type User struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Username      string    `db:"username" json:"username"`
	Alias         string    `db:"alias" json:"alias,omitempty"`
	Enabled       bool      `db:"enabled" json:"enabled"`
	SystemAccount bool      `db:"system_account" json:"system_account"`
}

// DisplayName возвращает alias, если он задан, иначе username.
func (u User) DisplayName() string {
	if u.Alias != "" {
		return u.Alias
	}
	return u.Username
}

type Team struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

type Activity struct {
	ID      uuid.UUID `db:"id" json:"id"`
	Name    string    `db:"name" json:"name"`
	Color   string    `db:"color" json:"color,omitempty"`
	Visible bool      `db:"visible" json:"visible"`
}

// UserQuery фильтр для выборки пользователей отчёта.
type UserQuery struct {
	IncludeSystemAccounts bool
	TeamIDs               []uuid.UUID
}
