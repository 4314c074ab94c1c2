package domain

import "time"

// Languages a respondent can pick. Values are stored verbatim; "Otro"
// is the catch-all option rendered by the form.
var FavoriteLanguages = []string{"JavaScript", "Python", "Java", "C#", "Otro"}

type Response struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	Motivation       *string   `json:"motivation,omitempty"`
	FavoriteLanguage string    `json:"favorite_language"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

// LanguageStat is a derived aggregate, never persisted.
type LanguageStat struct {
	Language string `json:"language"`
	Count    int64  `json:"count"`
}
