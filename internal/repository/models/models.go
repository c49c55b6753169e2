package models

import "time"

// User kinds.
const (
	UserKindAdmin  = "admin"
	UserKindSchool = "school"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	Kind         string    `json:"kind"`
	CreatedAt    time.Time `json:"created_at"` // UTC
}

type School struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	INEPCode  string    `json:"inep_code,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// Result is one evaluation score of a school. Score is nil when it was never filled in.
type Result struct {
	ID         string    `json:"id"`
	SchoolID   string    `json:"school_id"`
	Assessment string    `json:"assessment"`
	Subject    string    `json:"subject"`
	Grade      string    `json:"grade"`
	Year       int       `json:"year"`
	Score      *float64  `json:"score"`
	CreatedAt  time.Time `json:"created_at"` // UTC
}

// ResultWithSchool is a Result joined with the name of its school.
type ResultWithSchool struct {
	Result
	SchoolName string `json:"school_name"`
}

type ResultFilter struct {
	SchoolID string
}
