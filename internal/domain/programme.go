package domain

import "time"

// Programme is a registration programme participants sign up for.
type Programme struct {
	ProgrammeID    string    `json:"id" dynamodbav:"programme_id"`
	Name           string    `json:"name" dynamodbav:"name"`
	Description    string    `json:"description" dynamodbav:"description"`
	Objectives     []string  `json:"objectives" dynamodbav:"objectives"`
	TargetAudience []string  `json:"target_audience" dynamodbav:"target_audience"`
	StartDate      string    `json:"start_date" dynamodbav:"start_date"` // YYYY-MM-DD
	EndDate        string    `json:"end_date" dynamodbav:"end_date"`     // YYYY-MM-DD
	IsActive       bool      `json:"is_active" dynamodbav:"is_active"`
	CreatedAt      time.Time `json:"created_at" dynamodbav:"created_at"`
}

type CreateProgrammeRequest struct {
	Name           string   `json:"name" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	Objectives     []string `json:"objectives"`
	TargetAudience []string `json:"target_audience"`
	StartDate      string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	IsActive       bool     `json:"is_active"`
}

type UpdateProgrammeRequest struct {
	Name           *string   `json:"name"`
	Description    *string   `json:"description"`
	Objectives     *[]string `json:"objectives"`
	TargetAudience *[]string `json:"target_audience"`
	StartDate      *string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate        *string   `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	IsActive       *bool     `json:"is_active"`
}
