package domain

import "time"

// Registration ties a user to a programme; its answers live in Response rows.
type Registration struct {
	RegistrationID string    `json:"id" dynamodbav:"registration_id"`
	UserID         string    `json:"user_id" dynamodbav:"user_id"`
	ProgrammeID    string    `json:"programme_id" dynamodbav:"programme_id"`
	CreatedAt      time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Response is one answer to one form field within a registration.
type Response struct {
	ResponseID     string    `json:"id" dynamodbav:"response_id"`
	RegistrationID string    `json:"registration_id" dynamodbav:"registration_id"`
	FieldID        string    `json:"form_field_id" dynamodbav:"field_id"`
	Answer         string    `json:"answer" dynamodbav:"answer"`
	CreatedAt      time.Time `json:"created_at" dynamodbav:"created_at"`
}

type AnswerInput struct {
	FieldID string `json:"form_field_id" validate:"required"`
	Answer  string `json:"answer" validate:"required"`
}

// CreateResponseRequest submits a full registration: who, which programme,
// and the answers to the programme's form fields.
type CreateResponseRequest struct {
	UserID      string        `json:"user_id" validate:"required"`
	ProgrammeID string        `json:"programme_id" validate:"required"`
	Answers     []AnswerInput `json:"answers" validate:"required,min=1,dive"`
}
