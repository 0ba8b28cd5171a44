package domain

import "time"

// FormField is one dynamic registration form field attached to a programme.
type FormField struct {
	FieldID     string    `json:"id" dynamodbav:"field_id"`
	ProgrammeID string    `json:"programme_id" dynamodbav:"programme_id"`
	Label       string    `json:"label" dynamodbav:"label"`
	Type        string    `json:"type" dynamodbav:"type"` // text | select | checkbox | date ...
	Required    bool      `json:"required" dynamodbav:"required"`
	Options     []string  `json:"options,omitempty" dynamodbav:"options"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
}

type CreateFormFieldRequest struct {
	Label    string   `json:"label" validate:"required"`
	Type     string   `json:"type" validate:"required"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
}

// CreateFormRequest creates a programme's form fields in bulk.
type CreateFormRequest struct {
	ProgrammeID string                   `json:"programme_id" validate:"required"`
	Fields      []CreateFormFieldRequest `json:"fields" validate:"required,min=1,dive"`
}

type UpdateFormFieldRequest struct {
	Label    *string   `json:"label"`
	Type     *string   `json:"type"`
	Required *bool     `json:"required"`
	Options  *[]string `json:"options"`
}
