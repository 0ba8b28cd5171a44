package domain

import "time"

// Roles carried in JWT claims.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered participant. NIN and phone are unique per user; the
// phone is stored with the country-code prefix (e.g. 234XXXXXXXXXX).
type User struct {
	UserID       string    `json:"id" dynamodbav:"user_id"`
	Organisation string    `json:"organisation" dynamodbav:"organisation"`
	NIN          string    `json:"nin" dynamodbav:"nin"`
	Name         string    `json:"name" dynamodbav:"name"`
	Email        string    `json:"email" dynamodbav:"email"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	Phone        string    `json:"phone" dynamodbav:"phone"`
	DOB          string    `json:"dob" dynamodbav:"dob"` // YYYY-MM-DD
	Gender       string    `json:"gender" dynamodbav:"gender"`
	State        string    `json:"state" dynamodbav:"state"`
	LGA          string    `json:"lga" dynamodbav:"lga"`
	IDCode       string    `json:"idcode,omitempty" dynamodbav:"idcode"`
	Terms        bool      `json:"terms" dynamodbav:"terms"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
}

type CreateUserRequest struct {
	Organisation string `json:"organisation" validate:"required"`
	NIN          string `json:"nin" validate:"required,len=11,numeric"`
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	Phone        string `json:"phone" validate:"required"`
	DOB          string `json:"dob" validate:"required,datetime=2006-01-02"`
	Gender       string `json:"gender" validate:"required"`
	State        string `json:"state" validate:"required"`
	LGA          string `json:"lga" validate:"required"`
	Terms        bool   `json:"terms" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProgramInfo holds a user's free-form programme expectations questionnaire.
type ProgramInfo struct {
	InfoID               string `json:"id" dynamodbav:"info_id"`
	UserID               string `json:"user_id" dynamodbav:"user_id"`
	Programme            string `json:"programme" dynamodbav:"programme"`
	Expectations         string `json:"expectations" dynamodbav:"expectations"`
	Knowledge            string `json:"knowledge" dynamodbav:"knowledge"`
	Organization         string `json:"organization" dynamodbav:"organization"`
	SimilarParticipation string `json:"similar_participation" dynamodbav:"similar_participation"`
	PreviousFMYD         string `json:"previous_fmyd" dynamodbav:"previous_fmyd"`
}

type ProgramInfoRequest struct {
	Programme            string `json:"programme" validate:"required"`
	Expectations         string `json:"expectations" validate:"required"`
	Knowledge            string `json:"knowledge" validate:"required"`
	Organization         string `json:"organization" validate:"required"`
	SimilarParticipation string `json:"similar_participation" validate:"required"`
	PreviousFMYD         string `json:"previous_fmyd" validate:"required"`
}
