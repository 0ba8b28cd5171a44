package domain

// Admin is a back-office account allowed to manage programmes and forms.
type Admin struct {
	AdminID      string `json:"id" dynamodbav:"admin_id"`
	Email        string `json:"email" dynamodbav:"email"`
	PasswordHash string `json:"-" dynamodbav:"password_hash"`
}
