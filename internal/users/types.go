package users

import "time"

// User is the item stored in the users table. Registration and credential
// handling live in the identity service; this API only reads user records to
// expand order ownership for admins.
type User struct {
	UserID    string    `dynamodbav:"user_id" json:"user_id"` // PK
	Name      string    `dynamodbav:"name" json:"name"`
	Email     string    `dynamodbav:"email" json:"email"`
	Role      string    `dynamodbav:"role" json:"role"` // user | admin
	CreatedAt time.Time `dynamodbav:"created_at" json:"created_at"`
}
