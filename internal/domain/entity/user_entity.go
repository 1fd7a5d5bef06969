package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Email is unique across all users; there is no update or delete path here.
type User struct {
	ID        UserID
	Name      UserName
	Email     UserEmail
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateUser struct {
	Name  UserName
	Email UserEmail
}
