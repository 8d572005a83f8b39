package model

import "atrium/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldEmail     = "email"
	FieldFullName  = "full_name"
	FieldRole      = "role"
	FieldLastLogin = "last_login"
)

type User struct {
	ID        string  `db:"id"`
	Username  string  `db:"username"`
	Password  string  `db:"password"`
	Email     *string `db:"email"`
	FullName  *string `db:"full_name"`
	Role      string  `db:"role"`
	LastLogin *string `db:"last_login"`
	model.Metadata
}
