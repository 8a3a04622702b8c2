package user

import "time"

// User maps to the `users` table. Password holds a bcrypt hash and is never
// serialized.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"-"`
}
