package models

// UserType is the role of an account.
type UserType string

const (
	UserTypeStudent    UserType = "aluno"
	UserTypeInstructor UserType = "professor"
	UserTypeAdmin      UserType = "admin"
)

// Valid reports whether t is a known user type.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeStudent, UserTypeInstructor, UserTypeAdmin:
		return true
	}
	return false
}

// User represents an application user stored in the users table.
type User struct {
	ID           int64    `db:"id" json:"id"`
	Name         string   `db:"name" json:"name"`
	Email        string   `db:"email" json:"email"`
	Login        string   `db:"login" json:"login"`
	PasswordHash string   `db:"password_hash" json:"-"`
	Type         UserType `db:"type" json:"type"`
}

// Profile strips credentials from the user.
func (u User) Profile() UserProfile {
	return UserProfile{ID: u.ID, Name: u.Name, Email: u.Email, Login: u.Login, Type: u.Type}
}

// UserProfile is the public, cacheable view of a user.
type UserProfile struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Login string   `json:"login"`
	Type  UserType `json:"type"`
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Type *UserType
}

// UserUpdate lists the user columns a partial update may touch.
type UserUpdate struct {
	Name         *string
	Email        *string
	Login        *string
	PasswordHash *string
	Type         *UserType
}

// Empty reports whether no field was supplied.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Login == nil && u.PasswordHash == nil && u.Type == nil
}
