package domain

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}

func NewAdmin(username, password string) *User {
	return &User{Username: username, Password: password, Role: RoleAdmin}
}

func NewCustomer(username, password string) *User {
	return &User{Username: username, Password: password, Role: RoleCustomer}
}

// CheckPassword compares the stored credential by equality. Credentials are
// opaque; unknown user and wrong password are indistinguishable to callers.
func (u *User) CheckPassword(password string) bool {
	return u.Password == password
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
