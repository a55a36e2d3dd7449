// internal/pages/auth/models.go
package auth

const PageName = "auth"

// Form modes of the auth screen.
const (
	ModeLogin    = "login"
	ModeRegister = "register"
)

// defaultOfficerName is attached to new accounts when the register form has
// no name field filled in.
const defaultOfficerName = "Loan Officer"

// Credentials is the parsed auth form.
type Credentials struct {
	Username        string
	Password        string
	ConfirmPassword string
	Name            string
}
