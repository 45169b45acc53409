package ledger

const RoleAdministrator = "administrator"

// User is a login account. Passwords are stored and compared as plain text.
type User struct {
	Username string
	Password string
	Role     string
}

// DefaultAdmin is the account seeded at every start.
func DefaultAdmin() User {
	return User{Username: "admin", Password: "admin", Role: RoleAdministrator}
}

// Categories are the labels offered when entering a transaction.
var Categories = []string{
	"Food",
	"Shopping",
	"Transport",
	"Housing",
	"Entertainment",
	"Medical",
	"Education",
	"Other",
}
