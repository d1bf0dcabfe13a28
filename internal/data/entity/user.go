package entity

type UserRole string

const (
	RoleSeller UserRole = "Verkoper"
	RoleAdmin  UserRole = "Admin"
)

type User struct {
	BaseNoDelete
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	FirstName    *string  `db:"first_name"`
	LastName     *string  `db:"last_name"`
	PhoneNumber  *string  `db:"phone_number"`
	Role         UserRole `db:"role"`
}
