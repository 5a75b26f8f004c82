package domain

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleClient
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	Name         string
	Surname      string
	Email        string
	Phone        string
	Address      string
}
