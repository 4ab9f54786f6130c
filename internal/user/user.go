package user

// User is a storefront account: customers register themselves, employees and
// admins are managed from the back-office. Password always holds a bcrypt
// hash, never the plaintext value.
type User struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Role      string `json:"role"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

const (
	RoleCustomer = "customer"
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

func validRole(role string) bool {
	return role == RoleCustomer || role == RoleEmployee || role == RoleAdmin
}
