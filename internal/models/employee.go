package models

// Employee mirrors the employees table, a read-only projection of the
// external identity provider.
type Employee struct {
	EmployeeID string `db:"employee_id"`
	Name       string `db:"name"`
	Email      string `db:"email"`
}
