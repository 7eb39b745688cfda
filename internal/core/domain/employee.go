package domain

// Employee is the read-only projection of the external identity provider.
// The billing engine only ever consumes the ID and display name; the record
// itself is owned elsewhere.
type Employee struct {
	EmployeeID string `json:"employeeID"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}
