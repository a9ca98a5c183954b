package employee

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,max=20"`
	FullName   string `json:"full_name" binding:"required,max=50"`
	Email      string `json:"email" binding:"required,email,max=254"`
	Department string `json:"department" binding:"required,max=30"`
}

type EmployeeResponse struct {
	ID         uint64 `json:"id"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}
