package employee

import "time"

type Employee struct {
	ID                 string
	EmployeeCode       string
	Name               string
	Email              string
	PasswordHash       string
	BranchID           string
	ReferencePhotoPath *string
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
