package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeNameExists    = errors.New("employee name already exists")
	ErrEmployeeArchived      = errors.New("employee is archived")
	ErrEmployeeAlreadyActive = errors.New("employee is already active")
	ErrEmployeeNameRequired  = errors.New("name is required")
	ErrEmployeeNameTooLong   = errors.New("name must be at most 100 characters")
)
