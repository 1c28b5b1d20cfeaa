package workspace

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrClientNotFound  = errors.New("client not found")

	ErrEmptyProjectName    = errors.New("project name is required")
	ErrEmptyClientName     = errors.New("client name is required")
	ErrEmptyUsername       = errors.New("username is required")
	ErrEmptyMessage        = errors.New("message text is required")
	ErrNegativeCost        = errors.New("project cost must not be negative")
	ErrNegativePrice       = errors.New("client price must not be negative")
	ErrInvalidQuantity     = errors.New("quantity must not be negative")
	ErrInvalidRole         = errors.New("invalid user role")
	ErrInvalidSaleStatus   = errors.New("invalid client status")
	ErrInvalidWorkerStatus = errors.New("invalid worker status")
	ErrInvalidGoal         = errors.New("invalid goal")
	ErrInvalidRecipient    = errors.New("invalid message recipient")
	ErrInvalidLanguage     = errors.New("unsupported language")
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrNotAssigned         = errors.New("client is not assigned to this user")
	ErrNotRecipient        = errors.New("notification is not addressed to this user")
)
