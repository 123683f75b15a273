package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)

	// Recipient resolution for the notification dispatcher.
	ListByRole(ctx context.Context, role Role) ([]User, error)
	ListByClientID(ctx context.Context, clientID string) ([]User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (User, error)
}
