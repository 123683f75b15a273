package user

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// Actor is the authenticated identity performing a timesheet operation,
// extracted from the verified JWT claims.
type Actor struct {
	UserID     string
	Role       Role
	EmployeeID *string
	ClientID   *string
}

// ActorFromContext builds an Actor from the jwtauth claims on the request
// context.
func ActorFromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Actor{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return Actor{}, fmt.Errorf("role claim is missing or invalid")
	}

	actor := Actor{
		UserID: userID,
		Role:   Role(roleStr),
	}

	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		actor.EmployeeID = &employeeID
	}
	if clientID, ok := claims["client_id"].(string); ok && clientID != "" {
		actor.ClientID = &clientID
	}

	return actor, nil
}
