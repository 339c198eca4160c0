package middleware

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
)

// CallerFromContext reads the verified token claims placed by jwtauth.Verifier.
func CallerFromContext(ctx context.Context) (auth.Caller, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return auth.Caller{}, auth.ErrInvalidToken
	}

	subject, _ := claims["sub"].(string)
	employeeID, _ := claims["employee_id"].(string)
	role, _ := claims["role"].(string)

	return auth.Caller{
		Subject:    subject,
		EmployeeID: employeeID,
		Role:       auth.Role(role),
	}, nil
}
