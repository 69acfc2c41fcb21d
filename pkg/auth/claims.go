package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/adithyanarayan/stockline-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID     uuid.UUID
	Role       enums.UserRole
	SalesmanID *uuid.UUID
	JTI        string
}

// AccessTokenClaims represents the typed JWT issued to clients. SalesmanID is
// present for customer and worker tokens so handlers can scope directory and
// order lookups without a user fetch.
type AccessTokenClaims struct {
	UserID     uuid.UUID      `json:"user_id"`
	Role       enums.UserRole `json:"role"`
	SalesmanID *uuid.UUID     `json:"salesman_id,omitempty"`
	jwt.RegisteredClaims
}
