package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/adithyanarayan/stockline-backend/api/middleware"
	"github.com/adithyanarayan/stockline-backend/internal/orders"
	"github.com/adithyanarayan/stockline-backend/pkg/enums"
	pkgerrors "github.com/adithyanarayan/stockline-backend/pkg/errors"
)

// actorFromRequest rebuilds the acting user from the authenticated context.
func actorFromRequest(r *http.Request) (orders.Actor, error) {
	userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		return orders.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user context")
	}

	role := enums.UserRole(middleware.RoleFromContext(r.Context()))
	if !role.IsValid() {
		return orders.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid role context")
	}

	actor := orders.Actor{ID: userID, Role: role}
	if raw := middleware.SalesmanIDFromContext(r.Context()); raw != "" {
		salesmanID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			return orders.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, parseErr, "invalid salesman context")
		}
		actor.SalesmanID = &salesmanID
	}
	return actor, nil
}

// userIDFromRequest extracts just the authenticated user identifier.
func userIDFromRequest(r *http.Request) (uuid.UUID, error) {
	userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user context")
	}
	return userID, nil
}
