package directory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/adithyanarayan/stockline-backend/pkg/db/models"
	"github.com/adithyanarayan/stockline-backend/pkg/enums"
	pkgerrors "github.com/adithyanarayan/stockline-backend/pkg/errors"
)

// UserDTO is the API shape of a directory entry.
type UserDTO struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Phone   *string   `json:"phone,omitempty"`
	Address *string   `json:"address,omitempty"`
}

// Service resolves the customers and workers attached to a salesman.
type Service interface {
	CustomersBySalesman(ctx context.Context, salesmanID uuid.UUID) ([]UserDTO, error)
	WorkersBySalesman(ctx context.Context, salesmanID uuid.UUID) ([]UserDTO, error)
}

type userLister interface {
	ListBySalesman(ctx context.Context, salesmanID uuid.UUID, role enums.UserRole) ([]models.User, error)
}

type service struct {
	users userLister
}

// NewService constructs a directory service instance.
func NewService(users userLister) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{users: users}, nil
}

func (s *service) CustomersBySalesman(ctx context.Context, salesmanID uuid.UUID) ([]UserDTO, error) {
	return s.listBySalesman(ctx, salesmanID, enums.UserRoleCustomer)
}

func (s *service) WorkersBySalesman(ctx context.Context, salesmanID uuid.UUID) ([]UserDTO, error) {
	return s.listBySalesman(ctx, salesmanID, enums.UserRoleWorker)
}

func (s *service) listBySalesman(ctx context.Context, salesmanID uuid.UUID, role enums.UserRole) ([]UserDTO, error) {
	if salesmanID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "salesman id is required")
	}
	rows, err := s.users.ListBySalesman(ctx, salesmanID, role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing directory")
	}
	dtos := make([]UserDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, UserDTO{
			ID:      row.ID,
			Name:    row.Name,
			Email:   row.Email,
			Phone:   row.Phone,
			Address: row.Address,
		})
	}
	return dtos, nil
}
