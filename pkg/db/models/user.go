package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adithyanarayan/stockline-backend/pkg/enums"
)

// User represents any account in the system: admins, salesmen, workers, and
// the customers a salesman manages. Customers and workers carry the id of the
// salesman responsible for them.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string         `gorm:"column:name;not null"`
	Email        string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	Phone        *string        `gorm:"column:phone"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null"`
	SalesmanID   *uuid.UUID     `gorm:"column:salesman_id;type:uuid"`
	Address      *string        `gorm:"column:address"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
