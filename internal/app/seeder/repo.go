// Package seeder implements the idempotent department and lecturer seeding runs.
package seeder

import (
	"context"

	"github.com/heartmarshall/coursereview-backend/internal/domain"
)

// DepartmentRepo defines the store contract consumed by DepartmentSeeder.
// Implemented by mongodb/department.Repo and postgres/department.Repo.
type DepartmentRepo interface {
	List(ctx context.Context) ([]domain.Department, error)
	Insert(ctx context.Context, d domain.Department) (domain.Department, error)
}

// LecturerCreator defines the remote create call consumed by LecturerSeeder.
// Implemented by lecturerapi.Client.
type LecturerCreator interface {
	Create(ctx context.Context, l domain.Lecturer) error
}
