package seeder

import (
	"github.com/heartmarshall/coursereview-backend/internal/adapter/lecturerapi"
	mongodept "github.com/heartmarshall/coursereview-backend/internal/adapter/mongodb/department"
	pgdept "github.com/heartmarshall/coursereview-backend/internal/adapter/postgres/department"
)

// Compile-time checks that the adapters satisfy the seeder contracts.
var (
	_ DepartmentRepo  = (*mongodept.Repo)(nil)
	_ DepartmentRepo  = (*pgdept.Repo)(nil)
	_ LecturerCreator = (*lecturerapi.Client)(nil)
)
