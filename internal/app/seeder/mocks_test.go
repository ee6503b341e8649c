package seeder

import (
	"context"
	"sync"

	"github.com/heartmarshall/coursereview-backend/internal/domain"
)

var _ DepartmentRepo = &departmentRepoMock{}

type departmentRepoMock struct {
	ListFunc   func(ctx context.Context) ([]domain.Department, error)
	InsertFunc func(ctx context.Context, d domain.Department) (domain.Department, error)

	calls struct {
		List   []struct{ Ctx context.Context }
		Insert []struct {
			Ctx context.Context
			D   domain.Department
		}
	}
	lockList   sync.RWMutex
	lockInsert sync.RWMutex
}

func (mock *departmentRepoMock) List(ctx context.Context) ([]domain.Department, error) {
	if mock.ListFunc == nil {
		panic("departmentRepoMock.ListFunc: method is nil but DepartmentRepo.List was just called")
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, struct{ Ctx context.Context }{Ctx: ctx})
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *departmentRepoMock) ListCalls() []struct{ Ctx context.Context } {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *departmentRepoMock) Insert(ctx context.Context, d domain.Department) (domain.Department, error) {
	if mock.InsertFunc == nil {
		panic("departmentRepoMock.InsertFunc: method is nil but DepartmentRepo.Insert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		D   domain.Department
	}{Ctx: ctx, D: d}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, d)
}

func (mock *departmentRepoMock) InsertCalls() []struct {
	Ctx context.Context
	D   domain.Department
} {
	mock.lockInsert.RLock()
	calls := mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}

var _ LecturerCreator = &lecturerCreatorMock{}

type lecturerCreatorMock struct {
	CreateFunc func(ctx context.Context, l domain.Lecturer) error

	calls struct {
		Create []struct {
			Ctx context.Context
			L   domain.Lecturer
		}
	}
	lockCreate sync.RWMutex
}

func (mock *lecturerCreatorMock) Create(ctx context.Context, l domain.Lecturer) error {
	if mock.CreateFunc == nil {
		panic("lecturerCreatorMock.CreateFunc: method is nil but LecturerCreator.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		L   domain.Lecturer
	}{Ctx: ctx, L: l}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, l)
}

func (mock *lecturerCreatorMock) CreateCalls() []struct {
	Ctx context.Context
	L   domain.Lecturer
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
