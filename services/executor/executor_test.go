package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"marketplace/models"
	"marketplace/utils"
)

type memRepo struct {
	byID   map[int64]*models.Executor
	nextID int64
}

func newMemRepo() *memRepo {
	return &memRepo{byID: map[int64]*models.Executor{}}
}

func (m *memRepo) Create(_ context.Context, e *models.Executor) error {
	m.nextID++
	e.ID = m.nextID
	copied := *e
	m.byID[e.ID] = &copied
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id int64) (*models.Executor, error) {
	e, ok := m.byID[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return e, nil
}

func (m *memRepo) GetByEmail(_ context.Context, email string) (*models.Executor, error) {
	for _, e := range m.byID {
		if strings.EqualFold(e.Email, email) {
			return e, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (m *memRepo) Search(_ context.Context, c models.ExecutorSearchCriteria) ([]models.Executor, error) {
	var out []models.Executor
	for _, e := range m.byID {
		if c.City != "" && !strings.EqualFold(e.City, c.City) {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func TestRegister(t *testing.T) {
	svc := &DefaultExecutorService{Repo: newMemRepo()}
	ctx := context.Background()

	e, err := svc.Register(ctx, models.RegisterExecutorRequest{Name: " Ann ", Email: "Ann@Example.com", City: "Riga"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if e.ID == 0 || e.Name != "Ann" || e.Email != "ann@example.com" {
		t.Fatalf("executor = %+v", e)
	}

	_, err = svc.Register(ctx, models.RegisterExecutorRequest{Name: "Other", Email: "ANN@example.com"})
	var ce *utils.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("duplicate email err = %v, want ConflictError", err)
	}
}

// lateDuplicateRepo misses the email lookup, as a second concurrent
// registration would, and then hits the unique index on insert.
type lateDuplicateRepo struct {
	*memRepo
}

func (r lateDuplicateRepo) GetByEmail(context.Context, string) (*models.Executor, error) {
	return nil, utils.ErrNotFound
}

func (r lateDuplicateRepo) Create(ctx context.Context, e *models.Executor) error {
	if existing, _ := r.memRepo.GetByEmail(ctx, e.Email); existing != nil {
		return fmt.Errorf("executor email %s: %w", e.Email, utils.ErrDuplicate)
	}
	return r.memRepo.Create(ctx, e)
}

func TestRegisterUniqueIndexClashIsConflict(t *testing.T) {
	svc := &DefaultExecutorService{Repo: lateDuplicateRepo{newMemRepo()}}
	ctx := context.Background()

	if _, err := svc.Register(ctx, models.RegisterExecutorRequest{Name: "Ann", Email: "ann@example.com"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register(ctx, models.RegisterExecutorRequest{Name: "Ann again", Email: "ann@example.com"})
	var ce *utils.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
	if utils.StatusFor(err) != 409 {
		t.Fatalf("status = %d, want 409", utils.StatusFor(err))
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := &DefaultExecutorService{Repo: newMemRepo()}
	tests := []models.RegisterExecutorRequest{
		{Email: "a@b.com"},
		{Name: "A"},
		{Name: "A", Email: "not-an-email"},
		{Name: "A", Email: "a@b.com", HourlyRate: -1},
	}
	for _, req := range tests {
		_, err := svc.Register(context.Background(), req)
		if utils.StatusFor(err) != 400 {
			t.Errorf("Register(%+v) err = %v, want validation error", req, err)
		}
	}
}

func TestGetExecutor(t *testing.T) {
	repo := newMemRepo()
	svc := &DefaultExecutorService{Repo: repo}
	created, _ := svc.Register(context.Background(), models.RegisterExecutorRequest{Name: "Bo", Email: "bo@example.com"})

	got, err := svc.GetExecutor(context.Background(), created.ID)
	if err != nil || got.Email != "bo@example.com" {
		t.Fatalf("GetExecutor = %+v, %v", got, err)
	}
	if _, err := svc.GetExecutor(context.Background(), 42); utils.StatusFor(err) != 404 {
		t.Fatalf("missing executor err = %v, want not found", err)
	}
	if _, err := svc.GetExecutor(context.Background(), 0); utils.StatusFor(err) != 400 {
		t.Fatalf("zero id err = %v, want validation error", err)
	}
}

func TestListExecutorsNeverNil(t *testing.T) {
	svc := &DefaultExecutorService{Repo: newMemRepo()}
	got, err := svc.ListExecutors(context.Background(), models.ExecutorSearchCriteria{City: "Nowhere"})
	if err != nil {
		t.Fatalf("ListExecutors: %v", err)
	}
	if got == nil {
		t.Fatal("ListExecutors returned nil slice")
	}
}
