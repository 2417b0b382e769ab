package collection

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound = errors.New("assignment not found")
)

type (
	Repository interface {
		CreateAssignment(ctx context.Context, asg Assignment) (Assignment, error)
		GetAssignmentByID(ctx context.Context, id string) (Assignment, error)
		QueryAssignmentsByCollector(ctx context.Context, collectorPhone string) ([]Assignment, error)
		QueryAssignmentsByResident(ctx context.Context, phone string) ([]Assignment, error)
		UpdateAssignment(ctx context.Context, asg Assignment) (Assignment, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create puts a new home on a round; the home starts Pending.
func (svc *Service) Create(ctx context.Context, na NewAssignment) (Assignment, error) {
	now := time.Now().UTC()
	return svc.repo.CreateAssignment(ctx, Assignment{
		ID:             uuid.New().String(),
		ResidentName:   na.ResidentName,
		Phone:          na.Phone,
		Address:        na.Address,
		HouseNumber:    na.HouseNumber,
		Status:         StatusPending,
		CollectorPhone: na.CollectorPhone,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

// AssignedHomes returns all homes on the given collector's round.
func (svc *Service) AssignedHomes(ctx context.Context, collectorPhone string) ([]Assignment, error) {
	return svc.repo.QueryAssignmentsByCollector(ctx, collectorPhone)
}

// ResidentHomes returns all assignments registered against the given resident phone.
func (svc *Service) ResidentHomes(ctx context.Context, phone string) ([]Assignment, error) {
	return svc.repo.QueryAssignmentsByResident(ctx, phone)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Assignment, error) {
	return svc.repo.GetAssignmentByID(ctx, id)
}

// MarkCollected transitions a home to Collected. Collected is terminal:
// re-marking an already-Collected home returns it unchanged.
func (svc *Service) MarkCollected(ctx context.Context, id string) (Assignment, error) {
	asg, err := svc.repo.GetAssignmentByID(ctx, id)
	if err != nil {
		return Assignment{}, err
	}
	if asg.IsCollected() {
		return asg, nil
	}
	asg.Status = StatusCollected
	asg.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateAssignment(ctx, asg)
}
