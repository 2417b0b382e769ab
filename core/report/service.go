package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound          = errors.New("report not found")
	ErrInvalidTransition = errors.New("invalid report status transition")
)

type (
	Repository interface {
		CreateReport(ctx context.Context, rpt Report) (Report, error)
		GetReportByID(ctx context.Context, id string) (Report, error)
		QueryAllReports(ctx context.Context) ([]Report, error)
		QueryReportsByPhone(ctx context.Context, phone string) ([]Report, error)
		UpdateReport(ctx context.Context, rpt Report) (Report, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nr NewReport) (Report, error) {
	now := time.Now().UTC()
	return svc.repo.CreateReport(ctx, Report{
		ID:        uuid.New().String(),
		Type:      nr.Type,
		UserName:  nr.UserName,
		Phone:     nr.Phone,
		Address:   nr.Address,
		Message:   nr.Message,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *Service) QueryAll(ctx context.Context) ([]Report, error) {
	return svc.repo.QueryAllReports(ctx)
}

func (svc *Service) QueryByPhone(ctx context.Context, phone string) ([]Report, error) {
	return svc.repo.QueryReportsByPhone(ctx, phone)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Report, error) {
	return svc.repo.GetReportByID(ctx, id)
}

// Update applies an AssignReport action. Status moves forward only:
// Pending -> Assigned -> Resolved; anything else is ErrInvalidTransition.
func (svc *Service) Update(ctx context.Context, id string, ar AssignReport) (Report, error) {
	rpt, err := svc.repo.GetReportByID(ctx, id)
	if err != nil {
		return Report{}, err
	}
	if !validTransition(rpt.Status, ar.Status) {
		return Report{}, ErrInvalidTransition
	}
	rpt.Status = ar.Status
	rpt.AssignedTo = ar.AssignedTo
	rpt.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateReport(ctx, rpt)
}

func validTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusAssigned
	case StatusAssigned:
		return to == StatusResolved
	}
	return false
}
