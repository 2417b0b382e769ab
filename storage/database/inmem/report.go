package inmem

import (
	"context"
	"sort"

	"github.com/swachhapp/swachh/core/report"
)

type reportRepository struct {
	db *reportTable
}

func NewReportRepository(db *DB) report.Repository {
	return &reportRepository{db: db.report}
}

func (r *reportRepository) query() []report.Report {
	res := make([]report.Report, 0, len(r.db.t))
	for _, rpt := range r.db.t {
		res = append(res, *rpt)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res
}

func (r *reportRepository) CreateReport(_ context.Context, rpt report.Report) (report.Report, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	r.db.t[rpt.ID] = &rpt
	return rpt, nil
}

func (r *reportRepository) GetReportByID(_ context.Context, id string) (report.Report, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if rpt, ok := r.db.t[id]; ok {
		return *rpt, nil
	}
	return report.Report{}, report.ErrNotFound
}

func (r *reportRepository) QueryAllReports(_ context.Context) ([]report.Report, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()
	return r.query(), nil
}

func (r *reportRepository) QueryReportsByPhone(_ context.Context, phone string) ([]report.Report, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	res := make([]report.Report, 0)
	for _, rpt := range r.query() {
		if rpt.Phone == phone {
			res = append(res, rpt)
		}
	}
	return res, nil
}

func (r *reportRepository) UpdateReport(_ context.Context, rpt report.Report) (report.Report, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	orig, ok := r.db.t[rpt.ID]
	if !ok {
		return report.Report{}, report.ErrNotFound
	}
	rpt.CreatedAt = orig.CreatedAt
	r.db.t[rpt.ID] = &rpt
	return rpt, nil
}
