package inmem

import (
	"context"
	"sort"

	"github.com/swachhapp/swachh/core/collection"
)

type assignmentRepository struct {
	db *assignmentTable
}

func NewAssignmentRepository(db *DB) collection.Repository {
	return &assignmentRepository{db: db.assignment}
}

func (r *assignmentRepository) query() []collection.Assignment {
	res := make([]collection.Assignment, 0, len(r.db.t))
	for _, a := range r.db.t {
		res = append(res, *a)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res
}

func (r *assignmentRepository) CreateAssignment(_ context.Context, asg collection.Assignment) (collection.Assignment, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	r.db.t[asg.ID] = &asg
	return asg, nil
}

func (r *assignmentRepository) GetAssignmentByID(_ context.Context, id string) (collection.Assignment, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if asg, ok := r.db.t[id]; ok {
		return *asg, nil
	}
	return collection.Assignment{}, collection.ErrNotFound
}

func (r *assignmentRepository) QueryAssignmentsByCollector(_ context.Context, collectorPhone string) ([]collection.Assignment, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	res := make([]collection.Assignment, 0)
	for _, asg := range r.query() {
		if asg.CollectorPhone == collectorPhone {
			res = append(res, asg)
		}
	}
	return res, nil
}

func (r *assignmentRepository) QueryAssignmentsByResident(_ context.Context, phone string) ([]collection.Assignment, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	res := make([]collection.Assignment, 0)
	for _, asg := range r.query() {
		if asg.Phone == phone {
			res = append(res, asg)
		}
	}
	return res, nil
}

func (r *assignmentRepository) UpdateAssignment(_ context.Context, asg collection.Assignment) (collection.Assignment, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	orig, ok := r.db.t[asg.ID]
	if !ok {
		return collection.Assignment{}, collection.ErrNotFound
	}
	asg.CreatedAt = orig.CreatedAt
	r.db.t[asg.ID] = &asg
	return asg, nil
}
