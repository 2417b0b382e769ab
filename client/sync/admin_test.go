package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swachhapp/swachh/core"
	"github.com/swachhapp/swachh/core/notification"
	"github.com/swachhapp/swachh/core/report"
	"github.com/swachhapp/swachh/core/user"
)

type adminStub struct {
	collectors []user.User
	houses     []user.User
	reports    []report.Report

	loads int32 // full list fetch cycles (collectors endpoint hits)
}

func (s *adminStub) mux(t *testing.T) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/collectors/9000000001", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.loads, 1)
		respondJSON(t, w, s.collectors)
	})
	mux.HandleFunc("/api/admin/houses/9000000001", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(t, w, map[string]interface{}{"users": s.houses})
	})
	mux.HandleFunc("/api/admin/reports", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(t, w, s.reports)
	})
	return mux
}

func TestAdminDashboard_Load(t *testing.T) {
	identity := Identity{Phone: "9000000001", Name: "Admin", Role: "admin"}

	t.Run("ready view mirrors server data", func(t *testing.T) {
		stub := &adminStub{
			collectors: []user.User{{ID: "c1", Phone: "9000000002", Role: user.RoleCollector}},
			houses:     []user.User{{ID: "u1", Phone: "9876543210", Role: user.RoleResident}},
			reports: []report.Report{
				{ID: "r1", Status: report.StatusPending},
				{ID: "r2", Status: report.StatusAssigned},
			},
		}

		d := NewAdminDashboard(newStubClient(t, stub.mux(t)), identity)
		require.NoError(t, d.Load(context.Background()))
		assert.Equal(t, Ready, d.Status())
		assert.Len(t, d.View().Collectors, 1)
		assert.Len(t, d.View().Houses, 1)
		assert.Len(t, d.View().Reports, 2)
		assert.Equal(t, 1, d.View().PendingReports())
	})

	t.Run("one failed fetch discards everything", func(t *testing.T) {
		failMux := http.NewServeMux()
		failMux.HandleFunc("/api/collectors/9000000001", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(t, w, []user.User{{ID: "c1"}})
		})
		failMux.HandleFunc("/api/admin/houses/9000000001", func(w http.ResponseWriter, r *http.Request) {
			respondErr(w, http.StatusInternalServerError, "boom")
		})
		failMux.HandleFunc("/api/admin/reports", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(t, w, []report.Report{})
		})

		d := NewAdminDashboard(newStubClient(t, failMux), identity)
		err := d.Load(context.Background())
		assert.Equal(t, ErrLoadFailed, err)
		assert.Equal(t, LoadError, d.Status())
		assert.Empty(t, d.View().Collectors)
		assert.Empty(t, d.View().Reports)
	})

	t.Run("empty lists come back non-nil", func(t *testing.T) {
		stub := &adminStub{}
		d := NewAdminDashboard(newStubClient(t, stub.mux(t)), identity)
		require.NoError(t, d.Load(context.Background()))
		assert.Equal(t, Ready, d.Status())
		assert.NotNil(t, d.View().Collectors)
		assert.NotNil(t, d.View().Houses)
		assert.NotNil(t, d.View().Reports)
	})
}

func TestAdminDashboard_AddCollector(t *testing.T) {
	identity := Identity{Phone: "9000000001", Role: "admin"}

	stub := &adminStub{collectors: []user.User{{ID: "c1", Phone: "9000000002", Role: user.RoleCollector}}}
	mux := stub.mux(t)
	mux.HandleFunc("/api/collectors/add", func(w http.ResponseWriter, r *http.Request) {
		var nc user.NewCollector
		require.NoError(t, json.NewDecoder(r.Body).Decode(&nc))
		assert.Equal(t, "9000000001", nc.AdminPhone)
		stub.collectors = append(stub.collectors, user.User{ID: "c2", Name: nc.Name, Phone: nc.Phone, Role: user.RoleCollector})
		w.WriteHeader(http.StatusCreated)
		respondJSON(t, w, stub.collectors[len(stub.collectors)-1])
	})

	d := NewAdminDashboard(newStubClient(t, mux), identity)
	require.NoError(t, d.Load(context.Background()))
	require.Len(t, d.View().Collectors, 1)

	t.Run("write then full refresh", func(t *testing.T) {
		before := atomic.LoadInt32(&stub.loads)
		require.NoError(t, d.AddCollector(context.Background(), "New", "9000000000", "Secr3t!"))
		assert.Equal(t, before+1, atomic.LoadInt32(&stub.loads))

		require.Len(t, d.View().Collectors, 2)
		assert.Equal(t, "9000000000", d.View().Collectors[1].Phone)
		assert.Equal(t, Ready, d.Status())
	})

	t.Run("missing details never hit the network", func(t *testing.T) {
		before := atomic.LoadInt32(&stub.loads)
		err := d.AddCollector(context.Background(), "", "9000000000", "")
		assert.IsType(t, &core.ValidationError{}, err)
		assert.Equal(t, before, atomic.LoadInt32(&stub.loads))
	})
}

func TestAdminDashboard_AssignCollector(t *testing.T) {
	identity := Identity{Phone: "9000000001", Role: "admin"}

	var puts int32
	stub := &adminStub{
		reports: []report.Report{
			{ID: "r1", Status: report.StatusPending},
			{ID: "r2", Status: report.StatusPending},
		},
	}
	mux := stub.mux(t)
	mux.HandleFunc("/api/admin/reports/r1", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&puts, 1)
		respondJSON(t, w, report.Report{ID: "r1", Status: report.StatusAssigned, AssignedTo: "c1"})
	})

	d := NewAdminDashboard(newStubClient(t, mux), identity)
	require.NoError(t, d.Load(context.Background()))
	loadsAfter := atomic.LoadInt32(&stub.loads)

	t.Run("write then local patch only", func(t *testing.T) {
		require.NoError(t, d.AssignCollector(context.Background(), "r1", "c1"))
		assert.EqualValues(t, 1, atomic.LoadInt32(&puts))
		// no refetch happened
		assert.Equal(t, loadsAfter, atomic.LoadInt32(&stub.loads))

		assert.Equal(t, report.StatusAssigned, d.View().Reports[0].Status)
		assert.Equal(t, "c1", d.View().Reports[0].AssignedTo)
		// the sibling report is untouched
		assert.Equal(t, report.StatusPending, d.View().Reports[1].Status)
	})

	t.Run("unknown report", func(t *testing.T) {
		err := d.AssignCollector(context.Background(), "nope", "c1")
		assert.Error(t, err)
		assert.EqualValues(t, 1, atomic.LoadInt32(&puts))
	})
}

func TestAdminDashboard_SendNotification(t *testing.T) {
	identity := Identity{Phone: "9000000001", Role: "admin"}

	var posted notification.NewNotification
	stub := &adminStub{}
	mux := stub.mux(t)
	mux.HandleFunc("/api/notifications", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		w.WriteHeader(http.StatusCreated)
		respondJSON(t, w, notification.Notification{ID: "n1", Title: posted.Title})
	})

	d := NewAdminDashboard(newStubClient(t, mux), identity)
	require.NoError(t, d.Load(context.Background()))
	before := d.View()

	require.NoError(t, d.SendNotification(context.Background(), "Holiday", "no pickup on Monday"))
	assert.Equal(t, "Holiday", posted.Title)
	assert.Empty(t, posted.Phone) // broadcast
	assert.Equal(t, before, d.View())

	err := d.SendNotification(context.Background(), "", "hi")
	assert.IsType(t, &core.ValidationError{}, err)
}
