package echoapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pkg/errors"

	echoapi "github.com/swachhapp/swachh/apps/api/echo"
	"github.com/swachhapp/swachh/core/collection"
	"github.com/swachhapp/swachh/core/report"
	"github.com/swachhapp/swachh/core/user"
	"github.com/swachhapp/swachh/storage/database/inmem"
)

func Test_adminApi_collectors(t *testing.T) {
	env := newTestEnv(t)

	admin := createUser(t, env.usrRepo, "Admin", "9000000001", user.RoleAdmin, "", true)
	resident := createUser(t, env.usrRepo, "Asha", "9876543210", user.RoleResident, "", true)
	coll1 := createUser(t, env.usrRepo, "Ravi", "9000000002", user.RoleCollector, admin.Phone, true)
	coll2 := createUser(t, env.usrRepo, "Sita", "9000000003", user.RoleCollector, admin.Phone, true)
	createUser(t, env.usrRepo, "Other", "9000000004", user.RoleCollector, "9111111111", true)

	adminToken := getToken(t, admin)

	tests := []httpTest{
		{
			name: "Auth required", method: http.MethodGet, path: "/api/collectors/" + admin.Phone,
			wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken),
		},
		{
			name: "Admin required", method: http.MethodGet, path: "/api/collectors/" + admin.Phone, token: getToken(t, resident),
			wantCode: http.StatusForbidden, wantData: marshalObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Only own collectors returned", method: http.MethodGet, path: "/api/collectors/" + admin.Phone, token: adminToken,
			wantCode: http.StatusOK, wantData: marshalList(t, coll1, coll2),
		},
		{
			name: "No collectors yet", method: http.MethodGet, path: "/api/collectors/9222222222", token: adminToken,
			wantCode: http.StatusOK, wantData: []byte(`[]`),
		},
		{
			name: "Add collector validates phone", method: http.MethodPost, path: "/api/collectors/add", token: adminToken,
			body:     []byte(`{"name":"New","phone":"12345","password":"Secr3t!","adminPhone":"9000000001"}`),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, map[string]string{"phone": "a valid 10-digit phone number is required"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Collector added under admin", func(t *testing.T) {
		body := []byte(`{"name":"New","phone":"9000000000","password":"Secr3t!","adminPhone":"9000000001"}`)
		req, rec := newAuthRequest(http.MethodPost, "/api/collectors/add", adminToken, body)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var usr user.User
		if err := json.Unmarshal(rec.Body.Bytes(), &usr); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if usr.Role != user.RoleCollector {
			t.Errorf("Role = %q; want %q", usr.Role, user.RoleCollector)
		}
		if usr.AdminPhone != admin.Phone {
			t.Errorf("AdminPhone = %q; want %q", usr.AdminPhone, admin.Phone)
		}

		// the new collector shows up on a re-query
		colls, err := env.usrSvc.Collectors(context.Background(), admin.Phone)
		if err != nil {
			t.Fatalf("Collectors(): %v", err)
		}
		if len(colls) != 3 {
			t.Errorf("len(collectors) = %d; want 3", len(colls))
		}
	})
}

func Test_adminApi_houses(t *testing.T) {
	env := newTestEnv(t)

	admin := createUser(t, env.usrRepo, "Admin", "9000000001", user.RoleAdmin, "", true)
	house := createUser(t, env.usrRepo, "Asha", "9876543210", user.RoleResident, admin.Phone, true)
	adminToken := getToken(t, admin)

	type housesResponse struct {
		Users []user.User `json:"users"`
	}

	tests := []httpTest{
		{
			name: "Houses wrapped in users key", method: http.MethodGet, path: "/api/admin/houses/" + admin.Phone, token: adminToken,
			wantCode: http.StatusOK, wantData: marshalObj(t, housesResponse{Users: []user.User{house}}),
		},
		{
			name: "Empty area", method: http.MethodGet, path: "/api/admin/houses/9222222222", token: adminToken,
			wantCode: http.StatusOK, wantData: marshalObj(t, housesResponse{Users: []user.User{}}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("House added with assignment", func(t *testing.T) {
		body := []byte(`{"name":"Binod","phone":"9876500001","password":"Secr3t!","area":"Sector 9",` +
			`"houseNumber":"H-7","adminPhone":"9000000001","collectorPhone":"9000000002"}`)
		req, rec := newAuthRequest(http.MethodPost, "/api/admin/add-house", adminToken, body)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}

		homes, err := env.collRepo.QueryAssignmentsByCollector(context.Background(), "9000000002")
		if err != nil {
			t.Fatalf("QueryAssignmentsByCollector(): %v", err)
		}
		if len(homes) != 1 {
			t.Fatalf("len(homes) = %d; want 1", len(homes))
		}
		if homes[0].Address != "Sector 9 H-7" {
			t.Errorf("Address = %q; want %q", homes[0].Address, "Sector 9 H-7")
		}
		if homes[0].Status != "Pending" {
			t.Errorf("Status = %q; want Pending", homes[0].Status)
		}
	})
}

// flakyAssignmentRepo rejects the first insert, then behaves.
type flakyAssignmentRepo struct {
	collection.Repository
	failed bool
}

func (r *flakyAssignmentRepo) CreateAssignment(ctx context.Context, asg collection.Assignment) (collection.Assignment, error) {
	if !r.failed {
		r.failed = true
		return collection.Assignment{}, errors.New("insert rejected")
	}
	return r.Repository.CreateAssignment(ctx, asg)
}

func Test_adminApi_addHouse_rollback(t *testing.T) {
	collDB, err := inmem.Open()
	if err != nil {
		t.Fatalf("inmem.Open(): %v", err)
	}
	flaky := &flakyAssignmentRepo{Repository: inmem.NewAssignmentRepository(collDB)}
	env := newTestEnv(t, func(o *echoapi.Options) {
		o.CollectionSvc = collection.NewService(flaky)
	})

	admin := createUser(t, env.usrRepo, "Admin", "9000000001", user.RoleAdmin, "", true)
	adminToken := getToken(t, admin)
	body := []byte(`{"name":"Binod","phone":"9876500002","password":"Secr3t!","area":"Sector 9",` +
		`"houseNumber":"H-8","adminPhone":"9000000001","collectorPhone":"9000000002"}`)

	t.Run("Failed assignment undoes the house user", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/admin/add-house", adminToken, body)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusInternalServerError, rec.Body.String())
		}
		if _, err := env.usrRepo.GetUserByPhone(context.Background(), "9876500002"); err != user.ErrNotFound {
			t.Fatalf("GetUserByPhone() err = %v; want %v", err, user.ErrNotFound)
		}
	})

	t.Run("Retry with the same phone succeeds", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/admin/add-house", adminToken, body)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		homes, err := flaky.QueryAssignmentsByCollector(context.Background(), "9000000002")
		if err != nil {
			t.Fatalf("QueryAssignmentsByCollector(): %v", err)
		}
		if len(homes) != 1 {
			t.Errorf("len(homes) = %d; want 1", len(homes))
		}
	})
}

func Test_adminApi_reports(t *testing.T) {
	env := newTestEnv(t)

	admin := createUser(t, env.usrRepo, "Admin", "9000000001", user.RoleAdmin, "", true)
	adminToken := getToken(t, admin)

	pending := createReport(t, env.rptRepo, "9876543210", report.TypeMissed, report.StatusPending)
	resolved := createReport(t, env.rptRepo, "9876543211", report.TypeExtra, report.StatusResolved)

	t.Run("All reports listed", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/admin/reports", adminToken)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var rpts []report.Report
		if err := json.Unmarshal(rec.Body.Bytes(), &rpts); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if len(rpts) != 2 {
			t.Errorf("len(reports) = %d; want 2", len(rpts))
		}
	})

	t.Run("Assign collector", func(t *testing.T) {
		body := []byte(`{"assignedTo":"9000000002","status":"Assigned"}`)
		req, rec := newAuthRequest(http.MethodPut, "/api/admin/reports/"+pending.ID, adminToken, body)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var rpt report.Report
		if err := json.Unmarshal(rec.Body.Bytes(), &rpt); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if rpt.Status != report.StatusAssigned {
			t.Errorf("Status = %q; want %q", rpt.Status, report.StatusAssigned)
		}
		if rpt.AssignedTo != "9000000002" {
			t.Errorf("AssignedTo = %q; want %q", rpt.AssignedTo, "9000000002")
		}
	})

	tests := []httpTest{
		{
			name: "Unknown report", method: http.MethodPut, path: "/api/admin/reports/nope", token: adminToken,
			body:     []byte(`{"assignedTo":"9000000002","status":"Assigned"}`),
			wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "Backward transition rejected", method: http.MethodPut, path: "/api/admin/reports/" + resolved.ID, token: adminToken,
			body:     []byte(`{"assignedTo":"9000000002","status":"Assigned"}`),
			wantCode: http.StatusConflict, wantData: marshalObj(t, httpErr{Error: "invalid report status transition"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_adminApi_sendNotification(t *testing.T) {
	env := newTestEnv(t)

	admin := createUser(t, env.usrRepo, "Admin", "9000000001", user.RoleAdmin, "", true)

	body := []byte(`{"title":"Holiday","message":"no pickup on Monday"}`)
	req, rec := newAuthRequest(http.MethodPost, "/api/notifications", getToken(t, admin), body)
	env.app.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}

	// the broadcast reaches any phone
	ntfs, err := env.ntfRepo.QueryNotificationsByPhone(context.Background(), "9876543210")
	if err != nil {
		t.Fatalf("QueryNotificationsByPhone(): %v", err)
	}
	if len(ntfs) != 1 {
		t.Fatalf("len(notifications) = %d; want 1", len(ntfs))
	}
	if ntfs[0].Title != "Holiday" {
		t.Errorf("Title = %q; want Holiday", ntfs[0].Title)
	}
}
