package echoapi_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/swachhapp/swachh/core/report"
	"github.com/swachhapp/swachh/core/user"
)

func Test_reportApi(t *testing.T) {
	env := newTestEnv(t)

	resident := createUser(t, env.usrRepo, "Asha", "9876543210", user.RoleResident, "", true)
	token := getToken(t, resident)

	tests := []httpTest{
		{
			name: "Auth required", method: http.MethodPost, path: "/api/reports",
			body:     []byte(`{"type":"missed","userName":"Asha","phone":"9876543210","address":"Sector 12","message":"missed pickup"}`),
			wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken),
		},
		{
			name: "Unknown type rejected", method: http.MethodPost, path: "/api/reports", token: token,
			body:     []byte(`{"type":"other","userName":"Asha","phone":"9876543210","address":"Sector 12","message":"hm"}`),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, map[string]string{"type": "type must be one of [missed extra feedback]"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Report filed and listed for the phone", func(t *testing.T) {
		body := []byte(`{"type":"missed","userName":"Asha","phone":"9876543210","address":"Sector 12","message":"missed pickup"}`)
		req, rec := newAuthRequest(http.MethodPost, "/api/reports", token, body)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var rpt report.Report
		if err := json.Unmarshal(rec.Body.Bytes(), &rpt); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if rpt.Status != report.StatusPending {
			t.Errorf("Status = %q; want %q", rpt.Status, report.StatusPending)
		}

		req, rec = newAuthRequest(http.MethodGet, "/api/reports/"+resident.Phone, token)
		env.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var rpts []report.Report
		if err := json.Unmarshal(rec.Body.Bytes(), &rpts); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if len(rpts) != 1 || rpts[0].ID != rpt.ID {
			t.Errorf("reports = %+v; want just %q", rpts, rpt.ID)
		}
	})
}
