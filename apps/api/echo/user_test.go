package echoapi_test

import (
	"encoding/json"
	"net/http"
	"testing"

	echoapi "github.com/swachhapp/swachh/apps/api/echo"
	"github.com/swachhapp/swachh/core/user"
)

func Test_authApi_register(t *testing.T) {
	env := newTestEnv(t)

	createUser(t, env.usrRepo, "Taken", "9999999999", user.RoleResident, "", true)

	tests := []httpTest{
		{
			name: "Phone is validated", body: []byte(`{"name":"Asha","phone":"98765","password":"Secr3t!","area":"Sector 12"}`),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, map[string]string{"phone": "a valid 10-digit phone number is required"}),
		},
		{
			name: "Required fields", body: []byte(`{"phone":"9876543210"}`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{
				"name":     "this field is required",
				"password": "this field is required",
				"area":     "this field is required",
			}),
		},
		{
			name: "Duplicate phone rejected", body: []byte(`{"name":"Dup","phone":"9999999999","password":"Secr3t!","area":"Sector 12"}`),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, map[string]string{"phone": "a user with this phone number already exists"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/auth/register", tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Resident registered", func(t *testing.T) {
		body := []byte(`{"name":"Asha","phone":"9876543210","password":"Secr3t!","area":"Sector 12"}`)
		req, rec := newRequest(http.MethodPost, "/api/auth/register", body)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var res echoapi.LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if res.Token == "" {
			t.Error("token missing from response")
		}
		if res.User.Phone != "9876543210" {
			t.Errorf("user.Phone = %q; want %q", res.User.Phone, "9876543210")
		}
		if res.User.Role != user.RoleResident {
			t.Errorf("user.Role = %q; want %q", res.User.Role, user.RoleResident)
		}
	})
}

func Test_authApi_login(t *testing.T) {
	env := newTestEnv(t)

	createUser(t, env.usrRepo, "Asha", "9876543210", user.RoleResident, "", true)
	createUser(t, env.usrRepo, "Gone", "9876500000", user.RoleResident, "", false)

	tests := []httpTest{
		{
			name: "Unknown phone", body: []byte(`{"phone":"9876599999","password":"Secr3t!"}`),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, httpErr{Error: "invalid credentials"}),
		},
		{
			name: "Wrong password", body: []byte(`{"phone":"9876543210","password":"nope"}`),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "Deactivated account", body: []byte(`{"phone":"9876500000","password":"Secr3t!"}`),
			wantCode: http.StatusForbidden, wantData: marshalObj(t, httpErr{Error: "account deactivated"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/auth/login", tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Login ok", func(t *testing.T) {
		body := []byte(`{"phone":"9876543210","password":"Secr3t!"}`)
		req, rec := newRequest(http.MethodPost, "/api/auth/login", body)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var res echoapi.LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if res.Token == "" {
			t.Error("token missing from response")
		}
		if res.User.Phone != "9876543210" {
			t.Errorf("user.Phone = %q; want %q", res.User.Phone, "9876543210")
		}
		if res.User.LastLogin.IsZero() {
			t.Error("LastLogin not set on login")
		}
	})
}

func Test_authApi_refreshToken(t *testing.T) {
	env := newTestEnv(t)

	usr := createUser(t, env.usrRepo, "Asha", "9876543210", user.RoleResident, "", true)
	naughty := createUser(t, env.usrRepo, "Gone", "9876500000", user.RoleResident, "", false)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
		{
			name: "Inactive user not allowed", token: getToken(t, naughty),
			wantCode: http.StatusForbidden, wantData: marshalObj(t, httpErr{Error: "account deactivated"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/api/auth/token-refresh", tt.token)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Token refreshed", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/auth/token-refresh", getToken(t, usr))
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var res echoapi.TokenResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if res.Token == "" {
			t.Error("token missing from response")
		}
	})
}
