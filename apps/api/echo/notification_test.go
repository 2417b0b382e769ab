package echoapi_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/swachhapp/swachh/core/user"
)

func Test_notificationApi_query(t *testing.T) {
	env := newTestEnv(t)

	resident := createUser(t, env.usrRepo, "Asha", "9876543210", user.RoleResident, "", true)
	token := getToken(t, resident)

	now := time.Now().UTC()
	mine := createNotification(t, env.ntfRepo, resident.Phone, "Bill due", now.Add(-2*time.Hour))
	broadcast := createNotification(t, env.ntfRepo, "", "Holiday", now.Add(-1*time.Hour))
	createNotification(t, env.ntfRepo, "9876599999", "Not yours", now)

	tests := []httpTest{
		{
			name: "Auth required", path: "/api/notifications/" + resident.Phone,
			wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken),
		},
		{
			name: "Own plus broadcasts, newest first", path: "/api/notifications/" + resident.Phone, token: token,
			wantCode: http.StatusOK, wantData: marshalList(t, broadcast, mine),
		},
		{
			name: "No notifications", path: "/api/notifications/9876512345", token: token,
			wantCode: http.StatusOK, wantData: marshalList(t, broadcast),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
