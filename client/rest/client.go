// Package rest is the typed HTTP client for the Swachh API. It mirrors the
// server routes one method per endpoint and carries the bearer token once the
// user has logged in.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/swachhapp/swachh/core/collection"
	"github.com/swachhapp/swachh/core/feedback"
	"github.com/swachhapp/swachh/core/notification"
	"github.com/swachhapp/swachh/core/payment"
	"github.com/swachhapp/swachh/core/report"
	"github.com/swachhapp/swachh/core/user"
)

// StatusError is returned for any non-2xx API response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %s", http.StatusText(e.Code))
	}
	return fmt.Sprintf("api: %s", e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	se, ok := errors.Cause(err).(*StatusError)
	return ok && se.Code == http.StatusNotFound
}

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshalling request body")
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Code: resp.StatusCode}
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			se.Message = payload.Error
			if se.Message == "" {
				se.Message = payload.Message
			}
		}
		return se
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrapf(err, "decoding %s %s response", method, path)
		}
	}
	return nil
}

// LoginResponse is the payload of the auth endpoints.
type LoginResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, phone, password string) (LoginResponse, error) {
	body := map[string]string{"phone": phone, "password": password}
	var res LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &res)
	return res, err
}

func (c *Client) Register(ctx context.Context, nu user.NewUser) (LoginResponse, error) {
	var res LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", nu, &res)
	return res, err
}

func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	var res struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/token-refresh", nil, &res)
	return res.Token, err
}

func (c *Client) AddCollector(ctx context.Context, nc user.NewCollector) (user.User, error) {
	var usr user.User
	err := c.do(ctx, http.MethodPost, "/api/collectors/add", nc, &usr)
	return usr, err
}

func (c *Client) Collectors(ctx context.Context, adminPhone string) ([]user.User, error) {
	var usrs []user.User
	err := c.do(ctx, http.MethodGet, "/api/collectors/"+adminPhone, nil, &usrs)
	return usrs, err
}

func (c *Client) Houses(ctx context.Context, adminPhone string) ([]user.User, error) {
	var res struct {
		Users []user.User `json:"users"`
	}
	err := c.do(ctx, http.MethodGet, "/api/admin/houses/"+adminPhone, nil, &res)
	return res.Users, err
}

func (c *Client) AddHouse(ctx context.Context, nh user.NewHouse) (user.User, error) {
	var usr user.User
	err := c.do(ctx, http.MethodPost, "/api/admin/add-house", nh, &usr)
	return usr, err
}

func (c *Client) Reports(ctx context.Context) ([]report.Report, error) {
	var rpts []report.Report
	err := c.do(ctx, http.MethodGet, "/api/admin/reports", nil, &rpts)
	return rpts, err
}

func (c *Client) UpdateReport(ctx context.Context, id string, ar report.AssignReport) (report.Report, error) {
	var rpt report.Report
	err := c.do(ctx, http.MethodPut, "/api/admin/reports/"+id, ar, &rpt)
	return rpt, err
}

func (c *Client) CreateReport(ctx context.Context, nr report.NewReport) (report.Report, error) {
	var rpt report.Report
	err := c.do(ctx, http.MethodPost, "/api/reports", nr, &rpt)
	return rpt, err
}

func (c *Client) ReportsByPhone(ctx context.Context, phone string) ([]report.Report, error) {
	var rpts []report.Report
	err := c.do(ctx, http.MethodGet, "/api/reports/"+phone, nil, &rpts)
	return rpts, err
}

func (c *Client) CollectorHomes(ctx context.Context, phone string) ([]collection.Assignment, error) {
	var homes []collection.Assignment
	err := c.do(ctx, http.MethodGet, "/api/collector/homes/"+phone, nil, &homes)
	return homes, err
}

func (c *Client) MarkCollected(ctx context.Context, homeID string) (collection.Assignment, error) {
	body := map[string]string{"status": collection.StatusCollected}
	var home collection.Assignment
	err := c.do(ctx, http.MethodPut, "/api/collector/collect/"+homeID, body, &home)
	return home, err
}

func (c *Client) CurrentPayment(ctx context.Context, phone string) (payment.Payment, error) {
	var pmt payment.Payment
	err := c.do(ctx, http.MethodGet, "/api/payments/current/"+phone, nil, &pmt)
	return pmt, err
}

func (c *Client) PaymentHistory(ctx context.Context, phone string) ([]payment.Payment, error) {
	var pmts []payment.Payment
	err := c.do(ctx, http.MethodGet, "/api/payments/history/"+phone, nil, &pmts)
	return pmts, err
}

func (c *Client) CreatePayment(ctx context.Context, np payment.NewPayment) (payment.Payment, error) {
	var pmt payment.Payment
	err := c.do(ctx, http.MethodPost, "/api/payments", np, &pmt)
	return pmt, err
}

func (c *Client) Notifications(ctx context.Context, phone string) ([]notification.Notification, error) {
	var ntfs []notification.Notification
	err := c.do(ctx, http.MethodGet, "/api/notifications/"+phone, nil, &ntfs)
	return ntfs, err
}

func (c *Client) SendNotification(ctx context.Context, nn notification.NewNotification) (notification.Notification, error) {
	var ntf notification.Notification
	err := c.do(ctx, http.MethodPost, "/api/notifications", nn, &ntf)
	return ntf, err
}

func (c *Client) SubmitFeedback(ctx context.Context, nf feedback.NewFeedback) (feedback.Feedback, error) {
	var fb feedback.Feedback
	err := c.do(ctx, http.MethodPost, "/api/feedback", nf, &fb)
	return fb, err
}

func (c *Client) HelpTopics(ctx context.Context) ([]feedback.FAQ, error) {
	var faqs []feedback.FAQ
	err := c.do(ctx, http.MethodGet, "/api/help", nil, &faqs)
	return faqs, err
}

func (c *Client) AskQuestion(ctx context.Context, q feedback.Question) error {
	return c.do(ctx, http.MethodPost, "/api/help", q, nil)
}
