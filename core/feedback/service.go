package feedback

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/swachhapp/swachh/core"
	"github.com/swachhapp/swachh/core/user"
)

type (
	Repository interface {
		CreateFeedback(ctx context.Context, fb Feedback) (Feedback, error)
		QueryFeedbackByPhone(ctx context.Context, phone string) ([]Feedback, error)
	}

	// UserGetter resolves the account behind a submission so the
	// acknowledgement mail can be addressed.
	UserGetter interface {
		GetByPhone(ctx context.Context, phone string) (user.User, error)
	}

	Service struct {
		repo    Repository
		users   UserGetter
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, users UserGetter, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, users: users, mailSvc: mailSvc}
}

// Create records the feedback and sends an acknowledgement mail when the
// submitting account has an email address.
func (svc *Service) Create(ctx context.Context, nf NewFeedback) (Feedback, error) {
	typ := nf.Type
	if typ == "" {
		typ = TypeFeedback
	}
	fb, err := svc.repo.CreateFeedback(ctx, Feedback{
		ID:        uuid.New().String(),
		Phone:     nf.Phone,
		Message:   nf.Message,
		Type:      typ,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return Feedback{}, err
	}
	svc.sendAckEmail(ctx, fb)
	return fb, nil
}

func (svc *Service) QueryByPhone(ctx context.Context, phone string) ([]Feedback, error) {
	return svc.repo.QueryFeedbackByPhone(ctx, phone)
}

// HelpTopics returns the static FAQ list shown on the help screen.
func (svc *Service) HelpTopics() []FAQ {
	return []FAQ{
		{ID: 1, Question: "How to pay my monthly fee?", Answer: "Go to the Billing screen and select a payment method."},
		{ID: 2, Question: "What happens if I miss a payment?", Answer: "You will receive notifications and late fees may apply."},
		{ID: 3, Question: "How can I report a missed waste collection?", Answer: "Go to Feedback and select 'Missed Collection' option."},
	}
}

func (svc *Service) sendAckEmail(ctx context.Context, fb Feedback) {
	if svc.users == nil || svc.mailSvc == nil {
		return
	}
	usr, err := svc.users.GetByPhone(ctx, fb.Phone)
	if err != nil || usr.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "We received your " + strings.ToLower(fb.Type),
		BodyStr: fmt.Sprintf(
			"Hi %s,\r\n\r\nThanks for reaching out. Our team will review your %s and get back to you.\r\n",
			usr.Name, strings.ToLower(fb.Type)),
	})
}
