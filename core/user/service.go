package user

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/swachhapp/swachh/core"
)

var (
	// errors
	ErrNotFound    = errors.New("user not found")
	ErrPhoneExists = errors.New("a user with this phone number already exists")
)

type (
	Repository interface {
		CheckPhoneUniqueness(ctx context.Context, phone string, excludedUsers ...User) error
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByPhone(ctx context.Context, phone string) (User, error)
		// FilterUsers applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of User.Name or User.Phone.
		FilterUsers(ctx context.Context, filter QueryFilter) ([]User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
		DeleteUser(ctx context.Context, id string) error
		SetLastLogin(ctx context.Context, usr User) (User, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

func (svc *Service) checkUniqueness(phone string, exclUsers ...User) error {
	if err := svc.repo.CheckPhoneUniqueness(context.Background(), phone, exclUsers...); err != nil {
		if err == ErrPhoneExists {
			return core.NewValidationError(err, core.FieldError{Field: "phone", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Register creates a new resident account and sends a welcome email when an
// email address was provided.
func (svc *Service) Register(ctx context.Context, nu NewUser) (User, error) {
	usr, err := svc.create(ctx, User{
		Name:  nu.Name,
		Phone: nu.Phone,
		Email: nu.Email,
		Role:  RoleResident,
		Area:  nu.Area,
	}, nu.Password)
	if err != nil {
		return User{}, err
	}
	svc.sendWelcomeEmail(usr)
	return usr, nil
}

// CreateCollector creates a collector account scoped to the admin who added it.
func (svc *Service) CreateCollector(ctx context.Context, nc NewCollector) (User, error) {
	return svc.create(ctx, User{
		Name:       nc.Name,
		Phone:      nc.Phone,
		Role:       RoleCollector,
		AdminPhone: nc.AdminPhone,
	}, nc.Password)
}

// CreateHouse creates the resident account backing a house added by an admin.
func (svc *Service) CreateHouse(ctx context.Context, nh NewHouse) (User, error) {
	return svc.create(ctx, User{
		Name:        nh.Name,
		Phone:       nh.Phone,
		Role:        RoleResident,
		Area:        nh.Area,
		HouseNumber: nh.HouseNumber,
		AdminPhone:  nh.AdminPhone,
	}, nh.Password)
}

func (svc *Service) create(ctx context.Context, usr User, pwd string) (User, error) {
	now := time.Now().UTC()
	usr.ID = uuid.New().String()
	usr.IsActive = true
	usr.CreatedAt = now
	usr.UpdatedAt = now
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, errors.Wrap(err, "setting password")
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

// Delete removes the account; it frees the phone number for re-registration.
func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteUser(ctx, id)
}

func (svc *Service) GetByPhone(ctx context.Context, phone string) (User, error) {
	return svc.repo.GetUserByPhone(ctx, core.CleanString(phone))
}

// Collectors returns all collectors added by the given admin.
func (svc *Service) Collectors(ctx context.Context, adminPhone string) ([]User, error) {
	return svc.repo.FilterUsers(ctx, QueryFilter{Role: RoleCollector, AdminPhone: core.CleanString(adminPhone)})
}

// Houses returns all house residents registered by the given admin.
func (svc *Service) Houses(ctx context.Context, adminPhone string) ([]User, error) {
	return svc.repo.FilterUsers(ctx, QueryFilter{Role: RoleResident, AdminPhone: core.CleanString(adminPhone)})
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]User, error) {
	filter.Clean()
	return svc.repo.FilterUsers(ctx, filter)
}

func (svc *Service) SetLastLogin(ctx context.Context, usr User) (User, error) {
	usr.LastLogin = time.Now().UTC()
	return svc.repo.SetLastLogin(ctx, usr)
}

func (svc *Service) SetPassword(ctx context.Context, usr User, pwd string) (User, error) {
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, errors.Wrap(err, "setting password")
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *Service) sendWelcomeEmail(usr User) {
	if svc.mailSvc == nil || usr.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "Welcome to " + core.Conf.AppName,
		BodyStr: fmt.Sprintf(
			"Hi %s,\r\n\r\nYour waste collection account for area %s is ready. "+
				"Use your phone number %s to log in.\r\n", usr.Name, usr.Area, usr.Phone),
	})
}
