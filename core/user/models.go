package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/swachhapp/swachh/core"
)

// Roles
const (
	RoleResident  = "resident"
	RoleCollector = "collector"
	RoleAdmin     = "admin"
)

var AllRoles = []string{RoleResident, RoleCollector, RoleAdmin}

type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Phone        string    `json:"phone" db:"phone"`
	Email        string    `json:"email,omitempty" db:"email"`
	Role         string    `json:"role" db:"role"`
	Area         string    `json:"area,omitempty" db:"area"`
	HouseNumber  string    `json:"house_number,omitempty" db:"house_number"`
	AdminPhone   string    `json:"admin_phone,omitempty" db:"admin_phone"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login" db:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsResident() bool  { return u.Role == RoleResident }
func (u *User) IsCollector() bool { return u.Role == RoleCollector }
func (u *User) IsAdmin() bool     { return u.Role == RoleAdmin }

// NewUser contains information needed to register a new resident User.
type NewUser struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6"`
	Area     string `json:"area" validate:"required"`
}

func (nu *NewUser) Validate(svc *Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Phone = core.CleanString(nu.Phone)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Area = core.CleanString(nu.Area)

	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	return svc.checkUniqueness(nu.Phone)
}

// NewCollector contains information needed for an admin to add a collector.
type NewCollector struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required,phone"`
	Password   string `json:"password" validate:"required,min=6"`
	AdminPhone string `json:"adminPhone" validate:"required,phone"`
}

func (nc *NewCollector) Validate(svc *Service) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Phone = core.CleanString(nc.Phone)
	nc.AdminPhone = core.CleanString(nc.AdminPhone)

	if err := core.Validate.Struct(nc); err != nil {
		return err
	}
	return svc.checkUniqueness(nc.Phone)
}

// NewHouse contains information needed for an admin to register a house
// and its resident.
type NewHouse struct {
	Name           string `json:"name" validate:"required"`
	Phone          string `json:"phone" validate:"required,phone"`
	Password       string `json:"password" validate:"required,min=6"`
	Area           string `json:"area" validate:"required"`
	HouseNumber    string `json:"houseNumber" validate:"required"`
	AdminPhone     string `json:"adminPhone" validate:"required,phone"`
	CollectorPhone string `json:"collectorPhone" validate:"omitempty,phone"`
}

func (nh *NewHouse) Validate(svc *Service) error {
	nh.Name = core.CleanString(nh.Name)
	nh.Phone = core.CleanString(nh.Phone)
	nh.Area = core.CleanString(nh.Area)
	nh.HouseNumber = core.CleanString(nh.HouseNumber)
	nh.AdminPhone = core.CleanString(nh.AdminPhone)
	nh.CollectorPhone = core.CleanString(nh.CollectorPhone)

	if err := core.Validate.Struct(nh); err != nil {
		return err
	}
	return svc.checkUniqueness(nh.Phone)
}

// QueryFilter applies AND operation on available fields.
type QueryFilter struct {
	Role       string
	AdminPhone string
	Search     string
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Role == "" && qf.AdminPhone == "" && qf.Search == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
