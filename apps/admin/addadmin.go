package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/swachhapp/swachh/core"
	"github.com/swachhapp/swachh/core/user"
)

// addAdmin creates an admin account, or promotes an existing user to admin.
func (cli *commandLine) addAdmin(name, phone, pwd string) error {
	ctx := context.Background()
	name = core.CleanString(name)
	phone = core.CleanString(phone)

	usr, err := cli.usrRepo.GetUserByPhone(ctx, phone)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		now := time.Now().UTC()
		usr = user.User{
			ID:        uuid.New().String(),
			Name:      name,
			Phone:     phone,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		usr.Role = user.RoleAdmin
		if err := usr.SetPassword(pwd); err != nil {
			return err
		}
		_, err = cli.usrRepo.CreateUser(ctx, usr)
		return err
	}

	usr.Role = user.RoleAdmin
	usr.IsActive = true
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	usr.UpdatedAt = time.Now().UTC()
	_, err = cli.usrRepo.UpdateUser(ctx, usr)
	return err
}
