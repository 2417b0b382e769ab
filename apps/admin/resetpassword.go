package main

import "context"

// resetPassword sets a new password for the user identified by phone.
func (cli *commandLine) resetPassword(phone, pwd string) error {
	ctx := context.Background()
	usr, err := cli.usrSvc.GetByPhone(ctx, phone)
	if err != nil {
		return err
	}
	_, err = cli.usrSvc.SetPassword(ctx, usr, pwd)
	return err
}
