package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"lms_backend/internals/configs"
	"lms_backend/internals/constants"
	database "lms_backend/internals/databases"
	userModel "lms_backend/internals/features/users/user/model"
	helperAuth "lms_backend/internals/helpers/auth"
)

var errUnknownRole = errors.New("role must be teacher or student")

func (cli *commandLine) migrate() error {
	return database.AutoMigrate(cli.db)
}

// resetAdmin restores the default teacher: the account is created when
// missing, otherwise its password and role are put back to the defaults.
func (cli *commandLine) resetAdmin() error {
	ctx := context.Background()
	hash, err := helperAuth.HashPassword(configs.DefaultTeacherPassword)
	if err != nil {
		return err
	}

	var u userModel.UserModel
	err = cli.db.WithContext(ctx).Where("user_name = ?", configs.DefaultTeacherUsername).First(&u).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		u = userModel.UserModel{
			UserName: configs.DefaultTeacherUsername,
			Password: hash,
			Role:     constants.RoleTeacher,
			FullName: configs.DefaultTeacherName,
		}
		if err := cli.db.WithContext(ctx).Create(&u).Error; err != nil {
			return pkgerrors.Wrap(err, "create default teacher")
		}
		fmt.Fprintf(cli.out, "created teacher %q\n", u.UserName)
		return nil
	case err != nil:
		return pkgerrors.Wrap(err, "find default teacher")
	}

	if err := cli.db.WithContext(ctx).Model(&u).Updates(map[string]any{
		"password": hash,
		"role":     constants.RoleTeacher,
	}).Error; err != nil {
		return pkgerrors.Wrap(err, "reset default teacher")
	}
	fmt.Fprintf(cli.out, "reset teacher %q\n", u.UserName)
	return nil
}

func (cli *commandLine) listUsers(role string) error {
	q := cli.db.Model(&userModel.UserModel{}).Order("role ASC, full_name ASC")
	if role != "" {
		if role != constants.RoleTeacher && role != constants.RoleStudent {
			return errUnknownRole
		}
		q = q.Where("role = ?", role)
	}
	var users []userModel.UserModel
	if err := q.Find(&users).Error; err != nil {
		return pkgerrors.Wrap(err, "list users")
	}

	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tROLE\tFULL NAME")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.UserName, u.Role, u.FullName)
	}
	return w.Flush()
}

func (cli *commandLine) resetPassword(uname, pwd string) error {
	ctx := context.Background()
	var u userModel.UserModel
	if err := cli.db.WithContext(ctx).Where("user_name = ?", uname).First(&u).Error; err != nil {
		return err
	}
	hash, err := helperAuth.HashPassword(pwd)
	if err != nil {
		return err
	}
	return cli.db.WithContext(ctx).Model(&u).Update("password", hash).Error
}
