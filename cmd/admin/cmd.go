package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"
	"gorm.io/gorm"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db  *gorm.DB
	out io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate                         - sync the database schema")
	fmt.Fprintln(cli.out, "  resetadmin                      - create or reset the default teacher account")
	fmt.Fprintln(cli.out, "  listusers [-role ROLE]          - list accounts, optionally filtered by role")
	fmt.Fprintln(cli.out, "  resetpassword -username USERNAME - reset a user's password")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	listUsersCmd := flag.NewFlagSet("listusers", flag.ExitOnError)
	listUsersRole := listUsersCmd.String("role", "", "Only list users with this role (teacher|student).")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The user's username. The password will be prompted next.")

	switch args[1] {
	case "migrate":
		return cli.migrate()

	case "resetadmin":
		return cli.resetAdmin()

	case "listusers":
		if err := listUsersCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listUsers(*listUsersRole)

	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordUname, string(pwd))

	default:
		cli.printUsage()
		return errHelp
	}
}
