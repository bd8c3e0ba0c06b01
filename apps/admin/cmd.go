package main

import (
	"context"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/NicoleRU22/Studynest/core"
	"github.com/NicoleRU22/Studynest/core/dashboard"
	"github.com/NicoleRU22/Studynest/core/user"
	"github.com/NicoleRU22/Studynest/storage/database"
)

var (
	readPasswordFunc  = term.ReadPassword      // mockable
	runMigrationsFunc = database.RunMigrations // mockable

	errEmptyPassword = errors.New("password cannot be empty")
)

type commandLine struct {
	db       *sqlx.DB
	validate *validator.Validate
	usrSvc   user.ServiceInterface
	dashSvc  *dashboard.Service
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "StudyNest administration commands",
		SilenceUsage: true,
	}
	root.AddCommand(cli.migrateCmd(), cli.addUserCmd(), cli.resetPasswordCmd(), cli.digestCmd())
	return root
}

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [ARGS...]",
		Short: "Run database migrations (up, up-by-one, up-to, down, down-to, redo, reset, status, version)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrationsFunc(cli.db, args[0], args[1:]...)
		},
	}
}

func (cli *commandLine) addUserCmd() *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create an active user; the password is prompted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pwd, err := promptPassword(cmd)
			if err != nil {
				return err
			}
			nu := user.NewUser{Name: name, Email: email, Password: pwd, PasswordConfirm: pwd}
			if err := nu.Validate(cli.validate); err != nil {
				return err
			}
			usr, err := cli.usrSvc.Register(context.Background(), nu)
			if err != nil {
				return err
			}
			cmd.Printf("user %s created (%s)\n", usr.Email, usr.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "the user's full name")
	cmd.Flags().StringVar(&email, "email", "", "the user's email address")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (cli *commandLine) resetPasswordCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "resetpassword",
		Short: "Reset a user's password; the new password is prompted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			usr, err := cli.usrSvc.GetByEmail(ctx, core.CleanString(email, true /* lower */))
			if err != nil {
				return err
			}
			pwd, err := promptPassword(cmd)
			if err != nil {
				return err
			}
			if _, err = cli.usrSvc.SetPassword(ctx, usr, pwd); err != nil {
				return err
			}
			cmd.Printf("password of %s reset\n", usr.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "the user's email address")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (cli *commandLine) digestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digest",
		Short: "Email every active user the deadlines of the next days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := cli.dashSvc.SendDigests(context.Background())
			if err != nil {
				return err
			}
			cmd.Printf("%d digest(s) sent\n", n)
			return nil
		},
	}
}

func promptPassword(cmd *cobra.Command) (string, error) {
	cmd.Print("Enter password:")
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	cmd.Println()
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	if len(pwd) == 0 {
		return "", errEmptyPassword
	}
	return string(pwd), nil
}

