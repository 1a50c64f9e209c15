package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/jrsteele09/recyclemate/auth"
	"github.com/jrsteele09/recyclemate/guard"
	"github.com/jrsteele09/recyclemate/internal/errors"
	"github.com/jrsteele09/recyclemate/users"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newRootCommand(a *app) *cobra.Command {
	cobra.EnableTraverseRunHooks = true

	var banner bool
	root := &cobra.Command{
		Use:           "recyclemate",
		Short:         "RecycleMate client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if banner {
				displayAppname(a.cfg.GetAppName())
			}
		},
	}
	root.SetOut(a.out)
	root.SetIn(a.in)
	root.PersistentFlags().BoolVar(&banner, "banner", false, "print the application banner")

	root.AddCommand(
		newLoginCommand(a),
		newLogoutCommand(a),
		newSignupCommand(a),
		newWhoamiCommand(a),
		newRouteCommand(a),
		newPickupsCommand(a),
		newCollectorCommand(a),
		newAdminCommand(a),
	)
	return root
}

func newLoginCommand(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				p, err := a.readPassword()
				if err != nil {
					return err
				}
				password = p
			}
			session, err := a.auth.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			home, _ := guard.RoleHome(session.Role)
			fmt.Fprintf(a.out, "Signed in as %s\n", session.Role)
			a.navigate(home)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when empty)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// readPassword prompts without echo on a terminal and reads one line otherwise
func (a *app) readPassword() (string, error) {
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.out, "Password: ")
		p, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(p), nil
	}
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newSignupCommand(a *app) *cobra.Command {
	var form auth.SignupForm
	cmd := &cobra.Command{
		Use:       "signup <user|collector>",
		Short:     "Create a household or collector account",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(users.RoleUser), string(users.RoleCollector), string(users.RoleAdmin)},
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := users.ParseRole(args[0])
			if err != nil {
				return err
			}
			if role == users.RoleAdmin {
				a.navigate(guard.RouteSignupAdmin)
				return errors.ErrAdminSignupUnsupported
			}
			if form.Password == "" {
				p, err := a.readPassword()
				if err != nil {
					return err
				}
				form.Password = p
			}
			if form.ConfirmPassword == "" {
				form.ConfirmPassword = form.Password
			}
			profile, err := a.auth.SignUp(cmd.Context(), role, form)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created %s account for %s\n", profile.Role, profile.Email)
			if profile.Status == users.StatusPending {
				fmt.Fprintln(a.out, "An administrator must approve the account before you can sign in")
			}
			a.navigate(guard.RouteLogin)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Name, "name", "", "full name")
	cmd.Flags().StringVar(&form.Email, "email", "", "email address")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&form.Address, "address", "", "street address")
	cmd.Flags().StringVar(&form.Password, "password", "", "password (prompted when empty)")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "password again, defaults to --password")
	cmd.Flags().StringVar(&form.VehicleType, "vehicle", "", "vehicle type (collectors)")
	cmd.Flags().StringVar(&form.ServiceArea, "area", "", "service area (collectors)")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.auth.Logout()
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, role, err := a.auth.CurrentUser()
			if err != nil {
				a.navigate(guard.RouteLogin)
				return err
			}
			table := uitable.New()
			table.AddRow("NAME:", profile.Name)
			table.AddRow("EMAIL:", profile.Email)
			table.AddRow("ROLE:", role)
			if session, err := a.repo.Get(); err == nil {
				if exp, ok := session.ExpiresAt(); ok {
					table.AddRow("EXPIRES:", exp.Local().Format(time.RFC1123))
				}
			}
			fmt.Fprintln(a.out, table)
			return nil
		},
	}
}

func newRouteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "route <path>",
		Short: "Resolve a front end path against the route table and the current session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := a.router.Resolve(args[0])
			if res.Decision.Allowed() {
				color.New(color.FgGreen).Fprintf(a.out, "%s: render %s\n", res.Route.Path, res.Route.Page)
				return nil
			}
			color.New(color.FgRed).Fprintf(a.out, "%s: %s\n", res.Route.Path, res.Decision)
			a.navigate(res.Redirect())
			return nil
		},
	}
}
