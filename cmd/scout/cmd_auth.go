package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/startupscout/showcase/internal/core/service"
)

var (
	authEmail    string
	authPassword string
	authUsername string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	Long: `Log in with email and password. When --password is omitted it is read
from the first line of standard input.`,
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an email account and log in",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored credential",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in member",
	RunE:  runWhoami,
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	password, err := passwordFrom(cmd.InOrStdin())
	if err != nil {
		return err
	}
	sess, err := a.sessions.Login(cmd.Context(), authEmail, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", sess.User.DisplayName())
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	password, err := passwordFrom(cmd.InOrStdin())
	if err != nil {
		return err
	}
	sess, err := a.sessions.Register(cmd.Context(), authEmail, authUsername, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s\n", sess.User.DisplayName())
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	a.sessions.Logout(cmd.Context())
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	sess := a.sessions.Current()
	if sess == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
		return nil
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), sess.User)
	}
	if err := printUser(cmd.OutOrStdout(), &sess.User); err != nil {
		return err
	}
	left := cfg.Session.TTL - sess.Age(time.Now())
	fmt.Fprintf(cmd.OutOrStdout(), "  session expires in %s\n", left.Round(time.Minute))
	return nil
}

func passwordFrom(in io.Reader) (string, error) {
	if authPassword != "" {
		return authPassword, nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// expiryNotice prints what happened to a session that ended mid-command.
func expiryNotice(w io.Writer, ev service.SessionEvent) {
	if ev.Kind != service.EventExpired {
		return
	}
	if ev.LoginRequired {
		fmt.Fprintln(w, "Your session expired. Run `scout login` to continue.")
		return
	}
	fmt.Fprintln(w, "Your session expired; continuing anonymously.")
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "account email")
		c.Flags().StringVar(&authPassword, "password", "", "account password (read from stdin when empty)")
		_ = c.MarkFlagRequired("email")
	}
	registerCmd.Flags().StringVar(&authUsername, "username", "", "public username")
	_ = registerCmd.MarkFlagRequired("username")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
