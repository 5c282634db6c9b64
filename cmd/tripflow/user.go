package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tripflow/tripflow/internal/util"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a local account",
	Long: `Create a local credential row.

Credentials are stored in clear text in the on-device database and usernames
are not checked for uniqueness. This matches the mobile app's local signup
and offers no real security; do not reuse a password that matters.`,
	RunE: runSignup,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify a local account",
	RunE:  runLogin,
}

func init() {
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)

	signupCmd.Flags().StringP("username", "u", "", "username")
	signupCmd.Flags().StringP("password", "p", "", "password (prompted when omitted)")
	loginCmd.Flags().StringP("username", "u", "", "username")
	loginCmd.Flags().StringP("password", "p", "", "password (prompted when omitted)")
}

// readPassword returns the --password flag value, prompting on the terminal
// without echo when the flag was not given.
func readPassword(cmd *cobra.Command) (string, error) {
	password, _ := cmd.Flags().GetString("password")
	if password != "" {
		return password, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}

func runSignup(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", util.ErrInvalidInput)
	}

	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.CreateUser(username, password); err != nil {
		return err
	}

	util.SuccessLog("Account created for %s", username)
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", util.ErrInvalidInput)
	}

	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ok, err := db.AuthenticateUser(username, password)
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("invalid username or password")
	}

	util.SuccessLog("Welcome back, %s", username)
	return nil
}
