package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in and store a session token",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Register a new account",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegister,
}

var registerSlackChannel string

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd)

	registerCmd.Flags().StringVar(&registerSlackChannel, "slack-channel", "", "Slack channel for notifications")
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	if err := a.sessions.Login(cmd.Context(), args[0], password); err != nil {
		return err
	}

	fmt.Println("Logged in.")
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	if err := a.sessions.Register(cmd.Context(), args[0], password, registerSlackChannel); err != nil {
		return err
	}

	// Registration never opens a session; the token comes from login.
	fmt.Println("Registered. Run 'tdo login' to log in.")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}

	if err := a.sessions.Logout(); err != nil {
		return err
	}

	fmt.Println("Logged out.")
	return nil
}

// readPassword prompts on a terminal without echoing. When stdin is not a
// terminal the password is read as a single line, which keeps scripted use
// working.
func readPassword(prompt string) (string, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, prompt)
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
