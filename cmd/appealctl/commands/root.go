// Package commands holds the appealctl subcommands.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"appealapp/src/client"
)

var serverURL string

// Root builds the appealctl command tree.
func Root() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "appealctl",
		Short: "Command line front end for the appeal service",
		Long: `appealctl talks to an appeal service instance.

Available commands:
  register - Create an account
  login    - Authenticate and store the session token
  logout   - Drop the stored session token
  submit   - Walk the complaint submission wizard
  list     - List your complaints
  review   - Admin review of all complaints`,
		SilenceUsage: true,
	}

	defaultServer := os.Getenv("APPEAL_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer,
		"appeal service base URL (or APPEAL_SERVER)")

	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(submitCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(reviewCmd())

	return rootCmd
}

func tokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".appealctl"), nil
}

func saveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token+"\n"), 0o600)
}

func dropToken() error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// newClient builds a client and signs it in from the stored token when one
// is present.
func newClient() *client.Client {
	c := client.New(serverURL)
	path, err := tokenPath()
	if err != nil {
		return c
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return c
	}
	if err := c.Session().SignIn(token); err != nil {
		fmt.Fprintln(os.Stderr, "stored token is unusable, run `appealctl login`")
	}
	return c
}

// signedInClient fails early when no live session is stored.
func signedInClient() (*client.Client, error) {
	c := newClient()
	if !c.Session().SignedIn() {
		return nil, client.ErrNotSignedIn
	}
	return c, nil
}
