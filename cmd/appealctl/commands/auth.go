package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"appealapp/src/dto"
)

func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func registerCmd() *cobra.Command {
	var email, phone string
	cmd := &cobra.Command{
		Use:   "register [username]",
		Short: "Create an account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			username := ""
			if len(args) > 0 {
				username = args[0]
			}
			var err error
			if username == "" {
				if username, err = promptLine("Username: "); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = promptLine("Email: "); err != nil {
					return err
				}
			}
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			c := newClient()
			err = c.Register(context.Background(), dto.RegisterDTO{
				Username: username,
				Password: password,
				Email:    email,
				Phone:    phone,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Account %s created, run `appealctl login` next\n", username)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().StringVar(&phone, "phone", "", "contact phone")
	return cmd
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login [username]",
		Short: "Authenticate and store the session token",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			username := ""
			if len(args) > 0 {
				username = args[0]
			}
			var err error
			if username == "" {
				if username, err = promptLine("Username: "); err != nil {
					return err
				}
			}
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			c := newClient()
			if err := c.Login(context.Background(), username, password); err != nil {
				return err
			}
			token, _ := c.Session().Token()
			if err := saveToken(token); err != nil {
				return err
			}
			fmt.Printf("Signed in as %s\n", c.Session().Username())
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session token",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := dropToken(); err != nil {
				return err
			}
			fmt.Println("Signed out")
			return nil
		},
	}
}
