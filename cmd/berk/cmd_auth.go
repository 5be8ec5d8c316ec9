package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/berktools/berk/internal/app"
	"github.com/berktools/berk/internal/auth"
	"github.com/berktools/berk/internal/config"
)

var errNotSignedIn = errors.New("not signed in; run `berk login`")

func (c *cli) loginCmd() *cobra.Command {
	var username string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the credential",
		Long: `Sign in to the backend and store the credential for later commands
and the interactive launcher.

Missing values are prompted for. Use --password-stdin to pipe the password.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			if strings.TrimSpace(username) == "" {
				fmt.Fprint(out, "Username: ")
				line, err := readLine(in)
				if err != nil {
					return fmt.Errorf("read username: %w", err)
				}
				username = line
			}

			var password string
			var err error
			if passwordStdin {
				password, err = readLine(in)
			} else {
				fmt.Fprint(out, "Password: ")
				password, err = readPassword(cmd.InOrStdin(), in)
				fmt.Fprintln(out)
			}
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}

			return c.withDeps(func(deps *app.Deps) error {
				res := auth.Login(cmd.Context(), deps.Client, deps.Store, username, password)
				if !res.OK {
					return res.Err
				}
				fmt.Fprintf(out, "Logged in as %s\n", res.Username)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credential and saved-words mirror",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withDeps(func(deps *app.Deps) error {
				auth.Logout(deps.Store)
				deps.Workflow.Reset()
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
				return nil
			})
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withDeps(func(deps *app.Deps) error {
				if !deps.Store.IsAuthenticated() {
					return errNotSignedIn
				}
				out := cmd.OutOrStdout()
				if deps.Config.AuthScheme == config.SchemeBasic {
					if named, ok := deps.Store.(interface{ Username() string }); ok {
						fmt.Fprintln(out, named.Username())
						return nil
					}
				}
				user, err := deps.Client.Me(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, user.Username)
				return nil
			})
		},
	}
}

// readLine returns one line without its terminator. A final line without a
// newline is accepted.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readPassword reads without echo when stdin is a terminal.
func readPassword(raw io.Reader, buffered *bufio.Reader) (string, error) {
	if f, ok := raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return readLine(buffered)
}
