package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ogc16/FitnessApp/internal/client"
	"github.com/ogc16/FitnessApp/internal/config"
	"github.com/ogc16/FitnessApp/internal/logs"
	"github.com/ogc16/FitnessApp/internal/navigation"
	"github.com/spf13/cobra"
)

var errSignedOut = errors.New("not signed in, run `fitfeed login` first")

type app struct {
	client *client.Client
	out    io.Writer
}

// open starts the session guard on route and reports where it left the
// user. Redirects follow the same rules as the mobile app.
func (a *app) open(ctx context.Context, route navigation.Route) (*navigation.Stack, func()) {
	stack := navigation.NewStack(route)
	guard := navigation.NewGuard(a.client, stack)
	guard.Start(ctx)
	return stack, guard.Close
}

// openTabs is open for screens that need a session.
func (a *app) openTabs(ctx context.Context, route navigation.Route) (*navigation.Stack, func(), error) {
	stack, closeGuard := a.open(ctx, route)
	if stack.Current() == navigation.RouteLogin {
		closeGuard()
		return nil, nil, errSignedOut
	}
	return stack, closeGuard, nil
}

func newRootCommand() *cobra.Command {
	var (
		apiURL      string
		sessionFile string
		a           = &app{}
	)

	root := &cobra.Command{
		Use:           "fitfeed",
		Short:         "Share workouts with your fitness community",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.LoadClientConfig()
			if apiURL != "" {
				cfg.APIURL = apiURL
			}
			if sessionFile != "" {
				cfg.SessionFile = sessionFile
			}

			a.client = client.New(cfg.APIURL, client.NewFileSessionStore(cfg.SessionFile))
			a.out = cmd.OutOrStdout()
			logs.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend base URL (default $FITFEED_API_URL)")
	root.PersistentFlags().StringVar(&sessionFile, "session-file", "", "where the signed-in session is kept (default $FITFEED_SESSION_FILE)")

	root.AddCommand(
		newLoginCommand(a),
		newRegisterCommand(a),
		newFeedCommand(a),
		newPostCommand(a),
		newWorkoutsCommand(a),
		newProfileCommand(a),
		newLogoutCommand(a),
	)
	return root
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.client.SignOut(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Signed out")
			return nil
		},
	}
}
