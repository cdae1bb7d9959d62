package main

import (
	"fmt"
	"strings"

	"github.com/ogc16/FitnessApp/internal/navigation"
	"github.com/ogc16/FitnessApp/internal/screens"
	"github.com/ogc16/FitnessApp/internal/workout"
	"github.com/spf13/cobra"
)

func newFeedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Show the community feed, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, closeGuard, err := a.openTabs(cmd.Context(), navigation.RouteTabs)
			if err != nil {
				return err
			}
			defer closeGuard()

			screen := screens.NewFeed(a.client)
			if err := screen.Load(cmd.Context()); err != nil {
				return err
			}
			screen.Render(a.out)
			return nil
		},
	}
}

func newPostCommand(a *app) *cobra.Command {
	var form screens.NewPost

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Share a workout",
		Long:  "Share a workout. Activity types: " + strings.Join(workout.ActivityTypeNames(), ", ") + ".",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stack, closeGuard, err := a.openTabs(cmd.Context(), navigation.RouteTabs)
			if err != nil {
				return err
			}
			defer closeGuard()
			stack.Push(navigation.RouteNewPost)

			screen := screens.NewNewPost(a.client, stack)
			screen.ActivityType = form.ActivityType
			screen.Duration = form.Duration
			screen.Distance = form.Distance
			screen.Content = form.Content
			screen.ImagePath = form.ImagePath
			if err := screen.Submit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Posted")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&form.ActivityType, "activity", "", "activity type")
	flags.StringVar(&form.Duration, "duration", "", "duration (minutes)")
	flags.StringVar(&form.Distance, "distance", "", "distance (km, optional)")
	flags.StringVar(&form.Content, "content", "", "how was your workout? (optional)")
	flags.StringVar(&form.ImagePath, "image", "", "photo to attach (optional)")
	return cmd
}

func newWorkoutsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "workouts",
		Short: "Show workout types and your recent workouts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, closeGuard, err := a.openTabs(cmd.Context(), navigation.RouteWorkouts)
			if err != nil {
				return err
			}
			defer closeGuard()

			screen := screens.NewWorkouts(a.client)
			screen.Load(cmd.Context())
			screen.Render(a.out)
			return nil
		},
	}
}

func newProfileCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show your profile and activity overview",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, closeGuard, err := a.openTabs(cmd.Context(), navigation.RouteProfile)
			if err != nil {
				return err
			}
			defer closeGuard()

			screen := screens.NewProfile(a.client)
			if err := screen.Load(cmd.Context()); err != nil {
				return err
			}
			screen.Render(a.out)
			return nil
		},
	}
}
