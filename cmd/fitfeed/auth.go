package main

import (
	"fmt"

	"github.com/ogc16/FitnessApp/internal/navigation"
	"github.com/ogc16/FitnessApp/internal/screens"
	"github.com/spf13/cobra"
)

func newLoginCommand(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stack, closeGuard := a.open(cmd.Context(), navigation.RouteLogin)
			defer closeGuard()

			if !stack.Current().InAuthArea() {
				user, err := a.client.GetUser()
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Already signed in as %s\n", user.Email)
				return nil
			}

			screen := screens.NewLogin(a.client, stack)
			screen.Email = email
			screen.Password = password
			if err := screen.Submit(cmd.Context()); err != nil {
				screen.Render(a.out)
				return err
			}
			fmt.Fprintf(a.out, "Signed in as %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCommand(a *app) *cobra.Command {
	var form screens.Register

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and fitness profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stack, closeGuard := a.open(cmd.Context(), navigation.RouteRegister)
			defer closeGuard()

			if !stack.Current().InAuthArea() {
				fmt.Fprintln(a.out, "Already signed in, run `fitfeed logout` first")
				return nil
			}

			screen := screens.NewRegister(a.client, stack)
			screen.Email = form.Email
			screen.Password = form.Password
			screen.Weight = form.Weight
			screen.Height = form.Height
			screen.Age = form.Age
			screen.FitnessGoal = form.FitnessGoal
			if err := screen.Submit(cmd.Context()); err != nil {
				screen.Render(a.out)
				return err
			}
			fmt.Fprintf(a.out, "Welcome, %s\n", form.Email)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&form.Email, "email", "", "account email")
	flags.StringVar(&form.Password, "password", "", "account password")
	flags.StringVar(&form.Weight, "weight", "", "weight (kg)")
	flags.StringVar(&form.Height, "height", "", "height (cm)")
	flags.StringVar(&form.Age, "age", "", "age")
	flags.StringVar(&form.FitnessGoal, "goal", "", "what's your fitness goal?")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
