package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/langkah-ekspor/exporo/internal/store"
)

var (
	regFirstName string
	regLastName  string
	regEmail     string
	regPhone     string
	regPassword  string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new user account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if regEmail == "" || regPassword == "" {
			return eris.New("user: --email and --password are required")
		}
		if len(regPassword) < 6 {
			return eris.New("user: password must be at least 6 characters")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		u, err := st.CreateUser(ctx, store.UserRegistration{
			FirstName: regFirstName,
			LastName:  regLastName,
			Email:     regEmail,
			Phone:     regPhone,
			Password:  regPassword,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Registered %s %s <%s> (id %s)\n", u.FirstName, u.LastName, u.Email, u.ID)
		return nil
	},
}

func init() {
	userRegisterCmd.Flags().StringVar(&regFirstName, "first-name", "", "first name")
	userRegisterCmd.Flags().StringVar(&regLastName, "last-name", "", "last name")
	userRegisterCmd.Flags().StringVar(&regEmail, "email", "", "email address")
	userRegisterCmd.Flags().StringVar(&regPhone, "phone", "", "phone number")
	userRegisterCmd.Flags().StringVar(&regPassword, "password", "", "password")

	userCmd.AddCommand(userRegisterCmd)
	rootCmd.AddCommand(userCmd)
}
