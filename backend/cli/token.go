package cli

import (
	"fmt"
	"time"

	"github.com/rodrigoanasco/nwHacks/backend/utils"

	"github.com/spf13/cobra"
)

func NewTokenCommand(opts *RootOptions) *cobra.Command {
	var (
		givenName string
		email     string
		ttl       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Sign a development identity token",
		Long: `Prints an HS256 token signed with JWT_SECRET that the API accepts as the
given user. Useful against local servers without the identity provider.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(opts, false)
			if err != nil {
				return err
			}
			defer env.Close()

			token, err := utils.GenerateJWTToken(args[0], utils.IdentityClaims{
				GivenName: givenName,
				Email:     email,
			}, ttl, env.cfg)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&givenName, "name", "", "given name claim")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 72*time.Hour, "token lifetime")

	return cmd
}
