package cli

import (
	"fmt"

	"github.com/rodrigoanasco/nwHacks/backend/services"

	"github.com/spf13/cobra"
)

func NewResetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-progress [user-id]",
		Short: "Zero all progress entries of one user",
		Long: `Sets attempts to 0 and passed to false on every entry of the given user.
Without an argument the anonymous user is reset. Intended for development
and demo databases.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(opts, true)
			if err != nil {
				return err
			}
			defer env.Close()

			userID := env.cfg.AnonymousUserID
			if len(args) == 1 {
				userID = args[0]
			}

			catalog := services.NewCatalog(env.db)
			store := services.NewProgressStore(env.db, catalog, env.logger)
			n, err := store.Reset(cmd.Context(), userID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "reset %d entries for %s\n", n, userID)
			return nil
		},
	}
}
