package commands

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/darkchannels/studio/backend/internal/scheduler"
	"github.com/spf13/cobra"
)

func newChannelsCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channels",
		Short: "Operações sobre canais",
	}

	var owner string
	list := &cobra.Command{
		Use:   "list",
		Short: "Lista os canais e a agenda de postagem de cada um",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if owner == "" {
				owner = deps.DefaultOwner
			}
			user, err := deps.Store.GetUserByEmail(owner)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("usuário %s não encontrado", owner)
				}
				return err
			}

			channels, err := deps.Store.GetAllChannels(user.ID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNOME\tFREQUÊNCIA\tDIAS\tHORÁRIOS")
			for _, ch := range channels {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					ch.ID,
					ch.Name,
					ch.PostingFrequency(),
					strings.Join(scheduler.WeekdayNames(ch.PostingDays), ", "),
					strings.Join(ch.PostingTimes, ", "),
				)
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&owner, "owner", "", "e-mail do responsável pelos canais")

	cmd.AddCommand(list)
	return cmd
}
