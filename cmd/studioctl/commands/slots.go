package commands

import (
	"database/sql"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/darkchannels/studio/backend/internal/scheduler"
	"github.com/darkchannels/studio/backend/internal/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newSlotsCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Consulta horários de postagem",
	}
	cmd.AddCommand(newSlotsNextCmd(deps), newSlotsWeekCmd(deps))
	return cmd
}

func loadChannel(deps *Deps, arg string) (*domain.Channel, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return nil, fmt.Errorf("ID de canal inválido: %q", arg)
	}
	ch, err := deps.Store.GetChannelByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("canal %s não encontrado", id)
		}
		return nil, err
	}
	return ch, nil
}

func (d *Deps) startDate(value string) (time.Time, error) {
	if value == "" {
		return d.today(), nil
	}
	return utils.ParseDate(value, d.Location)
}

func newSlotsNextCmd(deps *Deps) *cobra.Command {
	var from string
	var horizon int
	var long bool

	cmd := &cobra.Command{
		Use:   "next <channel-id>",
		Short: "Mostra o próximo horário livre do canal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := loadChannel(deps, args[0])
			if err != nil {
				return err
			}
			start, err := deps.startDate(from)
			if err != nil {
				return err
			}

			days := deps.HorizonDays
			switch {
			case horizon > 0:
				days = horizon
			case long:
				days = deps.LongHorizonDays
			}
			if days > deps.LongHorizonDays {
				return fmt.Errorf("o período de busca deve estar entre 1 e %d dias", deps.LongHorizonDays)
			}

			occupied, err := deps.Store.GetOccupiedSlots(ch.ID, start, start.AddDate(0, 0, days-1))
			if err != nil {
				return err
			}

			slot, ok := scheduler.NextAvailable(ch.Schedule(), occupied, start, days)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", ch.Name, domain.ErrNoSlotAvailable)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", ch.Name, scheduler.FormatSlot(slot))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "data inicial no formato AAAA-MM-DD (padrão: hoje)")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "quantidade de dias a pesquisar")
	cmd.Flags().BoolVar(&long, "long", false, "usa o período longo de busca")
	return cmd
}

func newSlotsWeekCmd(deps *Deps) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "week <channel-id>",
		Short: "Mostra a disponibilidade dos próximos 7 dias",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := loadChannel(deps, args[0])
			if err != nil {
				return err
			}
			start, err := deps.startDate(from)
			if err != nil {
				return err
			}

			occupied, err := deps.Store.GetOccupiedSlots(ch.ID, start, start.AddDate(0, 0, 6))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "HORÁRIO\tSITUAÇÃO")
			for _, slot := range scheduler.WeekAvailability(ch.Schedule(), start, occupied) {
				status := "livre"
				if !slot.Available {
					status = "ocupado"
				}
				fmt.Fprintf(w, "%s\t%s\n", scheduler.FormatSlot(slot), status)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "data inicial no formato AAAA-MM-DD (padrão: hoje)")
	return cmd
}
