package commands

import (
	"time"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/darkchannels/studio/backend/internal/scheduler"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Store 是命令行工具需要的只读查询
type Store interface {
	GetUserByEmail(email string) (*domain.User, error)
	GetAllChannels(ownerID uuid.UUID) ([]*domain.Channel, error)
	GetChannelByID(id uuid.UUID) (*domain.Channel, error)
	GetOccupiedSlots(channelID uuid.UUID, from, to time.Time) ([]scheduler.OccupiedSlot, error)
}

type Deps struct {
	Store           Store
	Location        *time.Location
	Now             func() time.Time
	DefaultOwner    string
	HorizonDays     int
	LongHorizonDays int
}

func (d *Deps) today() time.Time {
	now := d.Now().In(d.Location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, d.Location)
}

func NewRootCmd(deps *Deps) *cobra.Command {
	root := &cobra.Command{
		Use:   "studioctl",
		Short: "Consulta canais e horários de postagem do estúdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newChannelsCmd(deps), newSlotsCmd(deps))
	return root
}
