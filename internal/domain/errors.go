package domain

import "errors"

var (
	ErrInvalidStageTransition = errors.New("transição de etapa inválida")
	ErrInvalidIdeaTransition  = errors.New("transição de status inválida")
	ErrVideoNotReady          = errors.New("o vídeo precisa estar pronto e com thumbnail finalizada")
	ErrSlotOutsideSchedule    = errors.New("o horário não faz parte da agenda do canal")
	ErrSlotOccupied           = errors.New("o horário já está ocupado")
	ErrNoSlotAvailable        = errors.New("nenhum horário disponível dentro do período de busca")
	ErrSlotLocked             = errors.New("o horário está sendo reservado por outra pessoa")
)
