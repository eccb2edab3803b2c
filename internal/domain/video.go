package domain

import (
	"time"

	"github.com/google/uuid"
)

// VideoStage 是看板上的生产阶段
type VideoStage string

const (
	StageIdeas   VideoStage = "ideias"
	StageScript  VideoStage = "roteiro"
	StageAudio   VideoStage = "audio"
	StageEditing VideoStage = "edicao"
	StageReady   VideoStage = "pronto"
)

var Stages = []VideoStage{StageIdeas, StageScript, StageAudio, StageEditing, StageReady}

func (s VideoStage) Valid() bool {
	switch s {
	case StageIdeas, StageScript, StageAudio, StageEditing, StageReady:
		return true
	default:
		return false
	}
}

func (s VideoStage) Title() string {
	switch s {
	case StageIdeas:
		return "Início de Produção"
	case StageScript:
		return "Roteiro"
	case StageAudio:
		return "Áudio"
	case StageEditing:
		return "Edição"
	case StageReady:
		return "Pronto para Agendar"
	default:
		return ""
	}
}

// Next 返回下一个阶段，最后一个阶段返回 false
func (s VideoStage) Next() (VideoStage, bool) {
	switch s {
	case StageIdeas:
		return StageScript, true
	case StageScript:
		return StageAudio, true
	case StageAudio:
		return StageEditing, true
	case StageEditing:
		return StageReady, true
	default:
		return "", false
	}
}

// CanMoveTo 负责人可以把视频拖到任意合法阶段，但不能原地移动
func (s VideoStage) CanMoveTo(next VideoStage) bool {
	return s.Valid() && next.Valid() && s != next
}

// MemberCanAdvance 成员只能把剪辑完成的视频标记为就绪
func (s VideoStage) MemberCanAdvance() (VideoStage, bool) {
	switch s {
	case StageEditing:
		return StageReady, true
	case StageIdeas, StageScript, StageAudio, StageReady:
		return "", false
	default:
		return "", false
	}
}

type Video struct {
	ID             uuid.UUID  `json:"id"`
	OwnerID        uuid.UUID  `json:"ownerID"`
	ChannelID      uuid.UUID  `json:"channelID"`
	ChannelName    string     `json:"channelName"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Stage          VideoStage `json:"stage"`
	AssigneeID     *uuid.UUID `json:"assigneeID"`
	AssigneeName   string     `json:"assigneeName"`
	ThumbnailReady bool       `json:"thumbnailReady"`
	DriveLink      string     `json:"driveLink"`
	CreatedAt      time.Time  `json:"createdAt"`
	Version        int32      `json:"-"`
}

// ReadyToSchedule 只有就绪且缩略图完成的视频才能排期
func (v *Video) ReadyToSchedule() bool {
	return v.Stage == StageReady && v.ThumbnailReady
}
