package seed

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Store 是写入演示数据所需的最小持久层
type Store interface {
	CreateMember(member *domain.Member) error
	CreateChannel(ch *domain.Channel) error
	CreateIdea(idea *domain.Idea) error
	CreateVideo(v *domain.Video) error
}

type demoChannel struct {
	name, link, niche, subNiche, microNiche, color string
	days                                           []time.Weekday
	times                                          []string
}

var demoChannels = []demoChannel{
	{
		name: "Money Minds", link: "https://youtube.com/@moneyminds",
		niche: "Finanças", subNiche: "Investimentos", microNiche: "Ações & Fundos", color: "#4ECDC4",
		days:  []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		times: []string{"09:00", "14:00", "19:00"},
	},
	{
		name: "Tech Insights", link: "https://youtube.com/@techinsights",
		niche: "Tecnologia", subNiche: "Inteligência Artificial", microNiche: "IA no Cotidiano", color: "#45B7D1",
		days:  []time.Weekday{time.Tuesday, time.Thursday},
		times: []string{"10:00", "16:00"},
	},
	{
		name: "Lifestyle Hub", link: "https://youtube.com/@lifestylehub",
		niche: "Lifestyle", subNiche: "Produtividade", microNiche: "Hábitos Saudáveis", color: "#96CEB4",
		days:  []time.Weekday{time.Sunday, time.Wednesday},
		times: []string{"08:00", "20:00"},
	},
}

var demoMembers = []struct{ fullName, function string }{
	{"Ana Silva", "Roteirista"},
	{"Carlos Santos", "Editor"},
	{"Pedro Costa", "Narrador"},
	{"Maria Oliveira", "Gerente"},
}

// channel 与 assignee 都是上面两个列表中的下标
var demoVideos = []struct {
	title     string
	stage     domain.VideoStage
	channel   int
	assignee  int
	thumbnail bool
}{
	{"10 Segredos do Sucesso Financeiro", domain.StageIdeas, 0, 0, false},
	{"Como Ganhar Dinheiro Online", domain.StageScript, 0, 1, true},
	{"Investimentos para Iniciantes", domain.StageAudio, 0, 0, false},
	{"Criptomoedas: Guia Completo", domain.StageEditing, 1, 2, true},
	{"Inteligência Artificial no Cotidiano", domain.StageReady, 1, 3, true},
	{"Como Criar Rotina Produtiva", domain.StageReady, 2, 0, true},
	{"IA no Marketing Digital", domain.StageReady, 1, 1, false},
}

var demoIdeas = []struct {
	title, description string
	channel            int
	status             domain.IdeaStatus
}{
	{"15 Dicas de Economia Doméstica", "Como economizar dinheiro no dia a dia com dicas práticas", 0, domain.IdeaPending},
	{"Tendências de IA", "As principais tendências de inteligência artificial", 1, domain.IdeaPending},
	{"Mindfulness para Produtividade", "Como usar mindfulness para ser mais produtivo", 2, domain.IdeaApproved},
}

type Summary struct {
	Channels int
	Members  int
	Ideas    int
	Videos   int
}

// SeedDemoData 为指定负责人写入一套完整的演示数据
func SeedDemoData(store Store, ownerID uuid.UUID, memberPassword, emailDomain string) (Summary, error) {
	summary := Summary{}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(memberPassword), bcrypt.DefaultCost)
	if err != nil {
		return summary, err
	}

	channels := make([]*domain.Channel, 0, len(demoChannels))
	for _, dc := range demoChannels {
		ch := &domain.Channel{
			OwnerID:      ownerID,
			Name:         dc.name,
			Link:         dc.link,
			Language:     "Português",
			Niche:        dc.niche,
			SubNiche:     dc.subNiche,
			MicroNiche:   dc.microNiche,
			Color:        dc.color,
			LogoURL:      "/placeholder.svg",
			PostingDays:  dc.days,
			PostingTimes: dc.times,
		}
		if err := store.CreateChannel(ch); err != nil {
			return summary, fmt.Errorf("canal %s: %w", dc.name, err)
		}
		channels = append(channels, ch)
		summary.Channels++
	}

	members := make([]*domain.Member, 0, len(demoMembers))
	for _, dm := range demoMembers {
		username := strings.ToLower(strings.Fields(dm.fullName)[0])
		m := &domain.Member{
			OwnerID:      ownerID,
			Username:     username,
			PasswordHash: string(passwordHash),
			FullName:     dm.fullName,
			Email:        username + "@" + emailDomain,
			Function:     dm.function,
			IsActive:     true,
		}
		if err := store.CreateMember(m); err != nil {
			return summary, fmt.Errorf("membro %s: %w", dm.fullName, err)
		}
		members = append(members, m)
		summary.Members++
	}

	for _, dv := range demoVideos {
		v := &domain.Video{
			OwnerID:        ownerID,
			ChannelID:      channels[dv.channel].ID,
			ChannelName:    channels[dv.channel].Name,
			Title:          dv.title,
			Stage:          dv.stage,
			AssigneeID:     &members[dv.assignee].ID,
			AssigneeName:   members[dv.assignee].FullName,
			ThumbnailReady: dv.thumbnail,
		}
		if err := store.CreateVideo(v); err != nil {
			return summary, fmt.Errorf("vídeo %s: %w", dv.title, err)
		}
		summary.Videos++
	}

	for _, di := range demoIdeas {
		idea := &domain.Idea{
			OwnerID:     ownerID,
			ChannelID:   channels[di.channel].ID,
			Title:       di.title,
			Description: di.description,
			Status:      di.status,
		}
		if err := store.CreateIdea(idea); err != nil {
			return summary, fmt.Errorf("ideia %s: %w", di.title, err)
		}
		summary.Ideas++
	}

	slog.Info("dados de demonstração inseridos",
		slog.Int("channels", summary.Channels),
		slog.Int("members", summary.Members),
		slog.Int("videos", summary.Videos),
		slog.Int("ideas", summary.Ideas),
	)

	return summary, nil
}
