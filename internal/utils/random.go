package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/darkchannels/studio/backend/internal/scheduler"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var commonFirstNames = []string{
	"Ana", "Carlos", "Pedro", "Maria", "João", "Beatriz", "Lucas", "Júlia", "Rafael", "Letícia",
	"Gabriel", "Larissa", "Mateus", "Camila", "Thiago", "Fernanda", "Vinícius", "Patrícia", "André", "Bruna",
}
var commonSurnames = []string{
	"Silva", "Santos", "Oliveira", "Souza", "Costa", "Pereira", "Rodrigues", "Almeida", "Nascimento", "Lima",
	"Araújo", "Fernandes", "Carvalho", "Gomes", "Martins", "Rocha", "Ribeiro", "Conceição", "Barbosa", "Melo",
}

func GenerateRandomName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	last := commonSurnames[rand.Intn(len(commonSurnames))]
	return first + " " + last
}

var functions = []string{"Roteirista", "Editor", "Narrador", "Thumbmaker", "Gerente"}

func GenerateRandomFunction() string {
	return functions[rand.Intn(len(functions))]
}

var digits = "0123456789"

// GenerateUsernameFromName 把姓名转换为不含重音的用户名，例如 "João Conceição" -> "joao.conceicao42"
func GenerateUsernameFromName(fullName string) string {
	parts := strings.Fields(scheduler.Fold(fullName))
	username := strings.Join(parts, ".")

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomMember(ownerID uuid.UUID, password string, emailDomainName string) (*domain.Member, error) {
	fullName := GenerateRandomName()
	username := GenerateUsernameFromName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	member := &domain.Member{
		OwnerID:      ownerID,
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Function:     GenerateRandomFunction(),
		IsActive:     true,
	}

	return member, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(26)]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

// 用 Fisher-Yates 洗牌算法来生成随机的发布日
func GenerateRandomPostingDays() []time.Weekday {
	days := []time.Weekday{0, 1, 2, 3, 4, 5, 6}

	for i := len(days) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		days[i], days[j] = days[j], days[i]
	}

	n := rand.Intn(len(days)) + 1

	return days[:n]
}

// GenerateRandomPostingTimes 生成 1~3 个互不相同的整点时段，保持随机顺序
func GenerateRandomPostingTimes() []string {
	hours := rand.Perm(15) // 08:00 ~ 22:00
	n := rand.Intn(3) + 1

	times := make([]string, 0, n)
	for _, h := range hours[:n] {
		times = append(times, fmt.Sprintf("%02d:00", h+8))
	}
	return times
}

var niches = []string{"Finanças", "Tecnologia", "Lifestyle", "Curiosidades", "História", "Saúde", "Motivação"}
var colors = []string{"#4ECDC4", "#45B7D1", "#96CEB4", "#FF6B6B", "#FFD93D", "#6C5CE7"}

func GenerateRandomChannel(ownerID uuid.UUID) *domain.Channel {
	name := "Canal " + GenerateRandomID(3, 3)
	return &domain.Channel{
		OwnerID:      ownerID,
		Name:         name,
		Link:         "https://youtube.com/@" + strings.ToLower(strings.ReplaceAll(name, " ", "")),
		Language:     "Português",
		Niche:        niches[rand.Intn(len(niches))],
		Color:        colors[rand.Intn(len(colors))],
		PostingDays:  GenerateRandomPostingDays(),
		PostingTimes: GenerateRandomPostingTimes(),
	}
}

func GenerateRandomIdea(ch *domain.Channel) *domain.Idea {
	return &domain.Idea{
		OwnerID:     ch.OwnerID,
		ChannelID:   ch.ID,
		Title:       "Ideia " + GenerateRandomID(4, 2),
		Description: "Descrição " + GenerateRandomID(20, 5),
		Status:      domain.IdeaPending,
	}
}

func GenerateRandomVideo(ch *domain.Channel, members []*domain.Member) *domain.Video {
	v := &domain.Video{
		OwnerID:        ch.OwnerID,
		ChannelID:      ch.ID,
		Title:          "Vídeo " + GenerateRandomID(4, 2),
		Stage:          domain.Stages[rand.Intn(len(domain.Stages))],
		ThumbnailReady: rand.Intn(2) == 0,
	}
	if len(members) > 0 {
		v.AssigneeID = &members[rand.Intn(len(members))].ID
	}
	return v
}
