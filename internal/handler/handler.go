package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/darkchannels/studio/backend/internal/cache"
	"github.com/darkchannels/studio/backend/internal/config"
	"github.com/darkchannels/studio/backend/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ptbr_translations "github.com/go-playground/validator/v10/translations/pt_BR"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

// MailPublisher 由 *amqp.Channel 实现
type MailPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  Repository
	translator  ut.Translator
	mailChannel MailPublisher
	redisClient *redis.Client
	sessions    *cache.SessionStore
	slotLocker  *cache.SlotLocker
	metrics     *metrics.Metrics
	location    *time.Location
	now         func() time.Time

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo Repository, mailCh MailPublisher, rdb *redis.Client, m *metrics.Metrics) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	ptBR := pt_BR.New()
	uni := ut.New(ptBR, ptBR)
	trans, _ := uni.GetTranslator("pt_BR")
	if err := ptbr_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}
	if err := registerCustomValidations(validate, trans); err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		sessions:    cache.NewSessionStore(rdb, time.Duration(cfg.MemberSession.Expiration)*time.Second),
		slotLocker:  cache.NewSlotLocker(rdb, time.Duration(cfg.Scheduling.BookingLockTTL)*time.Second),
		metrics:     m,
		location:    loc,
		now:         time.Now,

		Mux: chi.NewRouter(),
	}, nil
}

// today 返回工作室时区的当天零点
func (h *Handler) today() time.Time {
	y, m, d := h.now().In(h.location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, h.location)
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/healthz", h.Healthz)
	h.Mux.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	// 负责人认证
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 成员认证，使用 redis 会话而不是 JWT
	h.Mux.Route("/member-auth", func(r chi.Router) {
		r.Post("/login", h.MemberLogin)
		r.Post("/logout", h.MemberLogout)
	})

	h.Mux.Route("/member", func(r chi.Router) {
		r.Use(h.memberAuth)
		r.Get("/me", h.GetMemberMe)
		r.Get("/videos", h.GetMemberVideos)
		r.Route("/videos/{id}", func(r chi.Router) {
			r.Use(h.memberVideo)
			r.Post("/advance", h.AdvanceMemberVideo)
			r.Patch("/drive-link", h.UpdateMemberDriveLink)
		})
	})

	// 以下 API 必须要在负责人登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/channels", func(r chi.Router) {
			r.Post("/", h.CreateChannel)
			r.Get("/", h.GetAllChannels)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.channel)
				r.Get("/", h.GetChannel)
				r.Patch("/", h.UpdateChannel)
				r.Delete("/", h.DeleteChannel)
				r.Get("/next-slot", h.GetNextSlot)
				r.Get("/availability", h.GetAvailability)
			})
		})

		r.Route("/ideas", func(r chi.Router) {
			r.Post("/", h.CreateIdea)
			r.Get("/", h.GetIdeas)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.idea)
				r.Get("/", h.GetIdea)
				r.Patch("/", h.UpdateIdea)
				r.Delete("/", h.DeleteIdea)
				r.Post("/approve", h.ApproveIdea)
				r.Post("/reject", h.RejectIdea)
				r.Post("/revert", h.RevertIdea)
			})
		})

		r.Route("/videos", func(r chi.Router) {
			r.Post("/", h.CreateVideo)
			r.Get("/", h.GetVideos)
			r.Get("/board", h.GetBoard)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.video)
				r.Get("/", h.GetVideo)
				r.Patch("/", h.UpdateVideo)
				r.Delete("/", h.DeleteVideo)
				r.Post("/move", h.MoveVideo)
				r.Post("/back-to-ideas", h.SendVideoBackToIdeas)
				r.Post("/schedule", h.ScheduleVideo)
			})
		})

		r.Route("/scheduled-videos", func(r chi.Router) {
			r.Get("/", h.GetScheduledVideos)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.scheduledVideo)
				r.Get("/", h.GetScheduledVideo)
				r.Delete("/", h.UnscheduleVideo)
				r.Post("/publish", h.PublishScheduledVideo)
			})
		})

		r.Route("/members", func(r chi.Router) {
			r.Post("/", h.CreateMember)
			r.Get("/", h.GetAllMembers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.member)
				r.Get("/", h.GetMember)
				r.Patch("/", h.UpdateMember)
				r.Delete("/", h.DeleteMember)
				r.Post("/reset-password", h.ResetMemberPassword)
			})
		})

		r.Route("/competitors", func(r chi.Router) {
			r.Post("/", h.CreateCompetitor)
			r.Get("/", h.GetAllCompetitors)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.competitor)
				r.Get("/", h.GetCompetitor)
				r.Patch("/", h.UpdateCompetitor)
				r.Delete("/", h.DeleteCompetitor)
				r.Post("/favorite", h.ToggleCompetitorFavorite)
			})
		})
	})
}
