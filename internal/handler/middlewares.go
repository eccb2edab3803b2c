package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/darkchannels/studio/backend/internal/cache"
	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenCookieName     = "__studio_token"
	memberSessionHeader = "X-Member-Session"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)

		// 使用路由模板作为指标标签，避免 ID 造成基数爆炸
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		h.metrics.ObserveRequest(r.Method, route, rw.StatusCode, duration)

		slog.Info("requisição processada", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // 这里如果用 slog 的话会很乱
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 从 cookie 中获取 token
		cookie, err := r.Cookie(tokenCookieName)
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.errorResponse(w, r, "usuário não autenticado")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		claims := &AuthClaims{}
		_, err = jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			h.errorResponse(w, r, "token inválido")
			return
		}

		ownerID, err := uuid.Parse(claims.Subject)
		if err != nil {
			h.errorResponse(w, r, "token inválido")
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, RoleCtxKey, claims.Role)
		ctx = context.WithValue(ctx, OwnerIDCtxKey, ownerID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) ownerID(r *http.Request) uuid.UUID {
	return r.Context().Value(OwnerIDCtxKey).(uuid.UUID)
}

func (h *Handler) myInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		myInfo, err := h.repository.GetUserByID(h.ownerID(r))
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "usuário não encontrado")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), MyInfoCtx, myInfo)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// memberAuth 校验成员会话令牌，并加载成员本人
func (h *Handler) memberAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(memberSessionHeader)
		if token == "" {
			h.errorResponse(w, r, "membro não autenticado")
			return
		}

		ctx, cancel := h.redisContext()
		defer cancel()

		session, err := h.sessions.Get(ctx, token)
		if err != nil {
			switch {
			case errors.Is(err, cache.ErrSessionNotFound):
				h.errorResponse(w, r, err.Error())
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		member, err := h.repository.GetMemberByID(session.MemberID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "membro não encontrado")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		if !member.IsActive {
			h.errorResponse(w, r, "acesso do membro desativado")
			return
		}

		reqCtx := context.WithValue(r.Context(), MemberSessionCtx, session)
		reqCtx = context.WithValue(reqCtx, MemberCtx, member)
		next.ServeHTTP(w, r.WithContext(reqCtx))
	})
}

// ownedResource 生成按 {id} 加载实体的中间件，只允许访问属于当前负责人的记录
func ownedResource[T any](h *Handler, key ContextKey, notFound string, get func(uuid.UUID) (T, error), owner func(T) uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				h.errorResponse(w, r, "ID inválido")
				return
			}

			entity, err := get(id)
			if err != nil {
				switch {
				case errors.Is(err, sql.ErrNoRows):
					h.errorResponse(w, r, notFound)
				default:
					h.internalServerError(w, r, err)
				}
				return
			}

			if owner(entity) != h.ownerID(r) {
				h.errorResponse(w, r, notFound)
				return
			}

			ctx := context.WithValue(r.Context(), key, entity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (h *Handler) channel(next http.Handler) http.Handler {
	return ownedResource(h, ChannelCtx, "canal não encontrado", h.repository.GetChannelByID,
		func(c *domain.Channel) uuid.UUID { return c.OwnerID })(next)
}

func (h *Handler) idea(next http.Handler) http.Handler {
	return ownedResource(h, IdeaCtx, "ideia não encontrada", h.repository.GetIdeaByID,
		func(i *domain.Idea) uuid.UUID { return i.OwnerID })(next)
}

func (h *Handler) video(next http.Handler) http.Handler {
	return ownedResource(h, VideoCtx, "vídeo não encontrado", h.repository.GetVideoByID,
		func(v *domain.Video) uuid.UUID { return v.OwnerID })(next)
}

func (h *Handler) scheduledVideo(next http.Handler) http.Handler {
	return ownedResource(h, ScheduledVideoCtx, "agendamento não encontrado", h.repository.GetScheduledVideoByID,
		func(v *domain.ScheduledVideo) uuid.UUID { return v.OwnerID })(next)
}

func (h *Handler) member(next http.Handler) http.Handler {
	return ownedResource(h, MemberInfoCtx, "membro não encontrado", h.repository.GetMemberByID,
		func(m *domain.Member) uuid.UUID { return m.OwnerID })(next)
}

func (h *Handler) competitor(next http.Handler) http.Handler {
	return ownedResource(h, CompetitorChannelCtx, "canal concorrente não encontrado", h.repository.GetCompetitorByID,
		func(c *domain.CompetitorChannel) uuid.UUID { return c.OwnerID })(next)
}

// memberVideo 成员只能操作分配给自己的视频
func (h *Handler) memberVideo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		member := r.Context().Value(MemberCtx).(*domain.Member)

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			h.errorResponse(w, r, "ID inválido")
			return
		}

		v, err := h.repository.GetVideoByID(id)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "vídeo não encontrado")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		if v.AssigneeID == nil || *v.AssigneeID != member.ID {
			h.errorResponse(w, r, "vídeo não encontrado")
			return
		}

		ctx := context.WithValue(r.Context(), VideoCtx, v)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
