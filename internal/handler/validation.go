package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/darkchannels/studio/backend/internal/scheduler"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
)

// registerCustomValidations 注册 hhmm 与 weekday 两个标签及其葡语提示
func registerCustomValidations(validate *validator.Validate, trans ut.Translator) error {
	if err := validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := scheduler.ParseTimeOfDay(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	if err := validate.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, ok := scheduler.ParseWeekday(fl.Field().String())
		return ok
	}); err != nil {
		return err
	}

	messages := map[string]string{
		"hhmm":    "{0} deve estar no formato HH:MM",
		"weekday": "{0} deve ser um dia da semana válido",
	}
	for tag, text := range messages {
		err := validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(fe.Tag(), fe.Field())
			return t
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// decodeAndValidate 读取 JSON 并校验，失败时已经写好响应
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := h.readJSON(r, req); err != nil {
		h.badRequest(w, r, err)
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return false
	}
	return true
}

// writeError 把常见的持久层错误转换为响应
// constraints 将约束名映射到给用户看的提示
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, constraints map[string]string) {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		if msg, ok := constraints[pgErr.ConstraintName]; ok {
			h.errorResponse(w, r, msg)
			return
		}
		h.internalServerError(w, r, err)
	case errors.Is(err, sql.ErrNoRows):
		h.errorResponse(w, r, "o registro foi alterado por outra pessoa, tente novamente")
	default:
		h.internalServerError(w, r, err)
	}
}
