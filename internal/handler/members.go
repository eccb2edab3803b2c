package handler

import (
	"log/slog"
	"net/http"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/darkchannels/studio/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

var memberConstraints = map[string]string{
	"members_username_key":       "nome de usuário já existe",
	"members_owner_id_email_key": "já existe um membro com este e-mail",
}

func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"fullName" validate:"required,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Function string `json:"function" validate:"required,max=50"`
		Username string `json:"username" validate:"omitempty,min=3,max=50"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	username := req.Username
	if username == "" {
		username = utils.GenerateUsernameFromName(req.FullName)
	}

	// 生成随机密码，通过邮件发送给成员
	password := utils.GenerateRandomPassword(h.config.NewMember.PasswordLength)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	member := &domain.Member{
		OwnerID:      h.ownerID(r),
		Username:     username,
		PasswordHash: string(hashedPassword),
		FullName:     req.FullName,
		Email:        req.Email,
		Function:     req.Function,
		IsActive:     true,
	}

	if err := h.repository.CreateMember(member); err != nil {
		h.writeError(w, r, err, memberConstraints)
		return
	}

	if err := h.publishMail(domain.MailMessage{
		Type: domain.MailCreateMember,
		To:   member.Email,
		Data: domain.MemberCredentialsMailData{
			FullName: member.FullName,
			Username: member.Username,
			Password: password,
			Studio:   h.config.Email.StudioName,
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "membro criado, as credenciais foram enviadas por e-mail", member)
}

func (h *Handler) GetAllMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.repository.GetAllMembers(h.ownerID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "membros obtidos com sucesso", members)
}

func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(MemberInfoCtx).(*domain.Member)
	h.successResponse(w, r, "membro obtido com sucesso", member)
}

func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(MemberInfoCtx).(*domain.Member)

	var req struct {
		FullName *string `json:"fullName" validate:"omitempty,max=100"`
		Email    *string `json:"email" validate:"omitempty,email"`
		Function *string `json:"function" validate:"omitempty,max=50"`
		IsActive *bool   `json:"isActive"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if req.FullName != nil {
		member.FullName = *req.FullName
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.Function != nil {
		member.Function = *req.Function
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateMember(member); err != nil {
		h.writeError(w, r, err, memberConstraints)
		return
	}

	// 停用成员时立即让其所有会话失效
	if !member.IsActive {
		h.revokeMemberSessions(member)
	}

	h.successResponse(w, r, "membro atualizado com sucesso", member)
}

func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(MemberInfoCtx).(*domain.Member)

	if err := h.repository.DeleteMember(member.ID); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	h.revokeMemberSessions(member)

	h.successResponse(w, r, "membro excluído com sucesso", nil)
}

func (h *Handler) ResetMemberPassword(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(MemberInfoCtx).(*domain.Member)

	password := utils.GenerateRandomPassword(h.config.NewMember.PasswordLength)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	member.PasswordHash = string(hashedPassword)
	if err := h.repository.UpdateMember(member); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	h.revokeMemberSessions(member)

	if err := h.publishMail(domain.MailMessage{
		Type: domain.MailResetMember,
		To:   member.Email,
		Data: domain.MemberCredentialsMailData{
			FullName: member.FullName,
			Username: member.Username,
			Password: password,
			Studio:   h.config.Email.StudioName,
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "nova senha enviada por e-mail", nil)
}

// revokeMemberSessions 失败只记录日志，会话最终会按 TTL 过期
func (h *Handler) revokeMemberSessions(member *domain.Member) {
	ctx, cancel := h.redisContext()
	defer cancel()

	if err := h.sessions.RevokeAll(ctx, member.ID); err != nil {
		slog.Warn("falha ao revogar sessões do membro", "member", member.ID, "error", err)
	}
}
