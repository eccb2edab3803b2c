package mailer

import (
	"encoding/json"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

type mailTemplate struct {
	file    string
	subject string
	data    func() any
}

var templates = map[domain.MailType]mailTemplate{
	domain.MailCreateMember: {
		file:    "new_member_email.html",
		subject: "%s - Acesso de membro",
		data:    func() any { return &domain.MemberCredentialsMailData{} },
	},
	domain.MailResetMember: {
		file:    "reset_member_password_email.html",
		subject: "%s - Nova senha",
		data:    func() any { return &domain.MemberCredentialsMailData{} },
	},
	domain.MailResetPassword: {
		file:    "reset_password_otp_email.html",
		subject: "%s - Redefinição de senha",
		data:    func() any { return &domain.ResetPasswordMailData{} },
	},
}

// Renderer 把队列中的消息渲染为待发送的邮件
type Renderer struct {
	from      string
	studio    string
	templates map[domain.MailType]*template.Template
}

// NewRenderer 在启动时解析全部模板，模板缺失会直接返回错误
func NewRenderer(templateDir, from, studio string) (*Renderer, error) {
	r := &Renderer{
		from:      from,
		studio:    studio,
		templates: make(map[domain.MailType]*template.Template, len(templates)),
	}

	for t, mt := range templates {
		tmpl, err := template.ParseFiles(filepath.Join(templateDir, mt.file))
		if err != nil {
			return nil, fmt.Errorf("não foi possível carregar o modelo %s: %w", mt.file, err)
		}
		r.templates[t] = tmpl
	}

	return r, nil
}

// Render 解析消息体。返回的错误都不可重试，调用方应直接丢弃该消息
func (r *Renderer) Render(body []byte) (*mail.Msg, error) {
	var envelope struct {
		Type domain.MailType `json:"type"`
		To   string          `json:"to"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("mensagem inválida: %w", err)
	}

	mt, ok := templates[envelope.Type]
	if !ok {
		return nil, fmt.Errorf("tipo de e-mail não suportado: %q", envelope.Type)
	}

	data := mt.data()
	if err := json.Unmarshal(envelope.Data, data); err != nil {
		return nil, fmt.Errorf("dados do e-mail inválidos: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(r.from); err != nil {
		return nil, err
	}
	if err := msg.To(envelope.To); err != nil {
		return nil, err
	}
	msg.Subject(fmt.Sprintf(mt.subject, r.studio))
	if err := msg.SetBodyHTMLTemplate(r.templates[envelope.Type], data); err != nil {
		return nil, err
	}

	return msg, nil
}
