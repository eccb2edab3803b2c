package domain

type MailType string

const (
	MailCreateMember  MailType = "create_member"
	MailResetMember   MailType = "reset_member_password"
	MailResetPassword MailType = "reset_password"
)

type MailMessage struct {
	Type MailType `json:"type"`
	To   string   `json:"to"`
	Data any      `json:"data"`
}

type MemberCredentialsMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
	Studio   string `json:"studio"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}
