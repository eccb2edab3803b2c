package handler

type ContextKey string

var (
	RoleCtxKey           ContextKey = "role"
	OwnerIDCtxKey        ContextKey = "ownerID"
	MyInfoCtx            ContextKey = "myInfo"
	MemberSessionCtx     ContextKey = "memberSession"
	MemberCtx            ContextKey = "member"
	ChannelCtx           ContextKey = "channel"
	IdeaCtx              ContextKey = "idea"
	VideoCtx             ContextKey = "video"
	ScheduledVideoCtx    ContextKey = "scheduledVideo"
	MemberInfoCtx        ContextKey = "memberInfo"
	CompetitorChannelCtx ContextKey = "competitorChannel"
)
