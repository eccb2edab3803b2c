package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("sessão inválida ou expirada")

// SessionStore 保存成员登录会话，成员与负责人使用不同的令牌体系
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(token string) string {
	return fmt.Sprintf("member_session_%s", token)
}

func memberSessionsKey(memberID uuid.UUID) string {
	return fmt.Sprintf("member_sessions_of_%s", memberID)
}

// Create 生成新的会话令牌
func (s *SessionStore) Create(ctx context.Context, member *domain.Member) (string, *domain.MemberSession, error) {
	token := uuid.NewString()
	session := &domain.MemberSession{
		MemberID:  member.ID,
		OwnerID:   member.OwnerID,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", nil, err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, sessionKey(token), data, s.ttl)
	pipe.SAdd(ctx, memberSessionsKey(member.ID), token)
	pipe.Expire(ctx, memberSessionsKey(member.ID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", nil, err
	}

	return token, session, nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (*domain.MemberSession, error) {
	data, err := s.rdb.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	session := &domain.MemberSession{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	session, err := s.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, sessionKey(token))
	pipe.SRem(ctx, memberSessionsKey(session.MemberID), token)
	_, err = pipe.Exec(ctx)
	return err
}

// RevokeAll 在成员被停用、删除或重置密码时注销其全部会话
func (s *SessionStore) RevokeAll(ctx context.Context, memberID uuid.UUID) error {
	tokens, err := s.rdb.SMembers(ctx, memberSessionsKey(memberID)).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, sessionKey(token))
	}
	keys = append(keys, memberSessionsKey(memberID))

	return s.rdb.Del(ctx, keys...).Err()
}
