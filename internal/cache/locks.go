package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// 只有持有者才能释放锁
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SlotLocker 在预约某个 (频道, 日期, 时段) 时加短期锁
// 数据库上的唯一约束仍然是最终的保障
type SlotLocker struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSlotLocker(rdb *redis.Client, ttl time.Duration) *SlotLocker {
	return &SlotLocker{rdb: rdb, ttl: ttl}
}

func slotLockKey(channelID uuid.UUID, date time.Time, t string) string {
	return fmt.Sprintf("slot_lock_%s_%s_%s", channelID, date.Format("2006-01-02"), t)
}

// Acquire 返回释放函数；锁已被占用时 ok 为 false
func (l *SlotLocker) Acquire(ctx context.Context, channelID uuid.UUID, date time.Time, t string) (release func(context.Context) error, ok bool, err error) {
	key := slotLockKey(channelID, date, t)
	token := uuid.NewString()

	ok, err = l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil || !ok {
		return nil, ok, err
	}

	release = func(ctx context.Context) error {
		return releaseScript.Run(ctx, l.rdb, []string{key}, token).Err()
	}

	return release, true, nil
}
