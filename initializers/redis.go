package initializers

import (
	"context"
	"hirex-backend/config"
	remindermark "hirex-backend/lib/utils/reminder-mark"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// InitRedis backs reminder marks with redis when REDIS_ADDR is set.
// Without it marks live in memory and a restart may resend a reminder.
func InitRedis(ctx context.Context) {
	if config.Conf.Redis.Addr == "" {
		log.Warn("redis is not configured, reminder marks are kept in memory")
		remindermark.Instance = remindermark.NewMemoryInstance(time.Now)
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.Conf.Redis.Addr,
		Password: config.Conf.Redis.Password,
		DB:       config.Conf.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.WithError(err).Error("redis ping failed, reminder marks are kept in memory")
		_ = client.Close()
		remindermark.Instance = remindermark.NewMemoryInstance(time.Now)
		return
	}
	remindermark.Instance = remindermark.NewRedisInstance(client)
	log.Info("redis client initialized")
}
