package database

import (
	"context"
	"errors"
	"time"

	"next-blog/config"

	"gorm.io/gorm"
)

const defaultQueryTimeout = 5 * time.Second

// QueryTimeout 单次存储调用的超时时间，取配置值，配置未加载时用默认值
func QueryTimeout() time.Duration {
	if config.Conf != nil && config.Conf.Database.QueryTimeout > 0 {
		return time.Duration(config.Conf.Database.QueryTimeout) * time.Second
	}
	return defaultQueryTimeout
}

// WithQueryTimeout 为一次存储调用派生带超时的context
func WithQueryTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, QueryTimeout())
}

// RetryRead 只读查询失败时重试一次
// 记录不存在不算失败；写操作不允许走这里，避免重复副作用
func RetryRead(fn func() error) error {
	err := fn()
	if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return fn()
}
