package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix   = "user:%d"
	ItemKeyPrefix   = "item:%d"
	ImpactKeyPrefix = "impact:%d"
)

const (
	UserTTL   = 5 * time.Minute
	ItemTTL   = 2 * time.Minute
	ImpactTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ItemKey(itemID uint) string {
	return fmt.Sprintf(ItemKeyPrefix, itemID)
}

func ImpactKey(userID uint) string {
	return fmt.Sprintf(ImpactKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateItem(ctx context.Context, itemID uint) {
	Invalidate(ctx, ItemKey(itemID))
}

func InvalidateImpact(ctx context.Context, userID uint) {
	Invalidate(ctx, ImpactKey(userID))
}
