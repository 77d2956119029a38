package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	ProfileKeyPrefix   = "profile:%d"
	SuggestedKeyPrefix = "suggested:%d"
)

const (
	UserTTL      = 5 * time.Minute
	ProfileTTL   = 5 * time.Minute
	SuggestedTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func SuggestedKey(userID uint) string {
	return fmt.Sprintf(SuggestedKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, ProfileKey(userID))
}

func InvalidateSuggested(ctx context.Context, userID uint) {
	Invalidate(ctx, SuggestedKey(userID))
}
