package ratelimiter

import (
	"context"
	"sync"
)

type FakeRateLimiter struct {
	ReturnIsAllowed bool
	CheckedKeys     []string
	lock            sync.Mutex
}

func NewFakeRateLimiter(isAllowed bool) *FakeRateLimiter {
	return &FakeRateLimiter{ReturnIsAllowed: isAllowed}
}

func (l *FakeRateLimiter) CheckLimit(ctx context.Context, key string, limit Limit) Result {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.CheckedKeys = append(l.CheckedKeys, key)
	return Result{IsAllowed: l.ReturnIsAllowed}
}
