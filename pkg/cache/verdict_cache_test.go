package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modshield/modshield/pkg/cache"
	"github.com/modshield/modshield/pkg/moderation"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestKey_DiffersByClassifierAndText(t *testing.T) {
	assert.NotEqual(t, cache.Key("strict", "text"), cache.Key("loose", "text"))
	assert.NotEqual(t, cache.Key("strict", "text a"), cache.Key("strict", "text b"))
	assert.Equal(t, cache.Key("strict", "text"), cache.Key("strict", "text"))
}

func TestVerdictCache_GetMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	vc := cache.NewVerdictCacheWithClient(db, time.Minute, quietLogger())

	key := cache.Key("strict", "some text")
	mock.ExpectGet(key).RedisNil()

	_, ok := vc.Get(context.Background(), key)

	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerdictCache_SetThenGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	vc := cache.NewVerdictCacheWithClient(db, time.Minute, quietLogger())

	key := cache.Key("strict", "violent text")
	raw := `{"Hit":true,"Category":"Violence"}`
	mock.ExpectSet(key, raw, time.Minute).SetVal("OK")
	mock.ExpectGet(key).SetVal(raw)

	vc.Set(context.Background(), key, moderation.Hit("Violence"))

	verdict, ok := vc.Get(context.Background(), key)
	require.True(t, ok)
	assert.True(t, verdict.Hit)
	assert.Equal(t, "Violence", verdict.Category)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerdictCache_ReadFailureIsAMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	vc := cache.NewVerdictCacheWithClient(db, time.Minute, quietLogger())

	key := cache.Key("strict", "text")
	mock.ExpectGet(key).SetErr(errors.New("redis down"))

	_, ok := vc.Get(context.Background(), key)

	assert.False(t, ok)
}

func TestVerdictCache_CorruptEntryIsAMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	vc := cache.NewVerdictCacheWithClient(db, time.Minute, quietLogger())

	key := cache.Key("strict", "text")
	mock.ExpectGet(key).SetVal("{not json")

	_, ok := vc.Get(context.Background(), key)

	assert.False(t, ok)
}
