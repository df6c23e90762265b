package auth

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewInMemoryBlacklistStore(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	assert.NotNil(t, store)
	assert.NotNil(t, store.blacklist)
}

func TestAddToBlacklist(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	token := "test-token"
	exp := time.Now().Add(time.Hour)

	err := store.AddToBlacklist(token, exp)
	assert.NoError(t, err)

	store.mu.RLock()
	expTime, exists := store.blacklist[token]
	store.mu.RUnlock()

	assert.True(t, exists)
	assert.Equal(t, exp, expTime)
}

func TestIsBlacklisted(t *testing.T) {
	store := NewInMemoryBlacklistStore()

	isBlacklisted, err := store.IsBlacklisted("never-seen")
	assert.NoError(t, err)
	assert.False(t, isBlacklisted)

	err = store.AddToBlacklist("revoked-token", time.Now().Add(time.Hour))
	assert.NoError(t, err)

	isBlacklisted, err = store.IsBlacklisted("revoked-token")
	assert.NoError(t, err)
	assert.True(t, isBlacklisted)
}

func TestCleanUpExpired(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	expired := time.Now().Add(-time.Hour)
	valid := time.Now().Add(time.Hour)

	assert.NoError(t, store.AddToBlacklist("expired-1", expired))
	assert.NoError(t, store.AddToBlacklist("expired-2", expired))
	assert.NoError(t, store.AddToBlacklist("still-valid", valid))

	store.CleanUpExpired()

	store.mu.RLock()
	defer store.mu.RUnlock()
	assert.Len(t, store.blacklist, 1)
	_, exists := store.blacklist["still-valid"]
	assert.True(t, exists)
}

func TestCleanUpExpired_EmptyStore(t *testing.T) {
	store := NewInMemoryBlacklistStore()

	assert.NotPanics(t, func() {
		store.CleanUpExpired()
	})
}

func TestAddToBlacklist_UpdateExpiration(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	token := "test-token"

	exp1 := time.Now().Add(time.Hour)
	assert.NoError(t, store.AddToBlacklist(token, exp1))

	exp2 := time.Now().Add(2 * time.Hour)
	assert.NoError(t, store.AddToBlacklist(token, exp2))

	store.mu.RLock()
	expTime := store.blacklist[token]
	store.mu.RUnlock()
	assert.Equal(t, exp2, expTime)
}

func TestConcurrentAccess(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	exp := time.Now().Add(time.Hour)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			err := store.AddToBlacklist(fmt.Sprintf("token-%d", id), exp)
			assert.NoError(t, err)
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	for i := 0; i < 10; i++ {
		go func(id int) {
			_, err := store.IsBlacklisted(fmt.Sprintf("token-%d", id))
			assert.NoError(t, err)
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}
