package regen

import (
	"testing"
	"time"
)

func TestKeyLock_SecondAcquireFails(t *testing.T) {
	l := NewKeyLock(time.Minute)

	if _, ok := l.Acquire("pack-1"); !ok {
		t.Fatal("first acquire failed")
	}
	if _, ok := l.Acquire("pack-1"); ok {
		t.Fatal("second acquire succeeded while held")
	}
	if _, ok := l.Acquire("pack-2"); !ok {
		t.Fatal("independent key blocked")
	}
}

func TestKeyLock_ReleaseFreesKey(t *testing.T) {
	l := NewKeyLock(time.Minute)

	token, _ := l.Acquire("pack-1")
	l.Release("pack-1", token)
	if _, ok := l.Acquire("pack-1"); !ok {
		t.Fatal("acquire after release failed")
	}
}

func TestKeyLock_ReleaseUnheldKeyIsSafe(t *testing.T) {
	l := NewKeyLock(time.Minute)
	l.Release("never-held", "no-token")
	if _, ok := l.Acquire("never-held"); !ok {
		t.Fatal("acquire failed after releasing an unheld key")
	}
}

func TestKeyLock_ExpiredHoldIsStealable(t *testing.T) {
	l := NewKeyLock(time.Minute)
	now := time.Now()
	l.clock = func() time.Time { return now }

	l.Acquire("pack-1")

	// Advance past the TTL; the hold is stale and a new caller takes over
	l.clock = func() time.Time { return now.Add(2 * time.Minute) }
	if _, ok := l.Acquire("pack-1"); !ok {
		t.Fatal("expired hold was not stealable")
	}
	if _, ok := l.Acquire("pack-1"); ok {
		t.Fatal("stolen hold should block the next caller again")
	}
}

func TestKeyLock_StaleReleaseKeepsStolenHold(t *testing.T) {
	l := NewKeyLock(time.Minute)
	now := time.Now()
	l.clock = func() time.Time { return now }

	stale, _ := l.Acquire("pack-1")

	// The first holder overran its TTL and a second caller stole the key
	l.clock = func() time.Time { return now.Add(2 * time.Minute) }
	fresh, ok := l.Acquire("pack-1")
	if !ok {
		t.Fatal("expired hold was not stealable")
	}

	// The slow holder's deferred release fires after the steal; it must not
	// free the stealer's live hold
	l.Release("pack-1", stale)
	if !l.Held("pack-1") {
		t.Fatal("stale release freed a stolen hold")
	}
	if _, ok := l.Acquire("pack-1"); ok {
		t.Fatal("third caller acquired while the stealer still held the key")
	}

	l.Release("pack-1", fresh)
	if l.Held("pack-1") {
		t.Fatal("owner release left the key held")
	}
}

func TestKeyLock_Held(t *testing.T) {
	l := NewKeyLock(time.Minute)
	if l.Held("pack-1") {
		t.Fatal("unheld key reported held")
	}
	l.Acquire("pack-1")
	if !l.Held("pack-1") {
		t.Fatal("held key reported free")
	}
}
