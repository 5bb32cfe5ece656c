package session

import (
	"regexp"
	"sync"
	"testing"
)

func TestEnsureIdempotent(t *testing.T) {
	s := NewStore()

	first := s.Ensure("sess-1")
	if first.Pro {
		t.Fatal("new session should start on the free tier")
	}
	if !regexp.MustCompile(`^user_\d{5}$`).MatchString(first.UserID) {
		t.Fatalf("unexpected user id %q", first.UserID)
	}

	again := s.Ensure("sess-1")
	if again != first {
		t.Fatalf("second Ensure changed the record: %+v vs %+v", again, first)
	}
}

func TestUpgradeDowngrade(t *testing.T) {
	s := NewStore()
	s.Ensure("sess-1")

	if rec := s.Upgrade("sess-1"); !rec.Pro {
		t.Fatal("Upgrade did not grant the entitlement")
	}
	if !s.IsPro("sess-1") {
		t.Fatal("IsPro false after upgrade")
	}

	if rec := s.Downgrade("sess-1"); rec.Pro {
		t.Fatal("Downgrade did not revoke the entitlement")
	}
	if s.IsPro("sess-1") {
		t.Fatal("IsPro true after downgrade")
	}
}

func TestUpgradeInitializesUnknownSession(t *testing.T) {
	s := NewStore()

	rec := s.Upgrade("fresh")
	if !rec.Pro || rec.UserID == "" {
		t.Fatalf("Upgrade on unknown session returned %+v", rec)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s := NewStore()
	a := s.Ensure("sess-a")
	b := s.Ensure("sess-b")

	if a.UserID == b.UserID {
		t.Skip("random user ids collided; rerun")
	}

	s.Upgrade("sess-a")
	if s.IsPro("sess-b") {
		t.Fatal("upgrade leaked into another session")
	}
}

func TestIsProUnknownSession(t *testing.T) {
	if NewStore().IsPro("nope") {
		t.Fatal("unknown session must be free tier")
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Ensure("shared")
			s.Upgrade("shared")
			s.IsPro("shared")
			s.Downgrade("shared")
		}()
	}
	wg.Wait()

	if _, ok := s.Get("shared"); !ok {
		t.Fatal("record missing after concurrent access")
	}
}
