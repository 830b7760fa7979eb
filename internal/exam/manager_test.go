package exam

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newManagedSession(t *testing.T, userID, courseID int64) *Session {
	t.Helper()
	s, err := Start(SessionConfig{
		UserID:    userID,
		CourseID:  courseID,
		Questions: testQuestions(),
		Duration:  time.Hour,
		Log:       zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(s.Abandon)
	return s
}

func TestManagerPutGetRemove(t *testing.T) {
	m := NewManager()

	s := newManagedSession(t, 1, 10)
	m.Put(s)

	got, ok := m.Get(1, 10)
	if !ok || got != s {
		t.Fatal("Get did not return the stored session")
	}
	if _, ok := m.Get(1, 11); ok {
		t.Fatal("Get returned a session for the wrong course")
	}
	if _, ok := m.Get(2, 10); ok {
		t.Fatal("Get returned a session for the wrong user")
	}

	m.Remove(1, 10)
	if _, ok := m.Get(1, 10); ok {
		t.Fatal("session still present after Remove")
	}
	if s.PhaseNow() != PhaseAbandoned {
		t.Fatal("Remove must abandon the session")
	}
}

func TestManagerReplaceAbandonsPrevious(t *testing.T) {
	m := NewManager()

	first := newManagedSession(t, 1, 10)
	m.Put(first)

	second := newManagedSession(t, 1, 10)
	m.Put(second)

	if first.PhaseNow() != PhaseAbandoned {
		t.Fatal("replaced session must be abandoned")
	}
	got, _ := m.Get(1, 10)
	if got != second {
		t.Fatal("Get did not return the replacement session")
	}
}
