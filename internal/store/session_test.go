package store

import "testing"

func TestSessionLifecycle(t *testing.T) {
	db := setupTestDB(t)
	us := NewUserStore(db)
	ss := NewSessionStore(db)

	user, err := us.Create("ada@example.com", "Ada", "not-a-real-hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	sess, err := ss.Create(user.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(sess.Token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(sess.Token))
	}

	got, err := ss.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got == nil || got.UserID != user.ID {
		t.Fatalf("session = %+v, want user %d", got, user.ID)
	}

	if err := ss.Delete(sess.Token); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	got, _ = ss.GetByToken(sess.Token)
	if got != nil {
		t.Error("session should be gone after delete")
	}
}

func TestUserUniqueEmail(t *testing.T) {
	us := NewUserStore(setupTestDB(t))

	if _, err := us.Create("ada@example.com", "Ada", "h1"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := us.Create("ada@example.com", "Other", "h2"); err == nil {
		t.Error("duplicate email should be rejected")
	}

	n, err := us.Count()
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}
