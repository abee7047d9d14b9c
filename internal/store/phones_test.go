package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/joestump/biogas/internal/store"
	"github.com/joestump/biogas/internal/testutil"
)

func TestPhoneStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	conn := testutil.NewTestDB(t)
	userID, _ := testutil.Seed(t, conn, "secret")
	s := store.NewPhoneStore(conn)

	a, err := s.Add(ctx, userID, "+48123456789")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	b, err := s.Add(ctx, userID, "48987654321")
	if err != nil {
		t.Fatalf("Add second: %v", err)
	}

	if _, err := s.Add(ctx, userID, "+48123456789"); !errors.Is(err, store.ErrDuplicatePhone) {
		t.Errorf("duplicate Add: got %v, want ErrDuplicatePhone", err)
	}
	if _, err := s.Add(ctx, userID, "0123"); !errors.Is(err, store.ErrInvalidPhone) {
		t.Errorf("invalid Add: got %v, want ErrInvalidPhone", err)
	}

	if err := s.Update(ctx, userID, a.ID, "+4811111"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := s.Update(ctx, userID, a.ID, "phone"); !errors.Is(err, store.ErrInvalidPhone) {
		t.Errorf("invalid Update: got %v, want ErrInvalidPhone", err)
	}
	if err := s.Update(ctx, userID+100, a.ID, "+4822222"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Update of foreign phone: got %v, want ErrNotFound", err)
	}

	phones, err := s.List(ctx, userID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(phones) != 2 || phones[0].Number != "+4811111" || phones[1].ID != b.ID {
		t.Fatalf("List = %+v", phones)
	}

	if err := s.Remove(ctx, userID, a.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := s.Remove(ctx, userID, a.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second Remove: got %v, want ErrNotFound", err)
	}

	phones, err = s.List(ctx, userID)
	if err != nil {
		t.Fatalf("List after remove: %v", err)
	}
	if len(phones) != 1 || phones[0].ID != b.ID {
		t.Errorf("List after remove = %+v", phones)
	}
}

func TestPhoneStore_UpdateUnchangedNumber(t *testing.T) {
	ctx := context.Background()
	conn := testutil.NewTestDB(t)
	userID, _ := testutil.Seed(t, conn, "secret")
	s := store.NewPhoneStore(conn)

	p, err := s.Add(ctx, userID, "+48123456789")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Update(ctx, userID, p.ID, p.Number); err != nil {
		t.Errorf("Update with the same number: %v", err)
	}
}

func TestPhoneStore_DeletedOwnerCascades(t *testing.T) {
	ctx := context.Background()
	conn := testutil.NewTestDB(t)
	userID, _ := testutil.Seed(t, conn, "secret")

	if _, err := store.NewPhoneStore(conn).Add(ctx, userID, "+48123456789"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := conn.ExecContext(ctx, `DELETE FROM biogas_server_user WHERE userID = ?`, userID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	var count int
	if err := conn.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM biogas_server_phonenumber WHERE owner_id = ?`, userID); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("phones left after owner deletion = %d, want 0", count)
	}
}
