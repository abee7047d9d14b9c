package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/joestump/biogas/internal/store"
	"github.com/joestump/biogas/internal/testutil"
)

func TestAddress_Validate(t *testing.T) {
	valid := store.Address{City: "Kraków", Street: "Długa", Number: "12a", PostalCode: "30-001", Country: "Poland"}

	tests := []struct {
		name    string
		mutate  func(a *store.Address)
		wantErr bool
	}{
		{"valid", func(a *store.Address) {}, false},
		{"optional fields empty", func(a *store.Address) { a.PostalCode, a.Country = "", "" }, false},
		{"empty number", func(a *store.Address) { a.Number = "" }, true},
		{"blank city", func(a *store.Address) { a.City = "   " }, true},
		{"blank street", func(a *store.Address) { a.Street = "" }, true},
		{"leading space in country", func(a *store.Address) { a.Country = " Poland" }, true},
		{"leading tab in postal code", func(a *store.Address) { a.PostalCode = "\t30-001" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := valid
			tc.mutate(&a)
			err := a.Validate()
			if tc.wantErr {
				if !errors.Is(err, store.ErrInvalidAddress) {
					t.Fatalf("Validate: got %v, want ErrInvalidAddress", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
		})
	}
}

func TestAddressStore_SaveInsertsThenUpdates(t *testing.T) {
	ctx := context.Background()
	conn := testutil.NewTestDB(t)
	userID, _ := testutil.Seed(t, conn, "secret")
	s := store.NewAddressStore(conn)

	if _, err := s.Get(ctx, userID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Get before save: got %v, want ErrNotFound", err)
	}

	first := store.Address{City: "Kraków", Street: "Długa", Number: "12"}
	if err := s.Save(ctx, userID, first); err != nil {
		t.Fatalf("Save (insert): %v", err)
	}

	second := store.Address{City: "Gdańsk", Street: "Morska", Number: "3", PostalCode: "80-001", Country: "Poland"}
	if err := s.Save(ctx, userID, second); err != nil {
		t.Fatalf("Save (update): %v", err)
	}

	var count int
	if err := conn.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM biogas_server_corespondanceaddres WHERE userID_id = ?`, userID); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("address rows = %d, want 1", count)
	}

	got, err := s.Get(ctx, userID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if *got != second {
		t.Errorf("Get = %+v, want %+v", *got, second)
	}
}

func TestAddressStore_SaveRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	conn := testutil.NewTestDB(t)
	userID, _ := testutil.Seed(t, conn, "secret")
	s := store.NewAddressStore(conn)

	err := s.Save(ctx, userID, store.Address{City: " Kraków", Street: "Długa", Number: "1"})
	if !errors.Is(err, store.ErrInvalidAddress) {
		t.Fatalf("Save: got %v, want ErrInvalidAddress", err)
	}
	if _, err := s.Get(ctx, userID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("invalid address should not be stored, Get: %v", err)
	}
}
