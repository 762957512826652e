package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"flightwatch-service/internal/domain/entity"
)

func mustKey(t *testing.T, airline, flightNumber, date string) entity.FlightKey {
	t.Helper()
	key, err := entity.NewFlightKey(airline, flightNumber, date)
	if err != nil {
		t.Fatalf("NewFlightKey error: %v", err)
	}
	return key
}

func TestUpsertIsIdempotent(t *testing.T) {
	t.Parallel()
	repo := NewMemorySubscriptionRepository()
	ctx := context.Background()
	key := mustKey(t, "Delta", "123", "20250601")

	sub := &entity.Subscription{RecipientID: "1001", Key: key}
	if err := repo.Upsert(ctx, sub); err != nil {
		t.Fatalf("first Upsert error: %v", err)
	}
	if err := repo.Upsert(ctx, sub); err != nil {
		t.Fatalf("second Upsert error: %v", err)
	}

	recipients, err := repo.RecipientsFor(ctx, key)
	if err != nil {
		t.Fatalf("RecipientsFor error: %v", err)
	}
	if !reflect.DeepEqual(recipients, []string{"1001"}) {
		t.Fatalf("recipients = %v, want [1001]", recipients)
	}
}

func TestUpsertRejectsMalformedKey(t *testing.T) {
	t.Parallel()
	repo := NewMemorySubscriptionRepository()
	sub := &entity.Subscription{
		RecipientID: "1001",
		Key:         entity.FlightKey{Airline: "", FlightNumber: "123", FlightDate: "20250601"},
	}
	if err := repo.Upsert(context.Background(), sub); !errors.Is(err, entity.ErrInvalidKey) {
		t.Fatalf("err = %v, want ErrInvalidKey", err)
	}
}

func TestRecipientsForMatchesExactKeyOnly(t *testing.T) {
	t.Parallel()
	repo := NewMemorySubscriptionRepository()
	ctx := context.Background()
	key := mustKey(t, "Delta", "123", "20250601")
	other := mustKey(t, "Delta", "123", "20250602")

	for _, sub := range []*entity.Subscription{
		{RecipientID: "1001", Key: key},
		{RecipientID: "2002", Key: key},
		{RecipientID: "3003", Key: other},
	} {
		if err := repo.Upsert(ctx, sub); err != nil {
			t.Fatalf("Upsert error: %v", err)
		}
	}

	recipients, err := repo.RecipientsFor(ctx, key)
	if err != nil {
		t.Fatalf("RecipientsFor error: %v", err)
	}
	if !reflect.DeepEqual(recipients, []string{"1001", "2002"}) {
		t.Fatalf("recipients = %v, want [1001 2002]", recipients)
	}
}

func TestGroupedActiveGroupsByKey(t *testing.T) {
	t.Parallel()
	repo := NewMemorySubscriptionRepository()
	ctx := context.Background()

	shared := mustKey(t, "Delta", "123", "20250601")
	solo := mustKey(t, "United", "456", "20250615")

	for _, sub := range []*entity.Subscription{
		{RecipientID: "1001", Key: shared},
		{RecipientID: "2002", Key: shared},
		{RecipientID: "2002", Key: shared}, // duplicate upsert
		{RecipientID: "3003", Key: solo},
	} {
		if err := repo.Upsert(ctx, sub); err != nil {
			t.Fatalf("Upsert error: %v", err)
		}
	}

	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	groups, err := repo.GroupedActive(ctx, asOf)
	if err != nil {
		t.Fatalf("GroupedActive error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Key != shared || !reflect.DeepEqual(groups[0].Recipients, []string{"1001", "2002"}) {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}
	if groups[1].Key != solo || !reflect.DeepEqual(groups[1].Recipients, []string{"3003"}) {
		t.Fatalf("unexpected second group: %+v", groups[1])
	}
}

func TestGroupedActiveDateBoundary(t *testing.T) {
	t.Parallel()
	repo := NewMemorySubscriptionRepository()
	ctx := context.Background()

	past := mustKey(t, "Delta", "123", "20250531")
	today := mustKey(t, "Delta", "123", "20250601")
	future := mustKey(t, "Delta", "123", "20250602")

	for i, key := range []entity.FlightKey{past, today, future} {
		sub := &entity.Subscription{RecipientID: "1001", Key: key}
		if err := repo.Upsert(ctx, sub); err != nil {
			t.Fatalf("Upsert %d error: %v", i, err)
		}
	}

	asOf := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	groups, err := repo.GroupedActive(ctx, asOf)
	if err != nil {
		t.Fatalf("GroupedActive error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2 (today and future)", len(groups))
	}
	if groups[0].Key != today || groups[1].Key != future {
		t.Fatalf("unexpected group keys: %v, %v", groups[0].Key, groups[1].Key)
	}
}

func TestGroupedActiveDeterministicOrder(t *testing.T) {
	t.Parallel()
	repo := NewMemorySubscriptionRepository()
	ctx := context.Background()

	keys := []entity.FlightKey{
		mustKey(t, "United", "9", "20250601"),
		mustKey(t, "American", "20", "20250601"),
		mustKey(t, "American", "20", "20250603"),
		mustKey(t, "Delta", "1", "20250601"),
	}
	for _, key := range keys {
		if err := repo.Upsert(ctx, &entity.Subscription{RecipientID: "1001", Key: key}); err != nil {
			t.Fatalf("Upsert error: %v", err)
		}
	}

	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	first, err := repo.GroupedActive(ctx, asOf)
	if err != nil {
		t.Fatalf("GroupedActive error: %v", err)
	}
	second, err := repo.GroupedActive(ctx, asOf)
	if err != nil {
		t.Fatalf("GroupedActive error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("GroupedActive order is not deterministic between calls")
	}

	wantOrder := []entity.FlightKey{
		{Airline: "American", FlightNumber: "20", FlightDate: "20250601"},
		{Airline: "American", FlightNumber: "20", FlightDate: "20250603"},
		{Airline: "Delta", FlightNumber: "1", FlightDate: "20250601"},
		{Airline: "United", FlightNumber: "9", FlightDate: "20250601"},
	}
	for i, want := range wantOrder {
		if first[i].Key != want {
			t.Fatalf("group %d key = %v, want %v", i, first[i].Key, want)
		}
	}
}

func TestDeleteRemovesOneRow(t *testing.T) {
	t.Parallel()
	repo := NewMemorySubscriptionRepository()
	ctx := context.Background()
	key := mustKey(t, "Delta", "123", "20250601")

	for _, id := range []string{"1001", "2002"} {
		if err := repo.Upsert(ctx, &entity.Subscription{RecipientID: id, Key: key}); err != nil {
			t.Fatalf("Upsert error: %v", err)
		}
	}
	if err := repo.Delete(ctx, "1001", key); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	// Deleting an absent row is not an error.
	if err := repo.Delete(ctx, "1001", key); err != nil {
		t.Fatalf("second Delete error: %v", err)
	}

	recipients, err := repo.RecipientsFor(ctx, key)
	if err != nil {
		t.Fatalf("RecipientsFor error: %v", err)
	}
	if !reflect.DeepEqual(recipients, []string{"2002"}) {
		t.Fatalf("recipients = %v, want [2002]", recipients)
	}
}
