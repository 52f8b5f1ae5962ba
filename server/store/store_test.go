package store

import (
	"context"
	"os"
	"testing"
)

func TestNullIfBlank(t *testing.T) {
	blank := "  "
	val := " ace "
	if nullIfBlank(nil) != nil || nullIfBlank(&blank) != nil {
		t.Fatal("blank values should map to NULL")
	}
	if got := nullIfBlank(&val); got != "ace" {
		t.Fatalf("got %v", got)
	}
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close(context.Background()) })
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestRecordAndReadHand(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	rank := "queen"
	id, err := db.RecordHand(ctx, HandRecord{
		Source:    "deal",
		Cards:     []string{"Q♥", "7♥", "Q♣", "5♦", "J♠"},
		Category:  "pair",
		Text:      "pair of queens",
		KindRank:  &rank,
		KindCount: 2,
	})
	if err != nil {
		t.Fatalf("RecordHand: %v", err)
	}
	got, ok, err := db.GetHand(ctx, id)
	if err != nil || !ok {
		t.Fatalf("GetHand: ok=%v err=%v", ok, err)
	}
	if got.Text != "pair of queens" || len(got.Cards) != 5 || got.TieBreak != "higher" || got.LibraryDesc != nil {
		t.Fatalf("unexpected row: %+v", got)
	}
	if _, ok, err := db.GetHand(ctx, -1); ok || err != nil {
		t.Fatalf("missing id: ok=%v err=%v", ok, err)
	}

	recent, err := db.RecentHands(ctx, 1)
	if err != nil || len(recent) != 1 || recent[0].ID != id {
		t.Fatalf("RecentHands: %v %v", recent, err)
	}
	counts, err := db.CategoryCounts(ctx)
	if err != nil || counts["pair"] < 1 {
		t.Fatalf("CategoryCounts: %v %v", counts, err)
	}
}
