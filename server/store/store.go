package store

import (
	"context"
	"embed"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema embed.FS

type DB struct{ *pgxpool.Pool }

func Open(dsn string) (*DB, error) {
	p, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &DB{p}, nil
}

func (db *DB) Close(ctx context.Context)      { db.Pool.Close() }
func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

// HandRecord is one classified hand as stored in the hands table.
type HandRecord struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Source      string    `json:"source"` // parse | deal | sim
	Cards       []string  `json:"cards"`
	Category    string    `json:"category"`
	Text        string    `json:"text"`
	KindRank    *string   `json:"kind_rank"`
	KindCount   int       `json:"kind_count"`
	TieBreak    string    `json:"tie_break"`
	LibraryDesc *string   `json:"library_desc"`
}

func nullIfBlank(p *string) any {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return v
}

// RecordHand inserts rec and returns its id.
func (db *DB) RecordHand(ctx context.Context, rec HandRecord) (int64, error) {
	if rec.Source == "" {
		rec.Source = "parse"
	}
	if rec.TieBreak == "" {
		rec.TieBreak = "higher"
	}
	if rec.Cards == nil {
		rec.Cards = []string{}
	}
	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO hands(source, cards, category, result_text, kind_rank, kind_count, tie_break, library_desc)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`, rec.Source, rec.Cards, rec.Category, rec.Text, nullIfBlank(rec.KindRank),
		rec.KindCount, rec.TieBreak, nullIfBlank(rec.LibraryDesc)).Scan(&id)
	return id, err
}

// GetHand loads one hand. ok is false when no row has that id.
func (db *DB) GetHand(ctx context.Context, id int64) (rec HandRecord, ok bool, err error) {
	err = db.QueryRow(ctx, `
		SELECT id, created_at, source, cards, category, result_text,
		       kind_rank, kind_count, tie_break, library_desc
		  FROM hands WHERE id = $1
	`, id).Scan(&rec.ID, &rec.CreatedAt, &rec.Source, &rec.Cards, &rec.Category, &rec.Text,
		&rec.KindRank, &rec.KindCount, &rec.TieBreak, &rec.LibraryDesc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return HandRecord{}, false, nil
		}
		return HandRecord{}, false, err
	}
	return rec, true, nil
}

// RecentHands returns up to limit hands, newest first.
func (db *DB) RecentHands(ctx context.Context, limit int) ([]HandRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := db.Query(ctx, `
		SELECT id, created_at, source, cards, category, result_text,
		       kind_rank, kind_count, tie_break, library_desc
		  FROM hands
		 ORDER BY id DESC
		 LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []HandRecord{}
	for rows.Next() {
		var r HandRecord
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Source, &r.Cards, &r.Category, &r.Text,
			&r.KindRank, &r.KindCount, &r.TieBreak, &r.LibraryDesc); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CategoryCounts tallies stored hands by category.
func (db *DB) CategoryCounts(ctx context.Context) (map[string]int, error) {
	rows, err := db.Query(ctx, `SELECT category, COUNT(*) FROM hands GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := map[string]int{}
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, err
		}
		res[cat] = n
	}
	return res, rows.Err()
}
