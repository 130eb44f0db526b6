package question

import (
	"context"
	"database/sql"
	"encoding/json"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutBatch(ctx context.Context, recs []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, r := range recs {
		cj, err := json.Marshal(r.Choices)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO questions (id,question,choices_json,answer,category,link)
			VALUES ($1,$2,$3,$4,$5,$6)
			ON CONFLICT (id) DO UPDATE SET question=EXCLUDED.question, choices_json=EXCLUDED.choices_json,
			answer=EXCLUDED.answer, category=EXCLUDED.category, link=EXCLUDED.link`,
			r.ID, r.Question, string(cj), r.Answer, r.Category, r.Link)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// List loads the full ordered set and filters in process with the same
// matcher the in-memory store uses. The dataset is a fixed exam bank,
// small enough that a LIKE prefilter buys nothing.
func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,question,choices_json,answer,category,link FROM questions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var r Record
		var cj string
		if err := rows.Scan(&r.ID, &r.Question, &cj, &r.Answer, &r.Category, &r.Link); err != nil {
			return nil, err
		}
		if cj != "" && cj != "null" {
			if err := json.Unmarshal([]byte(cj), &r.Choices); err != nil {
				return nil, err
			}
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return filterPage(recs, opts), nil
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n)
	return n, err
}
