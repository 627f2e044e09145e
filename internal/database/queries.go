package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"votomatch/internal/dataset"
)

// ReplaceSnapshot swaps the closed dataset wholesale. Votes go out first and
// in last so the foreign keys hold at every point of the transaction.
func (db *DB) ReplaceSnapshot(ctx context.Context, bills []dataset.Bill, events []dataset.Event, votes []dataset.Vote) error {
	return db.Transaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{"DELETE FROM votos", "DELETE FROM eventos", "DELETE FROM leis"} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}

		billStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO leis (id, siglatipo, numero, ano, ementa, descricaotipo, tema)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer billStmt.Close()
		for _, b := range bills {
			if _, err := billStmt.ExecContext(ctx, b.ID, b.Type, b.Number, b.Year,
				b.Summary, NullString(b.Description), NullString(b.Theme)); err != nil {
				return fmt.Errorf("inserting bill %s: %w", b.ID, err)
			}
		}

		eventStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO eventos (id_evento, id_lei, data, descricao)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer eventStmt.Close()
		for _, e := range events {
			if _, err := eventStmt.ExecContext(ctx, e.ID, e.BillID, e.Date, e.Description); err != nil {
				return fmt.Errorf("inserting event %s: %w", e.ID, err)
			}
		}

		voteStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO votos (id_evento, id_deputado, voto_tipo)
			VALUES (?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer voteStmt.Close()
		for _, v := range votes {
			if _, err := voteStmt.ExecContext(ctx, v.EventID, v.LegislatorID, v.Value); err != nil {
				return fmt.Errorf("inserting vote on event %s: %w", v.EventID, err)
			}
		}

		return nil
	})
}

// ReplaceLegislators swaps the legislator reference table wholesale.
func (db *DB) ReplaceLegislators(ctx context.Context, legislators []dataset.Legislator) error {
	return db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM deputados"); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO deputados (id, nome_parlamentar, sigla_partido, sigla_uf, url_foto)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, l := range legislators {
			if _, err := stmt.ExecContext(ctx, l.ID, l.Name, l.Party, l.Region, l.Photo); err != nil {
				return fmt.Errorf("inserting legislator %s: %w", l.ID, err)
			}
		}
		return nil
	})
}

// VotesForEvents returns all votes cast on the given events, in insertion
// order. An empty id list yields no rows.
func (db *DB) VotesForEvents(ctx context.Context, eventIDs []string) ([]dataset.Vote, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT id_evento, id_deputado, voto_tipo
		FROM votos
		WHERE id_evento IN (%s)
		ORDER BY id
	`, placeholders(len(eventIDs)))

	rows, err := db.QueryContext(ctx, query, stringArgs(eventIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []dataset.Vote
	for rows.Next() {
		var v dataset.Vote
		if err := rows.Scan(&v.EventID, &v.LegislatorID, &v.Value); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// Legislators returns the reference set keyed by normalized id.
func (db *DB) Legislators(ctx context.Context) (map[string]dataset.Legislator, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, nome_parlamentar, sigla_partido, sigla_uf, url_foto
		FROM deputados
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reference := make(map[string]dataset.Legislator)
	for rows.Next() {
		var l dataset.Legislator
		if err := rows.Scan(&l.ID, &l.Name, &l.Party, &l.Region, &l.Photo); err != nil {
			return nil, err
		}
		reference[dataset.NormalizeID(l.ID)] = l
	}
	return reference, rows.Err()
}

// SampleBills returns a window of bills of the given types, ordered by id so
// the same offset always yields the same window.
func (db *DB) SampleBills(ctx context.Context, types []string, offset, limit int) ([]dataset.Bill, error) {
	if len(types) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT id, siglatipo, numero, ano, ementa, descricaotipo, tema
		FROM leis
		WHERE siglatipo IN (%s)
		ORDER BY id
		LIMIT ? OFFSET ?
	`, placeholders(len(types)))

	args := append(stringArgs(types), limit, offset)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []dataset.Bill
	for rows.Next() {
		var b dataset.Bill
		var description, theme sql.NullString
		if err := rows.Scan(&b.ID, &b.Type, &b.Number, &b.Year, &b.Summary, &description, &theme); err != nil {
			return nil, err
		}
		b.Description = description.String
		b.Theme = theme.String
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

// EventsForBills returns events tied to the given bills, at most limit.
func (db *DB) EventsForBills(ctx context.Context, billIDs []string, limit int) ([]dataset.Event, error) {
	if len(billIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT id_evento, id_lei, data, descricao
		FROM eventos
		WHERE id_lei IN (%s)
		ORDER BY id_evento
		LIMIT ?
	`, placeholders(len(billIDs)))

	args := append(stringArgs(billIDs), limit)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []dataset.Event
	for rows.Next() {
		var e dataset.Event
		if err := rows.Scan(&e.ID, &e.BillID, &e.Date, &e.Description); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Counts returns snapshot row counts per table.
func (db *DB) Counts(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	counts := []struct {
		table string
		dest  *int
	}{
		{"leis", &stats.Bills},
		{"eventos", &stats.Events},
		{"votos", &stats.Votes},
		{"deputados", &stats.Legislators},
	}

	for _, c := range counts {
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("counting %s: %w", c.table, err)
		}
	}
	return stats, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func stringArgs(values []string) []interface{} {
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}
