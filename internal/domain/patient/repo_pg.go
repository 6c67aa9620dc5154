package patient

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const listColumns = `d.patient_num, d.birth_date_shifted, d.gender_identity,
	d.race, d.ethnicity, d.state_c, d.zip3, d.pcp_name,
	COALESCE(e.encounter_count, 0) AS encounter_count`

type repoPG struct {
	pool *pgxpool.Pool
}

// NewRepoPG returns a Repository backed by PostgreSQL.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Row, int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM demographics`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count patients: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM demographics d
		LEFT JOIN (
			SELECT patient_num, COUNT(*) AS encounter_count
			FROM encounters
			GROUP BY patient_num
		) e ON e.patient_num = d.patient_num
		ORDER BY d.patient_num
		LIMIT $1 OFFSET $2`, listColumns)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	out := make([]*Row, 0, limit)
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan patient: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate patients: %w", err)
	}
	return out, total, nil
}

func scanRow(rows pgx.Rows) (*Row, error) {
	var row Row
	err := rows.Scan(
		&row.PatientNum,
		&row.BirthDate,
		&row.GenderIdentity,
		&row.Race,
		&row.Ethnicity,
		&row.StateCode,
		&row.Zip3,
		&row.PCPName,
		&row.EncounterCount,
	)
	if err != nil {
		return nil, err
	}
	return &row, nil
}
