package chart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tsFormat = `YYYY-MM-DD"T"HH24:MI:SS`

type repoPG struct {
	pool *pgxpool.Pool
}

// NewRepoPG returns a Repository backed by PostgreSQL.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const chartQuery = `
SELECT d.patient_num, d.birth_date_shifted, d.gender_identity, d.race,
       d.ethnicity, d.state_c, d.zip3, d.pcp_name,
       COALESCE((
           SELECT json_agg(json_build_object(
               'encounter_num', e.encounter_num,
               'contact_date', to_char(e.contact_date, '` + tsFormat + `'),
               'enc_type_name', e.enc_type_name,
               'visit_prov_name', e.visit_prov_name,
               'department_name', e.department_name,
               'note_count',
                   (SELECT COUNT(*) FROM order_results_deid o
                     WHERE o.patient_num = e.patient_num
                       AND o.encounter_num = e.encounter_num)
                 + (SELECT COUNT(*) FROM hno_notes_deid h
                     WHERE h.patient_num = e.patient_num
                       AND h.encounter_num = e.encounter_num)
           ) ORDER BY e.contact_date DESC)
           FROM encounters e
           WHERE e.patient_num = d.patient_num
       ), '[]'::json) AS encounters
FROM demographics d
WHERE d.patient_num = $1`

func (r *repoPG) GetChart(ctx context.Context, patientNum int64) (*ChartRow, error) {
	var row ChartRow
	var encounters []byte

	err := r.pool.QueryRow(ctx, chartQuery, patientNum).Scan(
		&row.PatientNum,
		&row.BirthDate,
		&row.GenderIdentity,
		&row.Race,
		&row.Ethnicity,
		&row.StateCode,
		&row.Zip3,
		&row.PCPName,
		&encounters,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get chart for patient %d: %w", patientNum, err)
	}

	if err := json.Unmarshal(encounters, &row.Encounters); err != nil {
		return nil, fmt.Errorf("decode encounters for patient %d: %w", patientNum, err)
	}
	return &row, nil
}

const encounterDetailQuery = `
SELECT d.patient_num, d.birth_date_shifted, d.gender_identity, d.race,
       d.ethnicity, d.state_c, d.zip3, d.pcp_name,
       EXISTS(SELECT 1 FROM encounters e
               WHERE e.patient_num = $1 AND e.encounter_num = $2) AS encounter_exists,
       COALESCE((
           SELECT json_agg(json_build_object(
               'dx_name', dx.dx_name,
               'dx_type', dx.dx_type,
               'dx_source', dx.dx_source,
               'dx_date', to_char(dx.dx_date, 'YYYY-MM-DD')
           ) ORDER BY dx.dx_date DESC)
           FROM diagnosis dx
           WHERE dx.patient_num = $1 AND dx.encounter_num = $2
       ), '[]'::json) AS diagnoses,
       COALESCE((
           SELECT json_agg(json_build_object(
               'order_proc_id', p.order_proc_id,
               'proc_source', p.proc_source,
               'proc_code', p.proc_code,
               'proc_name', p.proc_name,
               'order_type', p.order_type,
               'prov_name', p.prov_name
           ))
           FROM procedures p
           WHERE p.patient_num = $1 AND p.encounter_num = $2
       ), '[]'::json) AS procedures,
       COALESCE((
           SELECT json_agg(json_build_object(
               'order_proc_id', ir.order_proc_id,
               'order_type', ir.order_type,
               'specimen_taken_time', to_char(ir.specimen_taken_time, '` + tsFormat + `'),
               'impression_date', to_char(ir.impression_date, '` + tsFormat + `'),
               'note_text', ir.note_text
           ) ORDER BY ir.impression_date DESC)
           FROM imaging_reports_deid ir
           WHERE ir.patient_num = $1 AND ir.encounter_num = $2
       ), '[]'::json) AS imaging_reports,
       COALESCE((
           SELECT json_agg(json_build_object(
               'order_proc_id', o.order_proc_id,
               'order_type', o.order_type,
               'specimen_taken_time', to_char(o.specimen_taken_time, '` + tsFormat + `'),
               'contact_date', to_char(o.contact_date, '` + tsFormat + `'),
               'note_text', o.note_text
           ) ORDER BY o.contact_date DESC)
           FROM order_results_deid o
           WHERE o.patient_num = $1 AND o.encounter_num = $2
       ), '[]'::json) AS orders_notes,
       COALESCE((
           SELECT json_agg(json_build_object(
               'note_num', hn.note_num,
               'contact_date', to_char(hn.contact_date, '` + tsFormat + `'),
               'note_type', hn.note_type,
               'note_text', hn.note_text
           ) ORDER BY hn.contact_date DESC)
           FROM hno_notes_deid hn
           WHERE hn.patient_num = $1 AND hn.encounter_num = $2
       ), '[]'::json) AS ho_notes
FROM demographics d
WHERE d.patient_num = $1`

func (r *repoPG) GetEncounterDetail(ctx context.Context, patientNum, encounterNum int64) (*EncounterDetailRow, error) {
	var row EncounterDetailRow
	var encounterExists bool
	var diagnoses, procedures, imaging, orders, hoNotes []byte

	err := r.pool.QueryRow(ctx, encounterDetailQuery, patientNum, encounterNum).Scan(
		&row.PatientNum,
		&row.BirthDate,
		&row.GenderIdentity,
		&row.Race,
		&row.Ethnicity,
		&row.StateCode,
		&row.Zip3,
		&row.PCPName,
		&encounterExists,
		&diagnoses,
		&procedures,
		&imaging,
		&orders,
		&hoNotes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get encounter %d for patient %d: %w", encounterNum, patientNum, err)
	}
	if !encounterExists {
		return nil, ErrNotFound
	}

	sections := []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"diagnoses", diagnoses, &row.Diagnoses},
		{"procedures", procedures, &row.Procedures},
		{"imaging_reports", imaging, &row.ImagingReports},
		{"orders_notes", orders, &row.OrdersNotes},
		{"ho_notes", hoNotes, &row.HONotes},
	}
	for _, s := range sections {
		if err := json.Unmarshal(s.raw, s.dst); err != nil {
			return nil, fmt.Errorf("decode %s for encounter %d: %w", s.name, encounterNum, err)
		}
	}
	return &row, nil
}
