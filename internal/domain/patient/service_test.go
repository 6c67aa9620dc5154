package patient

import (
	"context"
	"fmt"
	"testing"
	"time"
)

type mockRepo struct {
	rows []*Row
	err  error
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Row, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	start := offset
	if start > len(m.rows) {
		start = len(m.rows)
	}
	end := start + limit
	if end > len(m.rows) {
		end = len(m.rows)
	}
	return m.rows[start:end], len(m.rows), nil
}

func seedRows(n int) []*Row {
	rows := make([]*Row, 0, n)
	for i := 1; i <= n; i++ {
		dob := time.Date(1980, time.March, 2, 0, 0, 0, 0, time.UTC)
		sex := "Female"
		state := "MA"
		zip3 := "021"
		rows = append(rows, &Row{
			PatientNum:     int64(i),
			BirthDate:      &dob,
			GenderIdentity: &sex,
			StateCode:      &state,
			Zip3:           &zip3,
			EncounterCount: i % 4,
		})
	}
	return rows
}

func TestServiceListPaging(t *testing.T) {
	svc := NewService(&mockRepo{rows: seedRows(620)})

	rows, total, err := svc.List(context.Background(), 15, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 620 {
		t.Errorf("total = %d, want 620", total)
	}
	if len(rows) != 15 {
		t.Errorf("page length = %d, want 15", len(rows))
	}

	rows, _, err = svc.List(context.Background(), 15, 615)
	if err != nil {
		t.Fatalf("List last page: %v", err)
	}
	if len(rows) != 5 {
		t.Errorf("last page length = %d, want 5", len(rows))
	}
}

func TestServiceListValidation(t *testing.T) {
	svc := NewService(&mockRepo{rows: seedRows(3)})

	if _, _, err := svc.List(context.Background(), 0, 0); err == nil {
		t.Error("expected error for zero limit")
	}
	if _, _, err := svc.List(context.Background(), 10, -1); err == nil {
		t.Error("expected error for negative offset")
	}
}

func TestServiceListRepoError(t *testing.T) {
	svc := NewService(&mockRepo{err: fmt.Errorf("connection refused")})
	if _, _, err := svc.List(context.Background(), 15, 0); err == nil {
		t.Error("expected repo error to surface")
	}
}

func TestRowSummary(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	dob := time.Date(2021, time.June, 13, 0, 0, 0, 0, time.UTC)
	sex := "Male"
	state := "NY"
	zip3 := "100"
	row := &Row{
		PatientNum:     42,
		BirthDate:      &dob,
		GenderIdentity: &sex,
		StateCode:      &state,
		Zip3:           &zip3,
		EncounterCount: 7,
	}

	s := row.Summary(now)
	if s.ID != 42 {
		t.Errorf("ID = %d, want 42", s.ID)
	}
	if s.DOB != "Jun 13th, 2021" {
		t.Errorf("DOB = %q, want %q", s.DOB, "Jun 13th, 2021")
	}
	if s.Age != "2 yrs" {
		t.Errorf("Age = %q, want %q", s.Age, "2 yrs")
	}
	if s.Zip != "NY100" {
		t.Errorf("Zip = %q, want %q", s.Zip, "NY100")
	}
	if s.EncounterCount != 7 {
		t.Errorf("EncounterCount = %d, want 7", s.EncounterCount)
	}
}

func TestRowSummaryNulls(t *testing.T) {
	row := &Row{PatientNum: 9}
	s := row.Summary(time.Now())
	if s.DOB != "" || s.Age != "" || s.Sex != "" || s.Zip != "" {
		t.Errorf("null columns should reshape to empty strings, got %+v", s)
	}
}
