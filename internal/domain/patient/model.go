package patient

import (
	"time"

	"github.com/chartview/chartview/pkg/format"
)

// Row is the raw list-page projection: one demographics row joined with the
// patient's encounter count. Column names follow the source schema.
type Row struct {
	PatientNum     int64      `db:"patient_num"`
	BirthDate      *time.Time `db:"birth_date_shifted"`
	GenderIdentity *string    `db:"gender_identity"`
	Race           *string    `db:"race"`
	Ethnicity      *string    `db:"ethnicity"`
	StateCode      *string    `db:"state_c"`
	Zip3           *string    `db:"zip3"`
	PCPName        *string    `db:"pcp_name"`
	EncounterCount int        `db:"encounter_count"`
}

// Summary is the list-page view model for one patient.
type Summary struct {
	ID             int64  `json:"id"`
	DOB            string `json:"dob"`
	Age            string `json:"age"`
	Sex            string `json:"sex"`
	Zip            string `json:"zip"`
	EncounterCount int    `json:"encounterCount"`
}

// Summary reshapes the raw row into the view model. The ZIP is the state
// code concatenated with the three-digit ZIP prefix (string concatenation,
// not addition).
func (r *Row) Summary(now time.Time) Summary {
	s := Summary{
		ID:             r.PatientNum,
		Sex:            strVal(r.GenderIdentity),
		Zip:            strVal(r.StateCode) + strVal(r.Zip3),
		EncounterCount: r.EncounterCount,
	}
	if r.BirthDate != nil {
		s.DOB = format.MonthDate(*r.BirthDate)
		s.Age = format.Age(*r.BirthDate, now)
	}
	return s
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
