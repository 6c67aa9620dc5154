package view

import (
	"fmt"
	"regexp"
	"strings"
)

// Crumb is one link in the breadcrumb trail.
type Crumb struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Breadcrumb is the header state for a page: the trail links plus the
// heading shown under them. The heading names the current patient on detail
// pages and is empty on the list page (the list renders its own count
// heading instead).
type Breadcrumb struct {
	Trail   []Crumb `json:"trail"`
	Heading string  `json:"heading"`
}

var numericSegment = regexp.MustCompile(`^\d+$`)

// ForPath derives the breadcrumb from the request path. Recognized shapes
// are /patients, /patients/{id} and /patients/{id}/{encounterId}; anything
// else collapses to the list trail.
func ForPath(path string) Breadcrumb {
	b := Breadcrumb{
		Trail: []Crumb{
			{Label: "Home", Path: "/"},
			{Label: "Patient List", Path: "/patients"},
		},
	}

	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) < 2 || segs[0] != "patients" || !numericSegment.MatchString(segs[1]) {
		return b
	}

	patientLabel := "Patient #" + segs[1]
	b.Heading = patientLabel
	b.Trail = append(b.Trail, Crumb{Label: patientLabel, Path: "/patients/" + segs[1]})

	if len(segs) >= 3 && numericSegment.MatchString(segs[2]) {
		b.Trail = append(b.Trail, Crumb{
			Label: fmt.Sprintf("Encounter #%s", segs[2]),
			Path:  "/patients/" + segs[1] + "/" + segs[2],
		})
	}

	return b
}
