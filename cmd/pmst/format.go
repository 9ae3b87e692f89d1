package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/pmst"
)

var kindHeadings = map[pmst.EntityKind]string{
	pmst.KindFeature:   "Key ecological features",
	pmst.KindCommunity: "Threatened ecological communities",
	pmst.KindSpecies:   "Species",
	pmst.KindHeritage:  "Heritage places",
	pmst.KindPark:      "Parks and reserves",
}

// writeReport prints a human-readable summary of a report.
func writeReport(w io.Writer, r *pmst.Report) {
	fmt.Fprintf(w, "Report: %s", r.Name)
	if r.ID != "" {
		fmt.Fprintf(w, " (%s)", r.ID)
	}
	fmt.Fprintln(w)

	if r.CreatedAt != nil {
		fmt.Fprintf(w, "Created: %s\n", r.CreatedAt.Format("2006-01-02"))
	} else {
		fmt.Fprintf(w, "Created: %s\n", unset(r, pmst.FieldDate))
	}
	if r.Buffer != nil {
		fmt.Fprintf(w, "Buffer: %g km\n", *r.Buffer)
	} else {
		fmt.Fprintf(w, "Buffer: %s\n", unset(r, pmst.FieldBuffer))
	}
	if len(r.Coordinates) > 0 {
		fmt.Fprintf(w, "Coordinates: %d pair(s)\n", len(r.Coordinates))
		for _, c := range r.Coordinates {
			fmt.Fprintf(w, "  %g %g\n", c.Lat, c.Lon)
		}
	} else {
		fmt.Fprintf(w, "Coordinates: %s\n", unset(r, pmst.FieldCoordinates))
	}
	fmt.Fprintf(w, "Links: %d\n", len(r.URLs))

	for _, kind := range pmst.EntityKinds {
		entities := r.Entities(kind)
		if len(entities) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s (%d)\n", kindHeadings[kind], len(entities))
		for _, e := range entities {
			writeEntity(w, e)
		}
	}
}

func writeEntity(w io.Writer, e *pmst.Entity) {
	name := e.Name
	if name == "" {
		name = e.URL
	}
	fmt.Fprintf(w, "  %s  %s", e.ID, name)
	if e.Classified() {
		fmt.Fprintf(w, "  [%s]", e.Status)
	}
	fmt.Fprintln(w)
	if len(e.Bioregions) > 0 {
		fmt.Fprintf(w, "    bioregions: %s\n", strings.Join(e.Bioregions, ", "))
	}
}

func unset(r *pmst.Report, field pmst.Field) string {
	if p, ok := r.Problem(field); ok {
		return fmt.Sprintf("(%s: %s)", p.Code, p.Message)
	}
	return "(none)"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
