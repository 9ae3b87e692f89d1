package pmst

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Markers and sub-patterns used to locate report fields.
var (
	dateMarkerRe   = regexp.MustCompile(`Report created:`)
	dateRe         = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4}|\d{2})\b`)
	bufferMarkerRe = regexp.MustCompile(`Buffer:`)
	bufferRe       = regexp.MustCompile(`[-+]?(?:\d*\.\d+|\d+)`)
	coordMarkerRe  = regexp.MustCompile(`[-+]?\d*\.\d+\s+[-+]?\d*\.\d+`)
	coordRunRe     = regexp.MustCompile(`^[-+]?\d*\.\d+(?:[\s,;]+[-+]?\d*\.\d+)*`)
	decimalRe      = regexp.MustCompile(`[-+]?\d*\.\d+`)
)

// ExtractDate returns the date the report was created.
//
// The marker "Report created:" must be present (ENOTFOUND otherwise) and
// the text after it must hold a day/month/year date (EPARSE otherwise).
// Two-digit years use the 2/1/06 layout, four-digit years 2/1/2006. The
// time of day is discarded.
func ExtractDate(doc Document) (time.Time, error) {
	text, ok := doc.FindText(dateMarkerRe)
	if !ok {
		return time.Time{}, Errorf(ENOTFOUND, "report created marker not found")
	}
	text = afterMatch(dateMarkerRe, text)

	match := dateRe.FindStringSubmatch(text)
	if match == nil {
		return time.Time{}, Errorf(EPARSE, "no date in %q", text)
	}

	layout := "2/1/06"
	if len(match[3]) == 4 {
		layout = "2/1/2006"
	}
	date, err := time.Parse(layout, match[0])
	if err != nil {
		return time.Time{}, Errorf(EPARSE, "malformed date %q", match[0])
	}
	return date, nil
}

// ExtractBuffer returns the buffer distance the report was generated with:
// the first signed or unsigned number after the "Buffer:" marker.
func ExtractBuffer(doc Document) (float64, error) {
	text, ok := doc.FindText(bufferMarkerRe)
	if !ok {
		return 0, Errorf(ENOTFOUND, "buffer marker not found")
	}
	text = afterMatch(bufferMarkerRe, text)

	token := bufferRe.FindString(text)
	if token == "" {
		return 0, Errorf(EPARSE, "no number in %q", text)
	}
	buffer, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, Errorf(EPARSE, "malformed buffer %q", token)
	}
	return buffer, nil
}

// ExtractCoordinates returns the coordinate pairs listed in the report.
//
// The list starts at the first two adjacent decimals and runs over every
// following decimal separated only by whitespace, commas or semicolons.
// Its tokens are paired in encounter order as (latitude, longitude). An
// odd token count is rejected with EPARSE naming the unpaired value.
// Ranges are not validated here; see Coordinate.Validate.
func ExtractCoordinates(doc Document) ([]Coordinate, error) {
	text, ok := doc.FindText(coordMarkerRe)
	if !ok {
		return nil, Errorf(ENOTFOUND, "coordinate list not found")
	}
	if loc := coordMarkerRe.FindStringIndex(text); loc != nil {
		text = text[loc[0]:]
	}
	run := coordRunRe.FindString(text)

	tokens := decimalRe.FindAllString(run, -1)
	if len(tokens) == 0 {
		return nil, Errorf(ENOTFOUND, "coordinate list not found")
	}
	if len(tokens)%2 != 0 {
		return nil, Errorf(EPARSE, "odd number of coordinate values (%d): trailing value %s is unpaired", len(tokens), tokens[len(tokens)-1])
	}

	coords := make([]Coordinate, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		lat, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return nil, Errorf(EPARSE, "malformed latitude %q", tokens[i])
		}
		lon, err := strconv.ParseFloat(tokens[i+1], 64)
		if err != nil {
			return nil, Errorf(EPARSE, "malformed longitude %q", tokens[i+1])
		}
		coords = append(coords, Coordinate{Lat: lat, Lon: lon})
	}
	return coords, nil
}

// afterMatch returns the part of text following the first match of re,
// so values of neighbouring fields in the same element are never read.
func afterMatch(re *regexp.Regexp, text string) string {
	if loc := re.FindStringIndex(text); loc != nil {
		return text[loc[1]:]
	}
	return text
}

// ExtractURLs returns every non-empty link target in the document,
// deduplicated and sorted ascending.
func ExtractURLs(doc Document) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, href := range doc.Links() {
		href = strings.TrimSpace(href)
		if href == "" || seen[href] {
			continue
		}
		seen[href] = true
		urls = append(urls, href)
	}
	slices.Sort(urls)
	return urls
}
