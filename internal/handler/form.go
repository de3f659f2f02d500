package handler

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sakif/restaurant-directory/internal/model"
)

const dateLayout = "2006-01-02"

// gradeKey matches the indexed grade fields of the restaurant form:
//
//	grades[0][date]=2014-03-03&grades[0][grade]=A&grades[0][score]=2
var gradeKey = regexp.MustCompile(`^grades\[(\d+)\]\[(date|grade|score)\]$`)

// decodeRestaurant maps the flat restaurant form onto the nested model.
//
// NUMERIC FIELDS ARE PARSED DEFENSIVELY:
//   - longitude/latitude: the coord pair is stored only when BOTH parse to
//     a real position (lon in [-180, 180], lat in [-90, 90]). NaN and Inf
//     fall outside every range and are dropped with the rest.
//   - grades: an entry is stored only when its date, letter, and score all
//     parse. Anything else is dropped, never stored half-filled.
//
// The result has no ID; callers set it for updates.
func decodeRestaurant(form url.Values) *model.Restaurant {
	r := &model.Restaurant{
		Name:         form.Get("name"),
		Borough:      form.Get("borough"),
		Cuisine:      form.Get("cuisine"),
		RestaurantID: form.Get("restaurant_id"),
		Address: model.Address{
			Building: strings.TrimSpace(form.Get("building")),
			Street:   strings.TrimSpace(form.Get("street")),
			Zipcode:  strings.TrimSpace(form.Get("zipcode")),
		},
		Grades: decodeGrades(form),
	}

	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(form.Get("longitude")), 64)
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(form.Get("latitude")), 64)
	if lonErr == nil && latErr == nil && onEarth(lon, lat) {
		r.Address.Coord = []float64{lon, lat}
	}

	return r
}

// onEarth reports whether lon/lat name a point a 2dsphere index accepts.
// Written as inclusive range checks so NaN compares false and fails.
func onEarth(lon, lat float64) bool {
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}

func decodeGrades(form url.Values) []model.Grade {
	type rawGrade struct{ date, grade, score string }
	raw := map[int]*rawGrade{}

	for key, values := range form {
		m := gradeKey.FindStringSubmatch(key)
		if m == nil || len(values) == 0 {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		g, ok := raw[idx]
		if !ok {
			g = &rawGrade{}
			raw[idx] = g
		}
		v := strings.TrimSpace(values[0])
		switch m[2] {
		case "date":
			g.date = v
		case "grade":
			g.grade = v
		case "score":
			g.score = v
		}
	}

	indexes := make([]int, 0, len(raw))
	for idx := range raw {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	grades := make([]model.Grade, 0, len(indexes))
	for _, idx := range indexes {
		g := raw[idx]
		date, ok := parseDate(g.date)
		if !ok || g.grade == "" {
			continue
		}
		score, err := strconv.Atoi(g.score)
		if err != nil {
			continue
		}
		grades = append(grades, model.Grade{Date: date, Grade: g.grade, Score: score})
	}
	return grades
}

// parseDate accepts a date input value or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}
