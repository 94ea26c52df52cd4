package enrich

import (
	"fmt"
	"sort"
	"strings"
)

// User is one decoded record of the remote listing. Fields are kept
// generic so any dotted path can be grouped on.
type User map[string]any

// Lookup resolves a dotted path such as "company.department". A missing
// or empty segment is replaced by "Property <segment> not found" and the
// walk goes on from there, so the result names the last segment that
// missed: "hair.color" on a user without hair yields
// "Property color not found".
func Lookup(u User, path string) string {
	var cur any = map[string]any(u)
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			cur = notFound(seg)
			continue
		}
		v, ok := m[seg]
		if !ok || isEmpty(v) {
			cur = notFound(seg)
			continue
		}
		cur = v
	}
	switch v := cur.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}

func notFound(seg string) string { return fmt.Sprintf("Property %s not found", seg) }

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case float64:
		return x == 0
	}
	return false
}

// GroupBy buckets users by the value at path, preserving input order
// inside each group.
func GroupBy(users []User, path string) map[string][]User {
	out := make(map[string][]User)
	for _, u := range users {
		k := Lookup(u, path)
		out[k] = append(out[k], u)
	}
	return out
}

// GroupStats summarizes one group.
type GroupStats struct {
	Group    string         `json:"group"`
	Male     int            `json:"male"`
	Female   int            `json:"female"`
	AgeRange string         `json:"ageRange"`
	Colors   map[string]int `json:"colors"`
}

// Summarize computes per-group gender counts, the age range and a
// histogram of colorPath. Groups are returned sorted by name.
func Summarize(groups map[string][]User, colorPath string) []GroupStats {
	names := make([]string, 0, len(groups))
	for k := range groups {
		names = append(names, k)
	}
	sort.Strings(names)

	out := make([]GroupStats, 0, len(names))
	for _, name := range names {
		st := GroupStats{Group: name, Colors: map[string]int{}}
		minAge, maxAge, seen := 0, 0, false
		for _, u := range groups[name] {
			switch strings.ToLower(Lookup(u, "gender")) {
			case "male":
				st.Male++
			case "female":
				st.Female++
			}
			if age, ok := u["age"].(float64); ok {
				a := int(age)
				if !seen || a < minAge {
					minAge = a
				}
				if !seen || a > maxAge {
					maxAge = a
				}
				seen = true
			}
			st.Colors[Lookup(u, colorPath)]++
		}
		st.AgeRange = ageRange(minAge, maxAge, seen)
		out = append(out, st)
	}
	return out
}

func ageRange(lo, hi int, seen bool) string {
	switch {
	case !seen:
		return ""
	case lo == hi:
		return fmt.Sprintf("%d", lo)
	}
	return fmt.Sprintf("%d-%d", lo, hi)
}
