package booking

import (
	"sort"

	"mindcare/internal/api"
)

// Any disables a directory filter.
const Any = "all"

type Filter struct {
	Specialization string
	Language       string
}

// FilterCounsellors keeps counsellors matching every set filter. Empty
// fields behave like Any.
func FilterCounsellors(counsellors []api.Counsellor, filter Filter) []api.Counsellor {
	out := make([]api.Counsellor, 0, len(counsellors))
	for _, counsellor := range counsellors {
		if !matches(counsellor.Specialization, filter.Specialization) {
			continue
		}
		if !matches(counsellor.Languages, filter.Language) {
			continue
		}
		out = append(out, counsellor)
	}
	return out
}

// Specializations lists the distinct specializations on offer, sorted.
func Specializations(counsellors []api.Counsellor) []string {
	return distinct(counsellors, func(c api.Counsellor) []string { return c.Specialization })
}

func Languages(counsellors []api.Counsellor) []string {
	return distinct(counsellors, func(c api.Counsellor) []string { return c.Languages })
}

func matches(values []string, want string) bool {
	if want == "" || want == Any {
		return true
	}
	return contains(values, want)
}

func distinct(counsellors []api.Counsellor, field func(api.Counsellor) []string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, counsellor := range counsellors {
		for _, value := range field(counsellor) {
			if _, ok := seen[value]; ok || value == "" {
				continue
			}
			seen[value] = struct{}{}
			out = append(out, value)
		}
	}
	sort.Strings(out)
	return out
}
