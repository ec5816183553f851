// Package booking prices studio sessions and submits booking requests.
package booking

import "slices"

type Studio string

const (
	StudioPodcast Studio = "podcast"
	StudioVideo   Studio = "video"
	StudioFull    Studio = "full"
)

// Package is a bookable tier of a studio. Rate is in INR per hour.
type Package struct {
	Value string
	Label string
	Rate  int
}

var catalog = map[Studio][]Package{
	StudioPodcast: {
		{Value: "basic", Label: "Podcast Basic", Rate: 2500},
		{Value: "pro", Label: "Podcast Pro", Rate: 4000},
	},
	StudioVideo: {
		{Value: "basic", Label: "Video Basic", Rate: 5000},
		{Value: "pro", Label: "Video Pro", Rate: 8000},
	},
	StudioFull: {
		{Value: "premium", Label: "Full Production", Rate: 12000},
	},
}

// Studios lists the studios in display order.
var Studios = []Studio{StudioPodcast, StudioVideo, StudioFull}

// TimeSlots are the bookable two-hour windows of a day.
var TimeSlots = []string{"09:00-11:00", "11:00-13:00", "13:00-15:00", "15:00-17:00", "17:00-19:00", "19:00-21:00"}

const (
	MinHours = 1
	MaxHours = 8
)

// Packages returns the tiers of studio, nil for an unknown studio.
func Packages(studio Studio) []Package {
	return slices.Clone(catalog[studio])
}

// Lookup finds the package called value in studio.
func Lookup(studio Studio, value string) (Package, bool) {
	for _, p := range catalog[studio] {
		if p.Value == value {
			return p, true
		}
	}
	return Package{}, false
}

// Price is rate times hours, or 0 when the combination is unknown or the
// duration is out of range.
func Price(studio Studio, pkg string, hours int) int {
	if hours < MinHours || hours > MaxHours {
		return 0
	}
	p, ok := Lookup(studio, pkg)
	if !ok {
		return 0
	}
	return p.Rate * hours
}

func ValidTimeSlot(slot string) bool {
	return slices.Contains(TimeSlots, slot)
}
