package types

import (
	"github.com/google/uuid"
)

// Attraction settings. Everything that is not explicitly indoor is treated
// as outdoor when partitioning candidates for a day.
const (
	SettingIndoor  = "indoor"
	SettingOutdoor = "outdoor"
)

// Entry fee tiers. Only two tiers exist; any nationality other than
// "indian" resolves to the foreigner tier.
const (
	FeeTierIndian    = "indian"
	FeeTierForeigner = "foreigner"
)

// Attraction is a point of interest as stored in the catalog. Records are
// read-only inputs for a generation run.
type Attraction struct {
	ID               uuid.UUID          `json:"id"`
	City             string             `json:"city"`
	Name             string             `json:"name"`
	Category         string             `json:"category"`
	IndoorOutdoor    string             `json:"indoor_outdoor"`
	Tags             []string           `json:"tags,omitempty"`
	OpeningHours     string             `json:"opening_hours"`
	AvgVisitDuration int                `json:"avg_visit_duration"`
	EntryFee         map[string]float64 `json:"entry_fee"`
	Latitude         float64            `json:"latitude"`
	Longitude        float64            `json:"longitude"`
	Address          string             `json:"address,omitempty"`
	Description      string             `json:"description,omitempty"`
	Images           []string           `json:"images,omitempty"`
}

// HasTag reports whether the attraction carries the given label.
func (a Attraction) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsIndoor reports whether the attraction is classified as indoor.
func (a Attraction) IsIndoor() bool {
	return a.IndoorOutdoor == SettingIndoor
}

// AttractionFilters narrows a catalog query.
type AttractionFilters struct {
	AvoidCrowd      bool `json:"avoid_crowd,omitempty"`
	IndoorOnly      bool `json:"indoor_only,omitempty"`
	PhotographyOnly bool `json:"photography_only,omitempty"`
}

// Preferences are the traveler flags fed to the suitability model. They
// are derived from the request filters, not supplied directly.
type Preferences struct {
	Indoor  bool `json:"indoor"`
	Outdoor bool `json:"outdoor"`
	Crowded bool `json:"crowded"`
}

// PreferencesFromFilters maps catalog filters onto model preferences the
// same way the scheduling pipeline always has: an indoor-only trip implies
// no outdoor preference, and avoiding crowds implies no crowd tolerance.
func PreferencesFromFilters(f AttractionFilters) Preferences {
	return Preferences{
		Indoor:  f.IndoorOnly,
		Outdoor: !f.IndoorOnly,
		Crowded: !f.AvoidCrowd,
	}
}
