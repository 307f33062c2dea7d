package domain

const (
	DateFormatDMY = "DD/MM/YYYY"
	DateFormatMDY = "MM/DD/YYYY"
	DateFormatISO = "YYYY-MM-DD"

	TimeFormat12h = "12h"
	TimeFormat24h = "24h"
)

// Profile holds a user's display preferences.
type Profile struct {
	DisplayName string `json:"displayName"`
	Timezone    string `json:"timezone"`
	DateFormat  string `json:"dateFormat"`
	TimeFormat  string `json:"timeFormat"`
}

// DefaultProfile is what a user sees before saving any preferences.
func DefaultProfile() Profile {
	return Profile{
		DisplayName: "",
		Timezone:    "UTC",
		DateFormat:  DateFormatISO,
		TimeFormat:  TimeFormat24h,
	}
}

// WithDefaults fills empty fields from DefaultProfile.
func (p Profile) WithDefaults() Profile {
	d := DefaultProfile()
	if p.Timezone == "" {
		p.Timezone = d.Timezone
	}
	if p.DateFormat == "" {
		p.DateFormat = d.DateFormat
	}
	if p.TimeFormat == "" {
		p.TimeFormat = d.TimeFormat
	}
	return p
}
