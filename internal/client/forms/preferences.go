package forms

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/guidipper/internal/client/models"
)

// PreferencesForm is the raw state of the preferences page. List fields are
// comma-separated, as typed.
type PreferencesForm struct {
	CenterLandmark   string
	MustVisit        string
	StartTime        string
	EndTime          string
	PreferredCuisine string
	MaxCommuteTime   string

	transportModes []string
	allowAlcohol   bool
}

// NewPreferencesForm returns an empty form. Alcohol is allowed by default.
func NewPreferencesForm() *PreferencesForm {
	return &PreferencesForm{allowAlcohol: true}
}

// ToggleTransport adds mode when absent and removes it when present.
func (f *PreferencesForm) ToggleTransport(mode string) error {
	if !slices.Contains(models.TransportModes, mode) {
		return ErrUnknownTransport
	}
	if i := slices.Index(f.transportModes, mode); i >= 0 {
		f.transportModes = slices.Delete(f.transportModes, i, i+1)
	} else {
		f.transportModes = append(f.transportModes, mode)
	}
	f.applyTransportRules()
	return nil
}

// TransportModes returns the chosen modes in selection order.
func (f *PreferencesForm) TransportModes() []string {
	return slices.Clone(f.transportModes)
}

// AlcoholLocked reports whether the alcohol control is disabled. It is while
// Car is selected.
func (f *PreferencesForm) AlcoholLocked() bool {
	return slices.Contains(f.transportModes, models.TransportCar)
}

// SetAllowAlcohol changes the alcohol flag. While locked the flag stays
// false and false is returned.
func (f *PreferencesForm) SetAllowAlcohol(allow bool) bool {
	if f.AlcoholLocked() {
		f.allowAlcohol = false
		return false
	}
	f.allowAlcohol = allow
	return true
}

func (f *PreferencesForm) AllowAlcohol() bool {
	return f.allowAlcohol
}

// Deselecting Car does not turn alcohol back on.
func (f *PreferencesForm) applyTransportRules() {
	if f.AlcoholLocked() {
		f.allowAlcohol = false
	}
}

// Build validates the form and produces the request body.
func (f *PreferencesForm) Build() (models.Preferences, error) {
	if err := ValidateTimeRange(f.StartTime, f.EndTime); err != nil {
		return models.Preferences{}, err
	}

	commute := 0
	if s := strings.TrimSpace(f.MaxCommuteTime); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return models.Preferences{}, ErrInvalidCommute
		}
		commute = n
	}

	f.applyTransportRules()

	return models.Preferences{
		CenterLandmark:   strings.TrimSpace(f.CenterLandmark),
		MustVisit:        SplitList(f.MustVisit),
		StartTime:        strings.TrimSpace(f.StartTime),
		EndTime:          strings.TrimSpace(f.EndTime),
		TransportModes:   f.TransportModes(),
		AllowAlcohol:     f.allowAlcohol,
		PreferredCuisine: SplitList(f.PreferredCuisine),
		MaxCommuteTime:   commute,
	}, nil
}

// ValidateTimeRange accepts an empty start or end as "not set". Otherwise
// both must parse as HH:MM and end must be strictly after start.
func ValidateTimeRange(start, end string) error {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return nil
	}
	s, err := minutesOfDay(start)
	if err != nil {
		return err
	}
	e, err := minutesOfDay(end)
	if err != nil {
		return err
	}
	if e <= s {
		return ErrInvalidTimeRange
	}
	return nil
}

func minutesOfDay(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, ErrInvalidTime
	}
	return t.Hour()*60 + t.Minute(), nil
}

// SplitList splits a comma-separated input, trims the items and drops empty
// ones. The result is never nil so it encodes as [].
func SplitList(s string) []string {
	out := make([]string, 0)
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
