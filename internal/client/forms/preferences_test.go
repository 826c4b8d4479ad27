package forms

import (
	"testing"

	"github.com/dmitrijs2005/guidipper/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTimeRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       error
	}{
		{"both empty", "", "", nil},
		{"start empty", "", "10:00", nil},
		{"end empty", "10:00", "", nil},
		{"end after start", "09:00", "17:30", nil},
		{"one minute later", "09:00", "09:01", nil},
		{"equal", "12:00", "12:00", ErrInvalidTimeRange},
		{"end before start", "18:00", "08:00", ErrInvalidTimeRange},
		{"malformed", "9am", "10:00", ErrInvalidTime},
		{"out of range", "09:00", "25:00", ErrInvalidTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimeRange(tt.start, tt.end)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPreferencesForm_CarForcesAlcoholOff(t *testing.T) {
	f := NewPreferencesForm()
	require.True(t, f.AllowAlcohol(), "alcohol allowed by default")

	require.NoError(t, f.ToggleTransport(models.TransportWalk))
	require.NoError(t, f.ToggleTransport(models.TransportCar))
	assert.False(t, f.AllowAlcohol())
	assert.True(t, f.AlcoholLocked())

	assert.False(t, f.SetAllowAlcohol(true), "control is disabled while Car is selected")
	assert.False(t, f.AllowAlcohol())

	prefs, err := f.Build()
	require.NoError(t, err)
	assert.False(t, prefs.AllowAlcohol)
	assert.True(t, prefs.UsesCar())
}

func TestPreferencesForm_DeselectCarUnlocks(t *testing.T) {
	f := NewPreferencesForm()
	require.NoError(t, f.ToggleTransport(models.TransportCar))
	require.NoError(t, f.ToggleTransport(models.TransportCar))

	assert.Empty(t, f.TransportModes())
	assert.False(t, f.AlcoholLocked())
	assert.False(t, f.AllowAlcohol(), "flag stays off until the user turns it on again")
	assert.True(t, f.SetAllowAlcohol(true))
	assert.True(t, f.AllowAlcohol())
}

func TestPreferencesForm_UnknownTransport(t *testing.T) {
	f := NewPreferencesForm()
	assert.ErrorIs(t, f.ToggleTransport("Rocket"), ErrUnknownTransport)
}

func TestPreferencesForm_Build(t *testing.T) {
	f := NewPreferencesForm()
	f.CenterLandmark = " Times Square "
	f.MustVisit = "MoMA, The Met ,, Central Park"
	f.StartTime = "09:00"
	f.EndTime = "18:00"
	f.PreferredCuisine = "Chinese,Italian"
	f.MaxCommuteTime = "25"
	require.NoError(t, f.ToggleTransport(models.TransportBus))
	require.NoError(t, f.ToggleTransport(models.TransportWalk))

	got, err := f.Build()
	require.NoError(t, err)

	want := models.Preferences{
		CenterLandmark:   "Times Square",
		MustVisit:        []string{"MoMA", "The Met", "Central Park"},
		StartTime:        "09:00",
		EndTime:          "18:00",
		TransportModes:   []string{models.TransportBus, models.TransportWalk},
		AllowAlcohol:     true,
		PreferredCuisine: []string{"Chinese", "Italian"},
		MaxCommuteTime:   25,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestPreferencesForm_BuildBlocksBadTimeRange(t *testing.T) {
	f := NewPreferencesForm()
	f.StartTime = "17:00"
	f.EndTime = "09:00"

	_, err := f.Build()
	require.ErrorIs(t, err, ErrInvalidTimeRange)
	assert.EqualError(t, err, "End time must be greater than start time.")
}

func TestPreferencesForm_BuildCommute(t *testing.T) {
	f := NewPreferencesForm()

	f.MaxCommuteTime = ""
	p, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, 0, p.MaxCommuteTime)

	f.MaxCommuteTime = "abc"
	_, err = f.Build()
	assert.ErrorIs(t, err, ErrInvalidCommute)

	f.MaxCommuteTime = "-5"
	_, err = f.Build()
	assert.ErrorIs(t, err, ErrInvalidCommute)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{}, SplitList(""))
	assert.Equal(t, []string{}, SplitList(" , ,"))
	assert.Equal(t, []string{"a", "b"}, SplitList("a , b"))
}
