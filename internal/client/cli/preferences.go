package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/guidipper/internal/client/forms"
	"github.com/dmitrijs2005/guidipper/internal/client/models"
)

// Preferences walks through the preferences form, generates a route and
// shows it on the result page. The previous answers are offered as
// defaults.
func (a *App) Preferences(ctx context.Context) error {
	if !a.navigate(ctx, PagePreferences) {
		return nil
	}

	form, err := a.fillPreferences()
	if err != nil {
		return a.report(ctx, "read preferences", err)
	}
	a.prefs = form

	prefs, err := form.Build()
	if err != nil {
		return a.report(ctx, "generate route", err)
	}

	var route string
	err = a.withLoading(ctx, "Generating your AI route", func() error {
		var gerr error
		route, gerr = a.routes.Generate(ctx, prefs)
		return gerr
	})
	if err != nil {
		return a.report(ctx, "generate route", err)
	}

	a.log.Info(ctx, "route generated", "landmark", prefs.CenterLandmark, "modes", prefs.TransportModes)
	a.chat.SetRoute(route, nil)
	a.navigate(ctx, PageResult)
	a.showRoute()
	return nil
}

func (a *App) ask(prompt, current string) (string, error) {
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, current)
	}
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return current, nil
	}
	if v == "-" {
		return "", nil
	}
	return v, nil
}

// fillPreferences prompts field by field. An empty answer keeps the shown
// value and "-" clears it.
func (a *App) fillPreferences() (*forms.PreferencesForm, error) {
	prev := a.prefs
	if prev == nil {
		prev = forms.NewPreferencesForm()
	}
	f := forms.NewPreferencesForm()

	var err error
	if f.CenterLandmark, err = a.ask("Center landmark", prev.CenterLandmark); err != nil {
		return nil, err
	}
	if f.MustVisit, err = a.ask("Must-visit places (comma separated)", prev.MustVisit); err != nil {
		return nil, err
	}
	if f.StartTime, err = a.ask("Start time (HH:MM)", prev.StartTime); err != nil {
		return nil, err
	}
	if f.EndTime, err = a.ask("End time (HH:MM)", prev.EndTime); err != nil {
		return nil, err
	}
	if err := forms.ValidateTimeRange(f.StartTime, f.EndTime); err != nil {
		return nil, err
	}

	modes, err := a.ask("Transport modes, comma separated from "+strings.Join(models.TransportModes, ", "),
		strings.Join(prev.TransportModes(), ","))
	if err != nil {
		return nil, err
	}
	for _, m := range forms.SplitList(modes) {
		if slices.Contains(f.TransportModes(), normalizeMode(m)) {
			continue
		}
		if err := f.ToggleTransport(normalizeMode(m)); err != nil {
			return nil, fmt.Errorf("%w (%s)", err, m)
		}
	}

	if f.AlcoholLocked() {
		a.println("Alcohol is not allowed when travelling by car.")
	} else {
		allow, err := GetYesNo(a.reader, "Allow alcohol?", prev.AllowAlcohol(), a.out)
		if err != nil {
			return nil, err
		}
		f.SetAllowAlcohol(allow)
	}

	if f.PreferredCuisine, err = a.ask("Preferred cuisines (comma separated)", prev.PreferredCuisine); err != nil {
		return nil, err
	}
	if f.MaxCommuteTime, err = a.ask("Max commute time (minutes)", prev.MaxCommuteTime); err != nil {
		return nil, err
	}
	return f, nil
}

// normalizeMode maps "car", "CAR" and so on to the canonical mode name.
func normalizeMode(m string) string {
	for _, known := range models.TransportModes {
		if strings.EqualFold(m, known) {
			return known
		}
	}
	return m
}
