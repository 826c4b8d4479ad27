package models

// Transport modes offered by the preferences page.
const (
	TransportWalk = "Walk"
	TransportBus  = "Bus"
	TransportTaxi = "Taxi"
	TransportCar  = "Car"
)

// TransportModes lists the modes in display order.
var TransportModes = []string{TransportWalk, TransportBus, TransportTaxi, TransportCar}

// Preferences is the body of a route generation request.
type Preferences struct {
	CenterLandmark   string   `json:"centerLandmark"`
	MustVisit        []string `json:"mustVisit"`
	StartTime        string   `json:"startTime"`
	EndTime          string   `json:"endTime"`
	TransportModes   []string `json:"transportModes"`
	AllowAlcohol     bool     `json:"allowAlcohol"`
	PreferredCuisine []string `json:"preferredCuisine"`
	MaxCommuteTime   int      `json:"maxCommuteTime"`
}

// UsesCar reports whether Car is among the chosen transport modes.
func (p Preferences) UsesCar() bool {
	for _, m := range p.TransportModes {
		if m == TransportCar {
			return true
		}
	}
	return false
}
