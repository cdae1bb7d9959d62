package screens

import "github.com/ogc16/FitnessApp/internal/navigation"

type Tab struct {
	Title string
	Route navigation.Route
}

var Tabs = []Tab{
	{Title: "Feed", Route: navigation.RouteTabs},
	{Title: "Workouts", Route: navigation.RouteWorkouts},
	{Title: "Profile", Route: navigation.RouteProfile},
}

// TabFor returns the tab that owns route, if any.
func TabFor(route navigation.Route) (Tab, bool) {
	for _, tab := range Tabs {
		if tab.Route == route {
			return tab, true
		}
	}
	return Tab{}, false
}
