package documents

// Office hours enumerations carried by every office hours document.
var (
	DaysOfWeek = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	TimeSlots  = []string{
		"10:00-11:00", "11:00-12:00", "12:00-13:00",
		"13:00-14:00", "14:00-15:00", "15:00-16:00", "16:00-17:00",
	}
)

var (
	Team = Envelope("data/team.json", "teamMembers").
		Alias("members").
		WithDefault("teamPhotoUrl", func() any { return nil }, isStringOrNull)

	Positions = Envelope("data/positions.json", "positions")

	// Sponsors is stored as a bare array for compatibility with existing data.
	Sponsors = BareList("data/sponsors.json", "sponsors", "items")

	Tutorials = Envelope("data/tutorials.json", "tutorials")

	Calendar = Envelope("data/calendar.json", "events").
		Alias("calendarEvents")

	Shop = Envelope("data/shop.json", "items").
		Alias("shopItems")

	PastEvents = Envelope("data/pastEvents.json", "events").
		Alias("pastEvents")

	CourseLinks = Envelope("data/courseLinks.json", "links")

	FolderLinks = Envelope("data/folderLinks.json", "links")

	OfficeHours = officeHoursShape()

	Conference = conferenceShape()
)

// All lists every collection document.
var All = []*Shape{
	Team, Positions, Sponsors, Tutorials, Calendar, Shop,
	PastEvents, CourseLinks, FolderLinks, OfficeHours, Conference,
}

func officeHoursShape() *Shape {
	s := Object("data/officeHours.json", zeroOfficeHours, officeHoursCanonical)
	s.Migrate("wrap bare hours", isBareHours, func(doc any) any {
		return map[string]any{"hours": doc}
	})
	s.Migrate("fill office hours fields", func(doc any) bool {
		obj, ok := doc.(map[string]any)
		return ok && isObject(obj["hours"])
	}, fillOfficeHours)
	return s
}

func conferenceShape() *Shape {
	s := Object("data/conference.json", func() map[string]any {
		return map[string]any{"conferenceVisible": false}
	}, func(obj map[string]any) bool {
		return isBool(obj["conferenceVisible"])
	})
	s.Required = true
	s.Migrate("rename visible", func(doc any) bool {
		obj, ok := doc.(map[string]any)
		return ok && isBool(obj["visible"])
	}, func(doc any) any {
		obj := doc.(map[string]any)
		obj["conferenceVisible"] = obj["visible"]
		delete(obj, "visible")
		return obj
	})
	return s
}

func stringList(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func zeroOfficeHours() map[string]any {
	return map[string]any{
		"hours":      map[string]any{},
		"location":   "",
		"daysOfWeek": stringList(DaysOfWeek),
		"timeSlots":  stringList(TimeSlots),
	}
}

func officeHoursCanonical(obj map[string]any) bool {
	return isObject(obj["hours"]) &&
		isString(obj["location"]) &&
		isList(obj["daysOfWeek"]) &&
		isList(obj["timeSlots"])
}

func fillOfficeHours(doc any) any {
	obj := doc.(map[string]any)
	for k, v := range zeroOfficeHours() {
		if k == "hours" {
			continue
		}
		cur, present := obj[k]
		switch k {
		case "location":
			if !present || !isString(cur) {
				obj[k] = v
			}
		default:
			if !present || !isList(cur) {
				obj[k] = v
			}
		}
	}
	return obj
}

// isBareHours matches the early layout that stored the day map directly.
func isBareHours(doc any) bool {
	obj, ok := doc.(map[string]any)
	if !ok || len(obj) == 0 {
		return false
	}
	if _, has := obj["hours"]; has {
		return false
	}
	for k, v := range obj {
		if !isDay(k) || !isObject(v) {
			return false
		}
	}
	return true
}

func isDay(s string) bool {
	for _, d := range DaysOfWeek {
		if d == s {
			return true
		}
	}
	return false
}
