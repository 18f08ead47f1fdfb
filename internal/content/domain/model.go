package domain

// Member is one person on the team roster.
type Member struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Position    string `json:"position" validate:"required"`
	ImageURL    string `json:"imageUrl" validate:"required"`
	LinkedinURL string `json:"linkedinUrl,omitempty"`
	Section     string `json:"section" validate:"required,oneof=presidents vps directors yearReps executiveAdvisors"`
}

// Position is reference data for the labels shown in each roster section.
type Position struct {
	ID      string `json:"id"`
	Title   string `json:"title" validate:"required"`
	Section string `json:"section" validate:"required,oneof=presidents vps directors yearReps executiveAdvisors"`
}

type Sponsor struct {
	ID         string `json:"id"`
	Name       string `json:"name" validate:"required"`
	ImageURL   string `json:"imageUrl" validate:"required"`
	WebsiteURL string `json:"websiteUrl" validate:"required"`
	Category   string `json:"category" validate:"required,oneof=university corporate"`
}

type Tutorial struct {
	ID                  string   `json:"id"`
	Course              string   `json:"course" validate:"required"`
	Date                string   `json:"date" validate:"required"`
	Time                string   `json:"time" validate:"required"`
	TAName              string   `json:"taName" validate:"required"`
	Location            string   `json:"location" validate:"required"`
	ZoomLink            string   `json:"zoomLink,omitempty"`
	WillRecord          *bool    `json:"willRecord" validate:"required"`
	WillPostNotes       *bool    `json:"willPostNotes" validate:"required"`
	AdditionalResources []string `json:"additionalResources" validate:"required"`
	Type                string   `json:"type" validate:"required,oneof=academic non-academic"`
}

type CalendarEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required"`
	Start       string `json:"start" validate:"required,iso8601"`
	End         string `json:"end" validate:"required,iso8601"`
	AllDay      *bool  `json:"allDay" validate:"required"`
	Description string `json:"description,omitempty"`
}

// ShopItem is a piece of merchandise listed in the shop.
type ShopItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	ImageURL    string   `json:"imageUrl" validate:"required"`
	Description string   `json:"description,omitempty"`
	PurchaseURL string   `json:"purchaseUrl,omitempty"`
	Available   *bool    `json:"available" validate:"required"`
}

// PastEvent is an entry in the historical event record.
type PastEvent struct {
	ID          string   `json:"id"`
	Title       string   `json:"title" validate:"required"`
	Date        string   `json:"date" validate:"required"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Location    string   `json:"location,omitempty"`
	Photos      []string `json:"photos,omitempty"`
}

type CourseLink struct {
	CourseCode string `json:"courseCode" validate:"required"`
	LinkURL    string `json:"linkUrl" validate:"required"`
}

type FolderLink struct {
	CourseCode string `json:"courseCode" validate:"required"`
	FolderID   string `json:"folderId" validate:"required"`
	LinkURL    string `json:"linkUrl" validate:"required"`
}

// OfficeHours maps day -> time slot -> names of the people holding it.
type OfficeHours struct {
	Hours      map[string]map[string][]string `json:"hours" validate:"required"`
	Location   string                         `json:"location"`
	DaysOfWeek []string                       `json:"daysOfWeek"`
	TimeSlots  []string                       `json:"timeSlots"`
}

type ConferenceConfig struct {
	ConferenceVisible *bool `json:"conferenceVisible" validate:"required"`
}

type TeamPhoto struct {
	TeamPhotoURL *string `json:"teamPhotoUrl"`
}

// Natural keys used to identify entities within their collection.

func MemberKey(m Member) string               { return m.ID }
func PositionKey(p Position) string           { return p.ID }
func SponsorKey(s Sponsor) string             { return s.ID }
func TutorialKey(t Tutorial) string           { return t.ID }
func CalendarEventKey(e CalendarEvent) string { return e.ID }
func ShopItemKey(i ShopItem) string           { return i.ID }
func PastEventKey(e PastEvent) string         { return e.ID }
func CourseLinkKey(l CourseLink) string       { return l.CourseCode }

func FolderLinkKey(l FolderLink) string {
	return l.CourseCode + "\x00" + l.FolderID
}
