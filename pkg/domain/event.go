package domain

import "time"

// CountryCode is the fixed country of every ingested event
const CountryCode = "IT"

// NoTime is the time value of events without a known start time
const NoTime = "N/A"

// Event represents a civic event derived from a raw item
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	EventType   EventType `json:"event_type"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Date        string    `json:"date,omitempty"` // YYYY-MM-DD, empty when unknown
	Time        string    `json:"time"`           // HH:MM or N/A
	SourceName  string    `json:"source_name,omitempty"`
	SourceURL   string    `json:"source_url,omitempty"`
	EventURL    string    `json:"event_url,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CountryCode string    `json:"country_code"`
	Attendees   int       `json:"attendees"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasDate reports whether the event date is known
func (e Event) HasDate() bool {
	return e.Date != ""
}

// Category is the thematic area of an event
type Category string

// categories, declaration order is the classifier default order
const (
	CategoryEnvironment  Category = "ENVIRONMENT"
	CategoryLGBTQ        Category = "LGBTQ+"
	CategoryWomenRights  Category = "WOMEN'S RIGHTS"
	CategoryLabor        Category = "LABOR"
	CategoryRacialSocial Category = "RACIAL & SOCIAL JUSTICE"
	CategoryCivilHuman   Category = "CIVIL & HUMAN RIGHTS"
	CategoryHealthEdu    Category = "HEALTHCARE & EDUCATION"
	CategoryPeace        Category = "PEACE & ANTI-WAR"
	CategoryTransparency Category = "TRANSPARENCY & ANTI-CORRUPTION"
	CategoryOther        Category = "OTHER"
)

// Categories lists all known categories
var Categories = []Category{
	CategoryEnvironment, CategoryLGBTQ, CategoryWomenRights, CategoryLabor, CategoryRacialSocial,
	CategoryCivilHuman, CategoryHealthEdu, CategoryPeace, CategoryTransparency, CategoryOther,
}

// Valid checks the category is one of the closed set
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// EventType is the format of an event
type EventType string

// event types
const (
	EventProtest  EventType = "Protest"
	EventAssembly EventType = "Assembly"
	EventWorkshop EventType = "Workshop"
	EventTalk     EventType = "Talk"
	EventOther    EventType = "Other"
)

// EventTypes lists all known event types
var EventTypes = []EventType{EventProtest, EventAssembly, EventWorkshop, EventTalk, EventOther}

// Valid checks the event type is one of the closed set
func (t EventType) Valid() bool {
	for _, known := range EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// EventFilter represents filtering criteria for stored events
type EventFilter struct {
	City     string
	Category Category
	Limit    int
}
