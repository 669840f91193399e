package types

import (
	"fmt"
	"time"
)

// Location types accepted on an API event type.
const (
	LocationTypeAddress         = "address"
	LocationTypeLink            = "link"
	LocationTypePhone           = "phone"
	LocationTypeIntegration     = "integration"
	LocationTypeAttendeeAddress = "attendeeAddress"
	LocationTypeAttendeePhone   = "attendeePhone"
	LocationTypeAttendeeDefined = "attendeeDefined"
)

// Location is a meeting location in the API representation.
type Location struct {
	Type        string `json:"type"`
	Address     string `json:"address,omitempty"`
	Link        string `json:"link,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Integration string `json:"integration,omitempty"`
	Public      *bool  `json:"public,omitempty"`
}

// BookerLayout is one layout of the booking widget.
type BookerLayout string

// Booker layouts.
const (
	BookerLayoutMonthView  BookerLayout = "month_view"
	BookerLayoutWeekView   BookerLayout = "week_view"
	BookerLayoutColumnView BookerLayout = "column_view"
)

// BookerLayoutOptions lists every layout in display order.
var BookerLayoutOptions = []BookerLayout{
	BookerLayoutMonthView,
	BookerLayoutWeekView,
	BookerLayoutColumnView,
}

// BookerLayouts holds the layouts a booker may switch between.
type BookerLayouts struct {
	EnabledLayouts []BookerLayout `json:"enabledLayouts"`
	DefaultLayout  BookerLayout   `json:"defaultLayout"`
}

// Validate checks that every layout is known, at least one is enabled, and
// the default layout is among the enabled ones.
func (b BookerLayouts) Validate() error {
	if len(b.EnabledLayouts) == 0 {
		return ErrInvalidBookerLayouts
	}
	enabled := make(map[BookerLayout]bool, len(b.EnabledLayouts))
	for _, l := range b.EnabledLayouts {
		if !isBookerLayout(l) {
			return ErrInvalidBookerLayouts
		}
		enabled[l] = true
	}
	if !enabled[b.DefaultLayout] {
		return ErrInvalidBookerLayouts
	}
	return nil
}

func isBookerLayout(l BookerLayout) bool {
	for _, o := range BookerLayoutOptions {
		if o == l {
			return true
		}
	}
	return false
}

// UserMetadata is the subset of user metadata the booking widget reads.
type UserMetadata struct {
	DefaultBookerLayouts *BookerLayouts `json:"defaultBookerLayouts,omitempty"`
}

// User is an owner of an event type.
type User struct {
	ID             int           `json:"id"`
	Username       string        `json:"username,omitempty"`
	Name           string        `json:"name,omitempty"`
	WeekStart      string        `json:"weekStart,omitempty"`
	AvatarURL      string        `json:"avatarUrl,omitempty"`
	BrandColor     string        `json:"brandColor,omitempty"`
	DarkBrandColor string        `json:"darkBrandColor,omitempty"`
	Metadata       *UserMetadata `json:"metadata,omitempty"`
}

// EventType is a bookable event type as exposed by the API. BookingFields
// holds the persisted, user-edited field list before reconciliation.
type EventType struct {
	ID              string     `json:"id"`
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	LengthInMinutes int        `json:"lengthInMinutes"`
	Hidden          bool       `json:"hidden,omitempty"`
	Locations       []Location `json:"locations,omitempty"`
	BookingFields   []Field    `json:"bookingFields,omitempty"`
	Users           []User     `json:"users,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Validate checks the attributes the store relies on.
func (e *EventType) Validate() error {
	if e.Slug == "" {
		return ErrInvalidSlug
	}
	if e.Title == "" {
		return ErrInvalidName
	}
	if e.LengthInMinutes <= 0 {
		return ErrInvalidLength
	}
	for i, f := range e.BookingFields {
		if f.Name == "" {
			return fmt.Errorf("%w: booking field %d has no name", ErrInvalidField, i)
		}
		if f.Type != "" && !IsValidFieldType(f.Type) {
			return fmt.Errorf("%w: booking field %q has unknown type %q", ErrInvalidField, f.Name, f.Type)
		}
	}
	return nil
}
