package atom

import (
	"github.com/mesh-intelligence/bookingfields/pkg/bookingfields"
	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

// EventType is an event type in the shape the booking widget renders.
type EventType struct {
	ID            string                          `json:"id"`
	Slug          string                          `json:"slug"`
	Title         string                          `json:"title"`
	Description   string                          `json:"description,omitempty"`
	Length        int                             `json:"length"`
	Hidden        bool                            `json:"hidden"`
	Locations     []Location                      `json:"locations"`
	BookingFields bookingfields.CompleteFieldList `json:"bookingFields"`
	IsDefault     bool                            `json:"isDefault"`
	IsDynamic     bool                            `json:"isDynamic"`
	Profile       Profile                         `json:"profile"`
	Entity        Entity                          `json:"entity"`
	Hosts         []Host                          `json:"hosts"`
	Users         []User                          `json:"users"`
}

// Location is a meeting location in the widget's internal representation.
type Location struct {
	Type                    string `json:"type"`
	Address                 string `json:"address,omitempty"`
	Link                    string `json:"link,omitempty"`
	HostPhoneNumber         string `json:"hostPhoneNumber,omitempty"`
	DisplayLocationPublicly *bool  `json:"displayLocationPublicly,omitempty"`
}

// Profile describes the owner shown on the booking page.
type Profile struct {
	Username       string              `json:"username"`
	Name           string              `json:"name"`
	WeekStart      string              `json:"weekStart"`
	Image          string              `json:"image"`
	BrandColor     string              `json:"brandColor"`
	DarkBrandColor string              `json:"darkBrandColor"`
	Theme          *string             `json:"theme"`
	BookerLayouts  types.BookerLayouts `json:"bookerLayouts"`
}

// Entity describes the organization context of the booking page.
type Entity struct {
	FromRedirectOfNonOrgLink bool    `json:"fromRedirectOfNonOrgLink"`
	ConsiderUnpublished      bool    `json:"considerUnpublished"`
	OrgSlug                  *string `json:"orgSlug"`
	TeamSlug                 *string `json:"teamSlug"`
	Name                     string  `json:"name,omitempty"`
}

// Host is a team host. Individual event types have none.
type Host struct {
	UserID int `json:"userId"`
}

// User is an event type owner without its metadata.
type User struct {
	ID             int         `json:"id"`
	Username       string      `json:"username,omitempty"`
	Name           string      `json:"name,omitempty"`
	WeekStart      string      `json:"weekStart,omitempty"`
	AvatarURL      string      `json:"avatarUrl,omitempty"`
	BrandColor     string      `json:"brandColor,omitempty"`
	DarkBrandColor string      `json:"darkBrandColor,omitempty"`
	BookerURL      string      `json:"bookerUrl"`
	Profile        UserProfile `json:"profile"`
}

// UserProfile is the per-user profile the widget uses to build booking links.
type UserProfile struct {
	Username       string  `json:"username"`
	Name           string  `json:"name"`
	WeekStart      string  `json:"weekStart"`
	Image          string  `json:"image"`
	BrandColor     string  `json:"brandColor"`
	DarkBrandColor string  `json:"darkBrandColor"`
	Theme          *string `json:"theme"`
	Organization   *string `json:"organization"`
	ID             int     `json:"id"`
	OrganizationID *int    `json:"organizationId"`
	UserID         int     `json:"userId"`
	UpID           string  `json:"upId"`
}
