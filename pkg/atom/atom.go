// Package atom converts API event types into the shape consumed by the
// embeddable booking widget. The conversion reconciles the persisted booking
// fields so the widget always receives every system field.
package atom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/bookingfields/pkg/bookingfields"
	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

// Default URLs used when Config leaves them empty.
const (
	DefaultWebsiteURL = "http://localhost:3000"
	DefaultWebappURL  = "http://localhost:3000"
)

// Transform errors.
var (
	ErrNoUsers         = errors.New("event type has no users")
	ErrInvalidLocation = errors.New("invalid location")
)

// Config holds the public URLs the widget links to.
type Config struct {
	WebsiteURL string `mapstructure:"website_url" yaml:"website_url"`
	WebappURL  string `mapstructure:"webapp_url" yaml:"webapp_url"`
}

// Transformer converts event types for the booking widget. It is safe for
// concurrent use.
type Transformer struct {
	cfg        Config
	reconciler *bookingfields.Reconciler
}

// NewTransformer returns a Transformer. A nil reconciler uses the default
// catalog.
func NewTransformer(cfg Config, r *bookingfields.Reconciler) *Transformer {
	if cfg.WebsiteURL == "" {
		cfg.WebsiteURL = DefaultWebsiteURL
	}
	if cfg.WebappURL == "" {
		cfg.WebappURL = DefaultWebappURL
	}
	if r == nil {
		r = bookingfields.NewReconciler()
	}
	return &Transformer{cfg: cfg, reconciler: r}
}

// Transform converts e. e is not modified.
func (t *Transformer) Transform(e *types.EventType) (*EventType, error) {
	if e == nil || len(e.Users) == 0 {
		return nil, ErrNoUsers
	}

	locations, err := TransformLocations(e.Locations)
	if err != nil {
		return nil, err
	}

	fields, err := t.reconciler.Reconcile(e.BookingFields)
	if err != nil {
		return nil, fmt.Errorf("reconcile booking fields of %q: %w", e.Slug, err)
	}

	first := e.Users[0]
	layouts := defaultBookerLayouts()
	if first.Metadata != nil && first.Metadata.DefaultBookerLayouts != nil {
		layouts = *first.Metadata.DefaultBookerLayouts
	}
	if err := layouts.Validate(); err != nil {
		return nil, fmt.Errorf("booker layouts of user %d: %w", first.ID, err)
	}

	out := &EventType{
		ID:            e.ID,
		Slug:          e.Slug,
		Title:         e.Title,
		Description:   e.Description,
		Length:        e.LengthInMinutes,
		Hidden:        e.Hidden,
		Locations:     locations,
		BookingFields: fields,
		IsDefault:     IsDefaultEvent(e.Slug),
		IsDynamic:     false,
		Profile: Profile{
			Username:       first.Username,
			Name:           first.Name,
			WeekStart:      first.WeekStart,
			Image:          t.avatarURL(first.AvatarURL),
			BrandColor:     first.BrandColor,
			DarkBrandColor: first.DarkBrandColor,
			BookerLayouts:  layouts,
		},
		Entity: Entity{
			FromRedirectOfNonOrgLink: true,
			ConsiderUnpublished:      false,
		},
		Hosts: []Host{},
		Users: make([]User, len(e.Users)),
	}
	for i, u := range e.Users {
		out.Users[i] = t.user(u)
	}
	return out, nil
}

func (t *Transformer) user(u types.User) User {
	return User{
		ID:             u.ID,
		Username:       u.Username,
		Name:           u.Name,
		WeekStart:      u.WeekStart,
		AvatarURL:      u.AvatarURL,
		BrandColor:     u.BrandColor,
		DarkBrandColor: u.DarkBrandColor,
		BookerURL:      t.cfg.WebsiteURL,
		Profile: UserProfile{
			Username:       u.Username,
			Name:           u.Name,
			WeekStart:      u.WeekStart,
			Image:          t.avatarURL(u.AvatarURL),
			BrandColor:     u.BrandColor,
			DarkBrandColor: u.DarkBrandColor,
			ID:             u.ID,
			UserID:         u.ID,
			UpID:           fmt.Sprintf("usr-%d", u.ID),
		},
	}
}

func (t *Transformer) avatarURL(avatar string) string {
	if avatar != "" {
		return avatar
	}
	return strings.TrimSuffix(t.cfg.WebappURL, "/") + "/avatar.svg"
}

func defaultBookerLayouts() types.BookerLayouts {
	enabled := make([]types.BookerLayout, len(types.BookerLayoutOptions))
	copy(enabled, types.BookerLayoutOptions)
	return types.BookerLayouts{
		EnabledLayouts: enabled,
		DefaultLayout:  types.BookerLayoutMonthView,
	}
}

// defaultEventSlugs are the built-in events that exist without a stored
// event type.
var defaultEventSlugs = map[string]bool{
	"dynamic": true,
}

// IsDefaultEvent reports whether slug names a built-in event.
func IsDefaultEvent(slug string) bool {
	return defaultEventSlugs[slug]
}
