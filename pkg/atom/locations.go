package atom

import (
	"fmt"

	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

// Internal location types.
const (
	LocationInPerson         = "inPerson"
	LocationLink             = "link"
	LocationUserPhone        = "userPhone"
	LocationAttendeeInPerson = "attendeeInPerson"
	LocationAttendeePhone    = "phone"
	LocationSomewhereElse    = "somewhereElse"
)

// integrationTypes maps API integration names to internal location types.
var integrationTypes = map[string]string{
	"cal-video":       "integrations:daily",
	"google-meet":     "integrations:google:meet",
	"zoom":            "integrations:zoom",
	"office365-video": "integrations:office365_video",
	"jitsi":           "integrations:jitsi",
	"whereby-video":   "integrations:whereby_video",
	"huddle":          "integrations:huddle01",
	"tandem":          "integrations:tandem",
}

// TransformLocations converts API locations to the internal representation.
// A nil input yields an empty slice.
func TransformLocations(in []types.Location) ([]Location, error) {
	out := make([]Location, 0, len(in))
	for i, l := range in {
		loc, err := transformLocation(l)
		if err != nil {
			return nil, fmt.Errorf("location %d: %w", i, err)
		}
		out = append(out, loc)
	}
	return out, nil
}

func transformLocation(l types.Location) (Location, error) {
	switch l.Type {
	case types.LocationTypeAddress:
		return Location{Type: LocationInPerson, Address: l.Address, DisplayLocationPublicly: l.Public}, nil
	case types.LocationTypeLink:
		return Location{Type: LocationLink, Link: l.Link, DisplayLocationPublicly: l.Public}, nil
	case types.LocationTypePhone:
		return Location{Type: LocationUserPhone, HostPhoneNumber: l.Phone, DisplayLocationPublicly: l.Public}, nil
	case types.LocationTypeIntegration:
		t, ok := integrationTypes[l.Integration]
		if !ok {
			return Location{}, fmt.Errorf("%w: unknown integration %q", ErrInvalidLocation, l.Integration)
		}
		return Location{Type: t}, nil
	case types.LocationTypeAttendeeAddress:
		return Location{Type: LocationAttendeeInPerson}, nil
	case types.LocationTypeAttendeePhone:
		return Location{Type: LocationAttendeePhone}, nil
	case types.LocationTypeAttendeeDefined:
		return Location{Type: LocationSomewhereElse}, nil
	default:
		return Location{}, fmt.Errorf("%w: unknown type %q", ErrInvalidLocation, l.Type)
	}
}
