package atom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

func TestTransformLocations(t *testing.T) {
	public := types.Bool(true)
	tests := []struct {
		name string
		in   types.Location
		want Location
	}{
		{"address", types.Location{Type: types.LocationTypeAddress, Address: "1 Main St", Public: public},
			Location{Type: LocationInPerson, Address: "1 Main St", DisplayLocationPublicly: public}},
		{"link", types.Location{Type: types.LocationTypeLink, Link: "https://meet.example.com/x"},
			Location{Type: LocationLink, Link: "https://meet.example.com/x"}},
		{"phone", types.Location{Type: types.LocationTypePhone, Phone: "+15550100"},
			Location{Type: LocationUserPhone, HostPhoneNumber: "+15550100"}},
		{"integration", types.Location{Type: types.LocationTypeIntegration, Integration: "google-meet"},
			Location{Type: "integrations:google:meet"}},
		{"attendee address", types.Location{Type: types.LocationTypeAttendeeAddress},
			Location{Type: LocationAttendeeInPerson}},
		{"attendee phone", types.Location{Type: types.LocationTypeAttendeePhone},
			Location{Type: LocationAttendeePhone}},
		{"attendee defined", types.Location{Type: types.LocationTypeAttendeeDefined},
			Location{Type: LocationSomewhereElse}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TransformLocations([]types.Location{tt.in})
			require.NoError(t, err)
			assert.Equal(t, []Location{tt.want}, got)
		})
	}
}

func TestTransformLocationsEmpty(t *testing.T) {
	got, err := TransformLocations(nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTransformLocationsRejectsUnknown(t *testing.T) {
	tests := []types.Location{
		{Type: "carrierPigeon"},
		{Type: types.LocationTypeIntegration, Integration: "fax"},
	}
	for _, in := range tests {
		_, err := TransformLocations([]types.Location{{Type: types.LocationTypeLink}, in})
		assert.ErrorIs(t, err, ErrInvalidLocation)
		assert.Contains(t, err.Error(), "location 1")
	}
}
