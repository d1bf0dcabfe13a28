package usecase

import (
	"testing"

	"pakket-admin/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveCode(t *testing.T) {
	tests := []struct {
		destination entity.Destination
		transport   entity.TransportType
		want        string
	}{
		{entity.DestinationSuriname, entity.TransportSea, "KZ"},
		{entity.DestinationSuriname, entity.TransportAir, "KL"},
		{entity.DestinationCuracao, entity.TransportSea, "CZ"},
		{entity.DestinationCuracao, entity.TransportAir, "CL"},
		{entity.DestinationAruba, entity.TransportSea, "AZ"},
		{entity.DestinationAruba, entity.TransportAir, "AL"},
		{entity.DestinationBonaire, entity.TransportSea, "BZ"},
		{entity.DestinationBonaire, entity.TransportAir, "BL"},
		{entity.DestinationStMaarten, entity.TransportSea, "STMZ"},
		{entity.DestinationStMaarten, entity.TransportAir, "STML"},
	}

	for _, tt := range tests {
		t.Run(string(tt.destination)+"_"+string(tt.transport), func(t *testing.T) {
			got, err := DeriveCode(tt.destination, tt.transport)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveCode_InvalidInput(t *testing.T) {
	_, err := DeriveCode("jamaica", entity.TransportSea)
	assert.ErrorIs(t, err, ErrInvalidDestination)

	_, err = DeriveCode(entity.DestinationAruba, "rail")
	assert.ErrorIs(t, err, ErrInvalidTransportType)

	_, err = DeriveCode("", "")
	assert.ErrorIs(t, err, ErrInvalidDestination)
}

func TestParseStatus_Closure(t *testing.T) {
	for _, s := range entity.PackageStatuses {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	for _, bad := range []string{"", "verzonden", "Aangemeld", "delivered"} {
		_, err := ParseStatus(bad)
		assert.ErrorIs(t, err, ErrInvalidStatus, bad)
	}
}

func TestStatusPolicy(t *testing.T) {
	free := NewStatusPolicy(false)
	assert.NoError(t, free.Allow(entity.StatusDelivered, entity.StatusRegistered))
	assert.NoError(t, free.Allow(entity.StatusRegistered, entity.StatusDelivered))

	forward := NewStatusPolicy(true)
	assert.NoError(t, forward.Allow(entity.StatusRegistered, entity.StatusRegistered))
	assert.NoError(t, forward.Allow(entity.StatusRegistered, entity.StatusDeparted))
	assert.NoError(t, forward.Allow(entity.StatusArrived, entity.StatusDelivered))
	assert.ErrorIs(t, forward.Allow(entity.StatusRegistered, entity.StatusArrived), ErrInvalidTransition)
	assert.ErrorIs(t, forward.Allow(entity.StatusDelivered, entity.StatusDeparted), ErrInvalidTransition)
}
