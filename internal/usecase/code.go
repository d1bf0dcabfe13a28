package usecase

import (
	"fmt"

	"pakket-admin/internal/data/entity"
)

var destinationPrefixes = map[entity.Destination]string{
	entity.DestinationSuriname:  "K",
	entity.DestinationCuracao:   "C",
	entity.DestinationAruba:     "A",
	entity.DestinationBonaire:   "B",
	entity.DestinationStMaarten: "STM",
}

var transportSuffixes = map[entity.TransportType]string{
	entity.TransportSea: "Z",
	entity.TransportAir: "L",
}

// DeriveCode returns the package number prefix for a destination and transport type.
func DeriveCode(destination entity.Destination, transportType entity.TransportType) (string, error) {
	base, ok := destinationPrefixes[destination]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDestination, destination)
	}
	suffix, ok := transportSuffixes[transportType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidTransportType, transportType)
	}
	return base + suffix, nil
}

func ParseDestination(value string) (entity.Destination, error) {
	d := entity.Destination(value)
	if _, ok := destinationPrefixes[d]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDestination, value)
	}
	return d, nil
}

func ParseTransportType(value string) (entity.TransportType, error) {
	t := entity.TransportType(value)
	if _, ok := transportSuffixes[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidTransportType, value)
	}
	return t, nil
}

func ParseStatus(value string) (entity.PackageStatus, error) {
	for _, s := range entity.PackageStatuses {
		if string(s) == value {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
}
