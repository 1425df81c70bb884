package extract

import (
	"errors"
	"strings"

	"github.com/umputun/corteo/pkg/domain"
)

// ErrMalformedInput is returned when no usable title can be derived for an item
var ErrMalformedInput = errors.New("no usable title")

// Parts are the independent extraction results for one item
type Parts struct {
	Title          string
	Description    string
	DateTime       DateTime
	Location       Location
	Classification Classification
}

// Provenance holds caller-supplied fields describing where an item came from
type Provenance struct {
	SourceName    string
	SourceURL     string
	EventURL      string
	ImageURL      string
	FallbackTitle string
}

// Assemble merges extraction parts into a complete event, filling every unset field with its default.
// It performs no I/O.
func Assemble(parts Parts, prov Provenance) (domain.Event, error) {
	title := strings.TrimSpace(parts.Title)
	if title == "" {
		title = truncateWords(strings.Join(strings.Fields(stripSymbols(prov.FallbackTitle)), " "), maxFallbackTitle)
	}
	if title == "" {
		return domain.Event{}, ErrMalformedInput
	}

	ev := domain.Event{
		Title:       title,
		Description: parts.Description,
		Category:    parts.Classification.Category,
		EventType:   parts.Classification.EventType,
		City:        parts.Location.City,
		Address:     parts.Location.Address,
		Latitude:    parts.Location.Coordinates.Lat,
		Longitude:   parts.Location.Coordinates.Lng,
		Date:        parts.DateTime.Date,
		Time:        parts.DateTime.Time,
		SourceName:  prov.SourceName,
		SourceURL:   prov.SourceURL,
		EventURL:    prov.EventURL,
		ImageURL:    prov.ImageURL,
		CountryCode: domain.CountryCode,
	}

	if !ev.Category.Valid() {
		ev.Category = domain.CategoryOther
	}
	if !ev.EventType.Valid() {
		ev.EventType = domain.EventOther
	}
	if ev.City == "" {
		ev.City = DefaultCity
	}
	if ev.Address == "" {
		ev.Address = ev.City
	}
	if ev.Time == "" {
		ev.Time = domain.NoTime
	}
	return ev, nil
}
