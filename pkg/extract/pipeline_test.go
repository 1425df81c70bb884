package extract

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/corteo/pkg/domain"
)

func newTestPipeline(geo Geocoder) *Pipeline {
	return NewPipeline(
		NewDateExtractor(DateConfig{Now: fixedClock(2025, time.June, 1), Location: time.UTC}),
		NewLocator(LocatorConfig{Geocoder: geo}),
		NewClassifier(nil, nil),
	)
}

func TestPipeline_Process(t *testing.T) {
	p := newTestPipeline(nil)
	meta := domain.SourceMeta{Name: "collettivi", URL: "https://example.com"}

	t.Run("caps caption", func(t *testing.T) {
		item := domain.RawItem{Text: "CORTEO SABATO 28 GIUGNO, ORE 17 STAZIONE VENEZIA S.LUCIA", SourceHandle: "nomuos",
			PostURL: "https://example.com/p/1"}
		ev, err := p.Process(context.Background(), item, meta)
		require.NoError(t, err)
		assert.Equal(t, "2025-06-28", ev.Date)
		assert.Equal(t, "17:00", ev.Time)
		assert.Equal(t, "Venezia", ev.City)
		assert.Equal(t, domain.EventProtest, ev.EventType)
		assert.Equal(t, Coordinates{Lat: 45.4408, Lng: 12.3155}, Coordinates{Lat: ev.Latitude, Lng: ev.Longitude})
		assert.Equal(t, "collettivi", ev.SourceName)
		assert.Equal(t, "https://example.com", ev.SourceURL)
		assert.Equal(t, "https://example.com/p/1", ev.EventURL)
	})

	t.Run("no temporal tokens", func(t *testing.T) {
		ev, err := p.Process(context.Background(), domain.RawItem{Text: "Assemblea aperta a tutti gli studenti"}, meta)
		require.NoError(t, err)
		assert.Empty(t, ev.Date)
		assert.Equal(t, domain.NoTime, ev.Time)
		assert.Equal(t, "Assemblea aperta a tutti gli studenti", ev.Title)
		assert.Equal(t, domain.EventAssembly, ev.EventType)
	})

	t.Run("pride in milano", func(t *testing.T) {
		ev, err := p.Process(context.Background(), domain.RawItem{Text: "Milano Pride, tutte e tutti in piazza!"}, meta)
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryLGBTQ, ev.Category)
		assert.Equal(t, "Milano", ev.City)
	})

	t.Run("invalid calendar date", func(t *testing.T) {
		ev, err := p.Process(context.Background(), domain.RawItem{Text: "Manifestazione nazionale il 31 febbraio 2025 a Roma"}, meta)
		require.NoError(t, err)
		assert.Empty(t, ev.Date)
		assert.Equal(t, "Roma", ev.City)
	})

	t.Run("handle used as source name and title", func(t *testing.T) {
		ev, err := p.Process(context.Background(), domain.RawItem{Text: "🔥", SourceHandle: "fff_torino"}, domain.SourceMeta{})
		require.NoError(t, err)
		assert.Equal(t, "Evento fff torino", ev.Title)
		assert.Equal(t, "fff_torino", ev.SourceName)
	})

	t.Run("item source url wins", func(t *testing.T) {
		ev, err := p.Process(context.Background(), domain.RawItem{Text: "Presidio per la scuola pubblica", SourceURL: "https://ig/acc"}, meta)
		require.NoError(t, err)
		assert.Equal(t, "https://ig/acc", ev.SourceURL)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := p.Process(context.Background(), domain.RawItem{Text: "#tag"}, meta)
		assert.ErrorIs(t, err, ErrMalformedInput)
	})
}

func TestPipeline_ProcessGeocoded(t *testing.T) {
	var gotAddress, gotCity string
	geo := geocoderFunc(func(_ context.Context, address, city string) (Coordinates, error) {
		gotAddress, gotCity = address, city
		return Coordinates{Lat: 44.4938, Lng: 11.3426}, nil
	})
	p := newTestPipeline(geo)

	ev, err := p.Process(context.Background(), domain.RawItem{Text: "Presidio in Piazza Maggiore, Bologna"}, domain.SourceMeta{Name: "s"})
	require.NoError(t, err)
	assert.Equal(t, "Piazza Maggiore", gotAddress)
	assert.Equal(t, "Bologna", gotCity)
	assert.Equal(t, "Piazza Maggiore", ev.Address)
	assert.InDelta(t, 44.4938, ev.Latitude, 0.00001)
}

func TestPipeline_Deterministic(t *testing.T) {
	p := newTestPipeline(nil)
	item := domain.RawItem{Text: "Sciopero generale venerdì 20 giugno ore 9.30, corteo da Piazza Castello Torino"}
	first, err := p.Process(context.Background(), item, domain.SourceMeta{Name: "s"})
	require.NoError(t, err)
	for range 5 {
		ev, err := p.Process(context.Background(), item, domain.SourceMeta{Name: "s"})
		require.NoError(t, err)
		assert.Equal(t, first, ev)
	}
	assert.Equal(t, "2025-06-20", first.Date)
	assert.Equal(t, "09:30", first.Time)
	assert.Equal(t, "Torino", first.City)
	assert.Equal(t, domain.CategoryLabor, first.Category)
}
