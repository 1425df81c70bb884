package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/corteo/pkg/domain"
	"github.com/umputun/corteo/pkg/extract"
)

const defaultListLimit = 100

// EventRepository handles event-related database operations
type EventRepository struct {
	db *sqlx.DB
}

// eventSQL represents an event for SQL operations
type eventSQL struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	TitleKey    string         `db:"title_key"`
	Description string         `db:"description"`
	Category    string         `db:"category"`
	EventType   string         `db:"event_type"`
	City        string         `db:"city"`
	Address     string         `db:"address"`
	Latitude    float64        `db:"latitude"`
	Longitude   float64        `db:"longitude"`
	Date        sql.NullString `db:"date"`
	Time        string         `db:"time"`
	SourceName  string         `db:"source_name"`
	SourceURL   string         `db:"source_url"`
	EventURL    string         `db:"event_url"`
	ImageURL    string         `db:"image_url"`
	CountryCode string         `db:"country_code"`
	Attendees   int            `db:"attendees"`
	Featured    bool           `db:"featured"`
	CreatedAt   time.Time      `db:"created_at"`
}

const eventColumns = `id, title, title_key, description, category, event_type, city, address, latitude, longitude,
	date, time, source_name, source_url, event_url, image_url, country_code, attendees, featured, created_at`

// NewEventRepository creates a new event repository
func NewEventRepository(database *sqlx.DB) *EventRepository {
	return &EventRepository{db: database}
}

// Insert stores a new event and sets its ID and CreatedAt. Lock contention is retried with backoff.
func (r *EventRepository) Insert(ctx context.Context, ev *domain.Event) error {
	rec := fromDomain(*ev)
	rec.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO events (
			title, title_key, description, category, event_type, city, address, latitude, longitude,
			date, time, source_name, source_url, event_url, image_url, country_code, attendees, featured, created_at
		) VALUES (
			:title, :title_key, :description, :category, :event_type, :city, :address, :latitude, :longitude,
			:date, :time, :source_name, :source_url, :event_url, :image_url, :country_code, :attendees, :featured, :created_at
		)
	`

	var id int64
	err := lockRetrier().Do(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, rec)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("insert event: %w", err)}
		}
		if id, err = result.LastInsertId(); err != nil {
			return &criticalError{err: fmt.Errorf("get last insert id: %w", err)}
		}
		return nil
	}, errCritical)
	if err != nil {
		return err
	}

	ev.ID = id
	ev.CreatedAt = rec.CreatedAt
	return nil
}

// FindSimilar returns events with the same folded title and city, and the same date when date is not empty
func (r *EventRepository) FindSimilar(ctx context.Context, title, city, date string) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE title_key = ? AND city = ? COLLATE NOCASE`
	args := []any{extract.FoldKey(title), city}
	if date != "" {
		query += ` AND date = ?`
		args = append(args, date)
	}

	var recs []eventSQL
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("find similar events: %w", err)
	}
	return toDomainList(recs), nil
}

// List returns stored events matching filter, newest first
func (r *EventRepository) List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	var where []string
	var args []any
	if filter.City != "" {
		where = append(where, "city = ? COLLATE NOCASE")
		args = append(args, filter.City)
	}
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, string(filter.Category))
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	var recs []eventSQL
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return toDomainList(recs), nil
}

// Count returns the number of stored events
func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM events"); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

func fromDomain(ev domain.Event) eventSQL {
	return eventSQL{
		ID:          ev.ID,
		Title:       ev.Title,
		TitleKey:    extract.FoldKey(ev.Title),
		Description: ev.Description,
		Category:    string(ev.Category),
		EventType:   string(ev.EventType),
		City:        ev.City,
		Address:     ev.Address,
		Latitude:    ev.Latitude,
		Longitude:   ev.Longitude,
		Date:        sql.NullString{String: ev.Date, Valid: ev.HasDate()},
		Time:        ev.Time,
		SourceName:  ev.SourceName,
		SourceURL:   ev.SourceURL,
		EventURL:    ev.EventURL,
		ImageURL:    ev.ImageURL,
		CountryCode: ev.CountryCode,
		Attendees:   ev.Attendees,
		Featured:    ev.Featured,
		CreatedAt:   ev.CreatedAt,
	}
}

func (e eventSQL) toDomain() domain.Event {
	return domain.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Category:    domain.Category(e.Category),
		EventType:   domain.EventType(e.EventType),
		City:        e.City,
		Address:     e.Address,
		Latitude:    e.Latitude,
		Longitude:   e.Longitude,
		Date:        e.Date.String,
		Time:        e.Time,
		SourceName:  e.SourceName,
		SourceURL:   e.SourceURL,
		EventURL:    e.EventURL,
		ImageURL:    e.ImageURL,
		CountryCode: e.CountryCode,
		Attendees:   e.Attendees,
		Featured:    e.Featured,
		CreatedAt:   e.CreatedAt,
	}
}

func toDomainList(recs []eventSQL) []domain.Event {
	res := make([]domain.Event, 0, len(recs))
	for _, rec := range recs {
		res = append(res, rec.toDomain())
	}
	return res
}
