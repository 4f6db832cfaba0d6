package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const playerEventsTable = "player_events"

type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
	now func() time.Time
}

func newEventRepo(drv *entsql.Driver, seq *sequenceCounter) *eventRepo {
	return &eventRepo{drv: drv, seq: seq, now: time.Now}
}

func (r *eventRepo) AppendPlayerEvent(ctx context.Context, data PlayerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(playerEventsTable).
		Columns("sequence", "timestamp", "viewing_id", "user_id", "course_id", "action", "lesson_id", "percent", "detail").
		Values(seqNum, r.now().UnixNano(), data.ViewingID, data.UserID, data.CourseID, data.Action, data.LessonID, data.Percent, data.Detail).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save player event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryPlayerEvents(ctx context.Context, opts QueryOpts) ([]PlayerEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("sequence", "timestamp", "viewing_id", "user_id", "course_id", "action", "lesson_id", "percent", "detail").
		From(entsql.Table(playerEventsTable))

	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixNano()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixNano()))
	}
	if opts.CourseID != "" {
		sel.Where(entsql.EQ("course_id", opts.CourseID))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query player events: %w", err)
	}
	defer rows.Close()

	var events []PlayerEvent
	for rows.Next() {
		var (
			e  PlayerEvent
			ts int64
		)
		err := rows.Scan(&e.Sequence, &ts, &e.ViewingID, &e.UserID, &e.CourseID,
			&e.Action, &e.LessonID, &e.Percent, &e.Detail)
		if err != nil {
			return nil, fmt.Errorf("scan player event: %w", err)
		}
		e.Timestamp = time.Unix(0, ts).UTC()
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query player events: %w", err)
	}
	return events, nil
}
