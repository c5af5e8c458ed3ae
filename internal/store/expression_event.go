package store

import (
	"context"
	"fmt"
	"time"
)

func (r *SQLEventRepo) AppendExpression(ctx context.Context, data ExpressionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO expression_events (
		sequence, timestamp, session_id, query, mathjs, latex, rendering,
		response_time, tier, success, error_message
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, r.clock().UnixNano(), data.SessionID, data.Query, data.MathJS,
		data.LaTeX, data.Rendering, data.ResponseTime, data.Tier, data.Success,
		data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save expression event: %w", err)
	}
	return nil
}

// QueryExpressions returns expression events matching opts, newest first.
func (r *SQLEventRepo) QueryExpressions(ctx context.Context, opts QueryOpts) ([]ExpressionEvent, error) {
	where, args := opts.filters()
	if opts.Session != "" {
		where = append(where, "session_id = ?")
		args = append(args, opts.Session)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, sequence, timestamp, session_id,
		query, mathjs, latex, rendering, response_time, tier, success, error_message
		FROM expression_events`+whereClause(where)+
		" ORDER BY sequence DESC"+limitClause(opts.Limit), args...)
	if err != nil {
		return nil, fmt.Errorf("query expression events: %w", err)
	}
	defer rows.Close()

	var events []ExpressionEvent
	for rows.Next() {
		var e ExpressionEvent
		var ts int64
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.SessionID, &e.Query,
			&e.MathJS, &e.LaTeX, &e.Rendering, &e.ResponseTime, &e.Tier,
			&e.Success, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan expression event: %w", err)
		}
		e.Timestamp = time.Unix(0, ts).UTC()
		events = append(events, e)
	}
	return events, rows.Err()
}
