package dbmanager

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/talx-hub/gopher-loyalty/internal/model"
)

type queryStartKey struct{}

type queryStart struct {
	at  time.Time
	sql string
}

type queryTracer struct {
	log *slog.Logger
}

func (t *queryTracer) TraceQueryStart(
	ctx context.Context,
	_ *pgx.Conn,
	data pgx.TraceQueryStartData,
) context.Context {
	t.log.LogAttrs(ctx,
		slog.LevelDebug,
		"running query",
		slog.String("query", data.SQL),
		slog.Any("args", data.Args),
	)
	return context.WithValue(ctx, queryStartKey{}, queryStart{at: time.Now(), sql: data.SQL})
}

func (t *queryTracer) TraceQueryEnd(
	ctx context.Context,
	_ *pgx.Conn,
	data pgx.TraceQueryEndData,
) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	attrs := []slog.Attr{
		slog.String("query", start.sql),
		slog.Duration("took", time.Since(start.at)),
		slog.String("tag", data.CommandTag.String()),
	}
	if data.Err != nil {
		// lock timeouts and dedupe violations are expected under contention
		t.log.LogAttrs(ctx, slog.LevelDebug, "query failed",
			append(attrs, slog.Any(model.KeyLoggerError, data.Err))...)
		return
	}
	t.log.LogAttrs(ctx, slog.LevelDebug, "query done", attrs...)
}
