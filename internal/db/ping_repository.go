package db

import (
	"context"
	"net/netip"
	"time"

	"github.com/Flarenzy/ipam-monitor/internal/domain"
	"github.com/Flarenzy/ipam-monitor/internal/probe"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const pingColumns = `id, ip_id, ip, status, method, response_time_ms, mac, previous_mac, has_conflict, error, checked_at`

// PingHistoryRepository stores probe outcomes. Rows are only ever inserted
// or removed by retention.
type PingHistoryRepository struct {
	db DBTX
}

func NewPingHistoryRepository(db DBTX) *PingHistoryRepository {
	return &PingHistoryRepository{db: db}
}

func (r *PingHistoryRepository) Create(ctx context.Context, entry domain.PingEntry) (domain.PingEntry, error) {
	ipID, err := parseDomainIPID(entry.IPID)
	if err != nil {
		return domain.PingEntry{}, err
	}

	return scanPing(r.db.QueryRow(ctx, `
		INSERT INTO ping_history (ip_id, ip, status, method, response_time_ms, mac, previous_mac, has_conflict, error, checked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+pingColumns,
		ipID,
		entry.IP,
		string(entry.Status),
		string(entry.Method),
		latencyMs(entry.Latency),
		nullableText(entry.MAC),
		nullableText(entry.PreviousMAC),
		entry.HasConflict,
		nullableText(entry.Error),
		entry.CheckedAt,
	))
}

func (r *PingHistoryRepository) ListByIP(ctx context.Context, id domain.IPAddressID, limit int) ([]domain.PingEntry, error) {
	ipID, err := parseDomainIPID(id)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+pingColumns+` FROM ping_history
		WHERE ip_id = $1
		ORDER BY checked_at DESC, id DESC
		LIMIT $2`, ipID, limit)
	if err != nil {
		return nil, err
	}
	return collectPings(rows)
}

func (r *PingHistoryRepository) LatestWithMAC(ctx context.Context, addr netip.Addr, since, before time.Time) (domain.PingEntry, bool, error) {
	entry, err := scanPing(r.db.QueryRow(ctx, `
		SELECT `+pingColumns+` FROM ping_history
		WHERE ip = $1 AND mac IS NOT NULL AND checked_at >= $2 AND checked_at < $3
		ORDER BY checked_at DESC, id DESC
		LIMIT 1`, addr, since, before))
	if err != nil {
		if isNoRows(err) {
			return domain.PingEntry{}, false, nil
		}
		return domain.PingEntry{}, false, err
	}
	return entry, true, nil
}

func (r *PingHistoryRepository) ListConflicts(ctx context.Context, since time.Time) ([]domain.PingEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+pingColumns+` FROM ping_history
		WHERE has_conflict AND checked_at >= $1
		ORDER BY checked_at DESC, id DESC`, since)
	if err != nil {
		return nil, err
	}
	return collectPings(rows)
}

func (r *PingHistoryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM ping_history WHERE checked_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func collectPings(rows pgx.Rows) ([]domain.PingEntry, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PingEntry, error) {
		return scanPing(row)
	})
}

func scanPing(row pgx.Row) (domain.PingEntry, error) {
	var (
		e        domain.PingEntry
		ipID     pgtype.UUID
		status   string
		method   string
		latency  *float64
		mac      *string
		prevMAC  *string
		errorMsg *string
	)
	err := row.Scan(
		&e.ID,
		&ipID,
		&e.IP,
		&status,
		&method,
		&latency,
		&mac,
		&prevMAC,
		&e.HasConflict,
		&errorMsg,
		&e.CheckedAt,
	)
	if err != nil {
		return domain.PingEntry{}, err
	}

	e.IPID = domain.IPAddressID(uuidString(ipID))
	e.Status = probe.Status(status)
	e.Method = probe.Method(method)
	e.MAC = derefText(mac)
	e.PreviousMAC = derefText(prevMAC)
	e.Error = derefText(errorMsg)
	if latency != nil {
		d := time.Duration(*latency * float64(time.Millisecond))
		e.Latency = &d
	}
	return e, nil
}

func latencyMs(d *time.Duration) *float64 {
	if d == nil {
		return nil
	}
	ms := float64(*d) / float64(time.Millisecond)
	return &ms
}
