package db

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	"github.com/Flarenzy/ipam-monitor/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const ipColumns = `id, subnet_id, ip, status, device_id, hostname, mac, notes, reserved_by, reserved_until, last_seen_at, created_at, updated_at`

type IPRepository struct {
	db DBTX
}

func NewIPRepository(db DBTX) *IPRepository {
	return &IPRepository{db: db}
}

func (r *IPRepository) ListBySubnetID(ctx context.Context, subnetID int64, filter domain.IPFilter) ([]domain.IPAddress, error) {
	query := `SELECT ` + ipColumns + ` FROM ip_addresses WHERE subnet_id = $1`
	args := []any{subnetID}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY ip"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.IPAddress, error) {
		return scanIP(row)
	})
}

func (r *IPRepository) FindByID(ctx context.Context, id domain.IPAddressID) (domain.IPAddress, error) {
	parsedID, err := parseDomainIPID(id)
	if err != nil {
		return domain.IPAddress{}, err
	}

	ip, err := scanIP(r.db.QueryRow(ctx, `SELECT `+ipColumns+` FROM ip_addresses WHERE id = $1`, parsedID))
	if err != nil {
		if isNoRows(err) {
			return domain.IPAddress{}, domain.ErrNotFound
		}
		return domain.IPAddress{}, err
	}

	return ip, nil
}

func (r *IPRepository) FindByAddress(ctx context.Context, subnetID int64, addr netip.Addr) (domain.IPAddress, error) {
	ip, err := scanIP(r.db.QueryRow(ctx,
		`SELECT `+ipColumns+` FROM ip_addresses WHERE subnet_id = $1 AND ip = $2`, subnetID, addr))
	if err != nil {
		if isNoRows(err) {
			return domain.IPAddress{}, domain.ErrNotFound
		}
		return domain.IPAddress{}, err
	}

	return ip, nil
}

func (r *IPRepository) CountByStatus(ctx context.Context, subnetID int64, status domain.IPStatus) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM ip_addresses WHERE subnet_id = $1 AND status = $2`, subnetID, string(status)).Scan(&n)
	return n, err
}

func (r *IPRepository) UpdateDetails(ctx context.Context, id domain.IPAddressID, input domain.UpdateIPInput) (domain.IPAddress, error) {
	parsedID, err := parseDomainIPID(id)
	if err != nil {
		return domain.IPAddress{}, err
	}

	ip, err := scanIP(r.db.QueryRow(ctx, `
		UPDATE ip_addresses
		SET hostname = COALESCE($2, hostname), notes = COALESCE($3, notes), updated_at = now()
		WHERE id = $1
		RETURNING `+ipColumns,
		parsedID, input.Hostname, input.Notes))
	if err != nil {
		if isNoRows(err) {
			return domain.IPAddress{}, domain.ErrNotFound
		}
		return domain.IPAddress{}, err
	}

	return ip, nil
}

// CompareAndSwap writes the allocation fields of next only while the stored
// status still equals expected.
func (r *IPRepository) CompareAndSwap(ctx context.Context, expected domain.IPStatus, next domain.IPAddress) (domain.IPAddress, error) {
	parsedID, err := parseDomainIPID(next.ID)
	if err != nil {
		return domain.IPAddress{}, err
	}
	deviceID, err := parseDeviceID(next.DeviceID)
	if err != nil {
		return domain.IPAddress{}, err
	}

	ip, err := scanIP(r.db.QueryRow(ctx, `
		UPDATE ip_addresses
		SET status = @status,
		    device_id = @device_id,
		    hostname = @hostname,
		    mac = @mac,
		    notes = @notes,
		    reserved_by = @reserved_by,
		    reserved_until = @reserved_until,
		    updated_at = now()
		WHERE id = @id AND status = @expected
		RETURNING `+ipColumns,
		pgx.NamedArgs{
			"id":             parsedID,
			"expected":       string(expected),
			"status":         string(next.Status),
			"device_id":      deviceID,
			"hostname":       next.Hostname,
			"mac":            next.MAC,
			"notes":          next.Notes,
			"reserved_by":    next.ReservedBy,
			"reserved_until": next.ReservedUntil,
		},
	))
	if err == nil {
		return ip, nil
	}
	if !isNoRows(err) {
		if isForeignKeyViolation(err) {
			return domain.IPAddress{}, fmt.Errorf("%w: device does not exist", domain.ErrInvalidInput)
		}
		return domain.IPAddress{}, err
	}

	current, err := r.FindByID(ctx, next.ID)
	if err != nil {
		return domain.IPAddress{}, err
	}
	return domain.IPAddress{}, fmt.Errorf("%w: %s changed from %s to %s", domain.ErrConflict, current.IP, expected, current.Status)
}

// RecordObservation stamps last_seen_at and, when mac is non-empty, the
// observed MAC.
func (r *IPRepository) RecordObservation(ctx context.Context, id domain.IPAddressID, mac string, seenAt time.Time) error {
	parsedID, err := parseDomainIPID(id)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		UPDATE ip_addresses
		SET last_seen_at = $2, mac = COALESCE(NULLIF($3::text, ''), mac)
		WHERE id = $1`,
		parsedID, seenAt, mac)
	return err
}

func (r *IPRepository) ReleaseExpiredReservations(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE ip_addresses
		SET status = 'free', reserved_by = '', reserved_until = NULL, updated_at = now()
		WHERE status = 'reserved' AND reserved_until IS NOT NULL AND reserved_until <= $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanIP(row pgx.Row) (domain.IPAddress, error) {
	var (
		ip       domain.IPAddress
		id       pgtype.UUID
		deviceID pgtype.UUID
		status   string
	)
	err := row.Scan(
		&id,
		&ip.SubnetID,
		&ip.IP,
		&status,
		&deviceID,
		&ip.Hostname,
		&ip.MAC,
		&ip.Notes,
		&ip.ReservedBy,
		&ip.ReservedUntil,
		&ip.LastSeenAt,
		&ip.CreatedAt,
		&ip.UpdatedAt,
	)
	if err != nil {
		return domain.IPAddress{}, err
	}

	ip.ID = domain.IPAddressID(uuidString(id))
	ip.Status = domain.IPStatus(status)
	if deviceID.Valid {
		device := domain.DeviceID(uuidString(deviceID))
		ip.DeviceID = &device
	}
	return ip, nil
}
