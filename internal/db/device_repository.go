package db

import (
	"context"
	"fmt"

	"github.com/Flarenzy/ipam-monitor/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
)

// DeviceRepository reads the device directory. Devices are owned elsewhere;
// only the MAC is ever written back.
type DeviceRepository struct {
	db DBTX
}

func NewDeviceRepository(db DBTX) *DeviceRepository {
	return &DeviceRepository{db: db}
}

func (r *DeviceRepository) FindByID(ctx context.Context, id domain.DeviceID) (domain.Device, error) {
	parsedID, err := parseUUID(string(id))
	if err != nil {
		return domain.Device{}, fmt.Errorf("%w: invalid device id", domain.ErrInvalidInput)
	}

	var (
		rowID pgtype.UUID
		d     domain.Device
		mac   *string
	)
	err = r.db.QueryRow(ctx, `SELECT id, name, mac FROM devices WHERE id = $1`, parsedID).Scan(&rowID, &d.Name, &mac)
	if err != nil {
		if isNoRows(err) {
			return domain.Device{}, domain.ErrNotFound
		}
		return domain.Device{}, err
	}

	d.ID = domain.DeviceID(uuidString(rowID))
	d.MAC = derefText(mac)
	return d, nil
}

func (r *DeviceRepository) UpdateMAC(ctx context.Context, id domain.DeviceID, mac string) error {
	parsedID, err := parseUUID(string(id))
	if err != nil {
		return fmt.Errorf("%w: invalid device id", domain.ErrInvalidInput)
	}

	tag, err := r.db.Exec(ctx, `UPDATE devices SET mac = $2, updated_at = now() WHERE id = $1`, parsedID, nullableText(mac))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
