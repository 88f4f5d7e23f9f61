package db

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/Flarenzy/ipam-monitor/internal/domain"
	"github.com/jackc/pgx/v5"
)

const subnetColumns = `id, name, cidr, gateway, dns, vlan, tags, description, created_at, updated_at`

type SubnetRepository struct {
	db DBTX
}

func NewSubnetRepository(db DBTX) *SubnetRepository {
	return &SubnetRepository{db: db}
}

func (r *SubnetRepository) List(ctx context.Context) ([]domain.Subnet, error) {
	rows, err := r.db.Query(ctx, `SELECT `+subnetColumns+` FROM subnets ORDER BY cidr`)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Subnet, error) {
		return scanSubnet(row)
	})
}

func (r *SubnetRepository) FindByID(ctx context.Context, id int64) (domain.Subnet, error) {
	subnet, err := scanSubnet(r.db.QueryRow(ctx, `SELECT `+subnetColumns+` FROM subnets WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return domain.Subnet{}, domain.ErrNotFound
		}
		return domain.Subnet{}, err
	}

	return subnet, nil
}

// CreateWithAddresses inserts the subnet row and bulk-copies its address
// pool in one transaction.
func (r *SubnetRepository) CreateWithAddresses(ctx context.Context, input domain.CreateSubnetRecord, addresses []domain.NewIPAddress) (domain.Subnet, error) {
	var subnet domain.Subnet
	err := pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var err error
		subnet, err = scanSubnet(tx.QueryRow(ctx, `
			INSERT INTO subnets (name, cidr, gateway, dns, vlan, tags, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+subnetColumns,
			input.Name,
			input.CIDR,
			nullableAddr(input.Gateway),
			nonNil(input.DNS),
			input.VLAN,
			nonNil(input.Tags),
			input.Description,
		))
		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(addresses))
		for _, a := range addresses {
			rows = append(rows, []any{subnet.ID, a.IP, string(a.Status)})
		}
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"ip_addresses"},
			[]string{"subnet_id", "ip", "status"},
			pgx.CopyFromRows(rows),
		)
		return err
	})
	if err != nil {
		switch {
		case isUniqueViolation(err, "unique_cidr"):
			return domain.Subnet{}, fmt.Errorf("%w: subnet %s already exists", domain.ErrConflict, input.CIDR)
		case isUniqueViolation(err, "unique_ip"):
			return domain.Subnet{}, fmt.Errorf("%w: %s overlaps an existing subnet", domain.ErrConflict, input.CIDR)
		}
		return domain.Subnet{}, err
	}

	return subnet, nil
}

func (r *SubnetRepository) Update(ctx context.Context, subnet domain.Subnet) (domain.Subnet, error) {
	updated, err := scanSubnet(r.db.QueryRow(ctx, `
		UPDATE subnets
		SET name = $2, dns = $3, vlan = $4, tags = $5, description = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+subnetColumns,
		subnet.ID,
		subnet.Name,
		nonNil(subnet.DNS),
		subnet.VLAN,
		nonNil(subnet.Tags),
		subnet.Description,
	))
	if err != nil {
		if isNoRows(err) {
			return domain.Subnet{}, domain.ErrNotFound
		}
		return domain.Subnet{}, err
	}

	return updated, nil
}

// ReassignGateway updates the subnet and moves the gateway status between
// pool records. A previous gateway on the network or broadcast address has
// no usable-host record behind it, so that record is removed instead of
// freed.
func (r *SubnetRepository) ReassignGateway(ctx context.Context, subnet domain.Subnet, oldGW, newGW netip.Addr) (domain.Subnet, error) {
	var updated domain.Subnet
	err := pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var err error
		updated, err = scanSubnet(tx.QueryRow(ctx, `
			UPDATE subnets
			SET name = $2, gateway = $3, dns = $4, vlan = $5, tags = $6, description = $7, updated_at = now()
			WHERE id = $1
			RETURNING `+subnetColumns,
			subnet.ID,
			subnet.Name,
			nullableAddr(newGW),
			nonNil(subnet.DNS),
			subnet.VLAN,
			nonNil(subnet.Tags),
			subnet.Description,
		))
		if err != nil {
			if isNoRows(err) {
				return domain.ErrNotFound
			}
			return err
		}

		if oldGW.IsValid() {
			tag, err := tx.Exec(ctx, `
				DELETE FROM ip_addresses a
				USING subnets s
				WHERE a.subnet_id = s.id AND s.id = $1 AND a.ip = $2 AND a.status = 'gateway'
				  AND (host(a.ip) = host(network(s.cidr)) OR host(a.ip) = host(broadcast(s.cidr)))`,
				subnet.ID, oldGW)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				if _, err := tx.Exec(ctx, `
					UPDATE ip_addresses SET status = 'free', updated_at = now()
					WHERE subnet_id = $1 AND ip = $2 AND status = 'gateway'`,
					subnet.ID, oldGW); err != nil {
					return err
				}
			}
		}

		if newGW.IsValid() {
			tag, err := tx.Exec(ctx, `
				UPDATE ip_addresses SET status = 'gateway', updated_at = now()
				WHERE subnet_id = $1 AND ip = $2 AND status IN ('free', 'gateway')`,
				subnet.ID, newGW)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%w: gateway candidate %s changed state", domain.ErrConflict, newGW)
			}
		}
		return nil
	})
	if err != nil {
		return domain.Subnet{}, err
	}

	return updated, nil
}

// Delete removes the subnet and its pool, refusing while any address is in
// use.
func (r *SubnetRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM subnets
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM ip_addresses WHERE subnet_id = $1 AND status = 'in_use')`, id)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func scanSubnet(row pgx.Row) (domain.Subnet, error) {
	var s domain.Subnet
	var gateway *netip.Addr
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.CIDR,
		&gateway,
		&s.DNS,
		&s.VLAN,
		&s.Tags,
		&s.Description,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return domain.Subnet{}, err
	}
	if gateway != nil {
		s.Gateway = *gateway
	}
	return s, nil
}

func nullableAddr(a netip.Addr) *netip.Addr {
	if !a.IsValid() {
		return nil
	}
	return &a
}
