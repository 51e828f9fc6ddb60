package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mindcare/internal/model"
)

type VoucherRepository struct {
	db *sql.DB
}

func NewVoucherRepository(db *sql.DB) *VoucherRepository {
	return &VoucherRepository{db: db}
}

func (r *VoucherRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, nil
}

func (r *VoucherRepository) List(ctx context.Context) ([]model.Voucher, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, title, description, points_cost, code_prefix, stock FROM vouchers ORDER BY points_cost`,
	)
	if err != nil {
		return nil, fmt.Errorf("list vouchers: %w", err)
	}
	defer rows.Close()

	vouchers := make([]model.Voucher, 0)
	for rows.Next() {
		voucher, scanErr := scanVoucher(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		vouchers = append(vouchers, *voucher)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vouchers: %w", err)
	}
	return vouchers, nil
}

func (r *VoucherRepository) GetTx(ctx context.Context, tx *sql.Tx, id string) (*model.Voucher, error) {
	row := tx.QueryRowContext(
		ctx,
		`SELECT id, title, description, points_cost, code_prefix, stock FROM vouchers WHERE id = ?`,
		id,
	)
	return scanVoucher(row)
}

func (r *VoucherRepository) DecrementStockTx(ctx context.Context, tx *sql.Tx, id string) error {
	if _, err := tx.ExecContext(ctx, `UPDATE vouchers SET stock = stock - 1 WHERE id = ? AND stock > 0`, id); err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	return nil
}

func (r *VoucherRepository) InsertRedemptionTx(ctx context.Context, tx *sql.Tx, redemption *model.Redemption) error {
	_, err := tx.ExecContext(
		ctx,
		`INSERT INTO redemptions (id, user_id, voucher_id, code, created_at) VALUES (?, ?, ?, ?, ?)`,
		redemption.ID,
		redemption.UserID,
		redemption.VoucherID,
		redemption.Code,
		formatTime(redemption.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert redemption: %w", err)
	}
	return nil
}

func scanVoucher(s scanner) (*model.Voucher, error) {
	var voucher model.Voucher
	err := s.Scan(&voucher.ID, &voucher.Title, &voucher.Description, &voucher.PointsCost, &voucher.Code, &voucher.Stock)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan voucher: %w", err)
	}
	return &voucher, nil
}
