package orders

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// UpsertOrder writes one row per (platform, external_order_id). Redelivery of the
// same webhook overwrites the prior row; commission and delivery_fee are reset to
// NULL so a replay always reproduces the ingestion-time state.
func (r *Repo) UpsertOrder(ctx context.Context, rec Record) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO platform_orders(
			platform, external_order_id, store_id, order_placed_at,
			gross_amount, net_amount, commission, delivery_fee,
			discount_total, currency, raw_payload, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, NULL, NULL, $7, $8, $9, now())
		ON CONFLICT (platform, external_order_id) DO UPDATE SET
			store_id        = EXCLUDED.store_id,
			order_placed_at = EXCLUDED.order_placed_at,
			gross_amount    = EXCLUDED.gross_amount,
			net_amount      = EXCLUDED.net_amount,
			commission      = NULL,
			delivery_fee    = NULL,
			discount_total  = EXCLUDED.discount_total,
			currency        = EXCLUDED.currency,
			raw_payload     = EXCLUDED.raw_payload,
			updated_at      = now()
	`, rec.Platform, rec.ExternalOrderID, rec.StoreID, rec.OrderPlacedAt,
		rec.GrossAmount, rec.NetAmount, rec.DiscountTotal, rec.Currency, rec.RawPayload)
	return err
}
