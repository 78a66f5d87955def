package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olyamironova/electricity-trading-client/internal/domain"
	"github.com/olyamironova/electricity-trading-client/internal/port"
	"github.com/olyamironova/electricity-trading-client/internal/tradingpb"
)

var _ port.Repository = (*PgRepo)(nil)

// DB is the subset of *pgxpool.Pool used by PgRepo.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PgRepo stores order details and public trades as JSONB documents in their
// wire form, keyed by id.
type PgRepo struct {
	db    DB
	close func()
}

// call Close when finish to work with database.
func NewPgRepo(ctx context.Context, dsn string) (*PgRepo, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping: %w", err)
	}
	return &PgRepo{db: pool, close: pool.Close}, nil
}

func New(db DB) *PgRepo {
	return &PgRepo{db: db}
}

func (p *PgRepo) Close(ctx context.Context) {
	if p.close != nil {
		p.close()
	}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS gridpool_orders (
  gridpool_id BIGINT NOT NULL,
  order_id    BIGINT NOT NULL,
  state       INTEGER NOT NULL,
  detail      JSONB NOT NULL,
  updated_at  TIMESTAMPTZ NOT NULL,
  PRIMARY KEY (gridpool_id, order_id)
)`,
	`CREATE SEQUENCE IF NOT EXISTS gridpool_order_id_seq`,
	`CREATE TABLE IF NOT EXISTS public_trades (
  id             BIGINT PRIMARY KEY,
  execution_time TIMESTAMPTZ NOT NULL,
  trade          JSONB NOT NULL
)`,
	`CREATE SEQUENCE IF NOT EXISTS public_trade_id_seq`,
}

// Migrate creates the tables and sequences if they do not exist.
func (p *PgRepo) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := p.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("pg: migrate: %w", err)
		}
	}
	return nil
}

func (p *PgRepo) NextOrderID(ctx context.Context) (int64, error) {
	var id int64
	if err := p.db.QueryRow(ctx, `SELECT nextval('gridpool_order_id_seq')`).Scan(&id); err != nil {
		return 0, fmt.Errorf("pg: next order id: %w", err)
	}
	return id, nil
}

const upsertOrder = `
INSERT INTO gridpool_orders(gridpool_id, order_id, state, detail, updated_at)
VALUES($1,$2,$3,$4,$5)
ON CONFLICT (gridpool_id, order_id) DO UPDATE SET
  state = EXCLUDED.state,
  detail = EXCLUDED.detail,
  updated_at = EXCLUDED.updated_at
`

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func saveOrder(ctx context.Context, db execer, gridpoolID int64, d *domain.OrderDetail) error {
	if d == nil {
		return errors.New("nil order detail")
	}
	b, err := tradingpb.MarshalOrderDetail(*d)
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, upsertOrder, gridpoolID, d.OrderID, int32(d.StateDetail.State), b, d.ModificationTime)
	return err
}

func (p *PgRepo) SaveOrder(ctx context.Context, gridpoolID int64, d *domain.OrderDetail) error {
	return saveOrder(ctx, p.db, gridpoolID, d)
}

// SaveOrders writes all details in a single transaction.
func (p *PgRepo) SaveOrders(ctx context.Context, gridpoolID int64, ds []*domain.OrderDetail) error {
	return withTx(ctx, p.db, func(tx pgx.Tx) error {
		for _, d := range ds {
			if err := saveOrder(ctx, tx, gridpoolID, d); err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *PgRepo) LoadOrder(ctx context.Context, gridpoolID, orderID int64) (*domain.OrderDetail, error) {
	var b []byte
	err := p.db.QueryRow(ctx, `SELECT detail FROM gridpool_orders WHERE gridpool_id = $1 AND order_id = $2`,
		gridpoolID, orderID).Scan(&b)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	d, err := tradingpb.UnmarshalOrderDetail(b)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (p *PgRepo) ListOrders(ctx context.Context, gridpoolID int64) ([]*domain.OrderDetail, error) {
	rows, err := p.db.Query(ctx, `
SELECT detail FROM gridpool_orders
WHERE gridpool_id = $1
ORDER BY order_id ASC
`, gridpoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.OrderDetail
	for rows.Next() {
		var b []byte
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		d, err := tradingpb.UnmarshalOrderDetail(b)
		if err != nil {
			return nil, err
		}
		res = append(res, &d)
	}
	return res, rows.Err()
}

func (p *PgRepo) NextTradeID(ctx context.Context) (int64, error) {
	var id int64
	if err := p.db.QueryRow(ctx, `SELECT nextval('public_trade_id_seq')`).Scan(&id); err != nil {
		return 0, fmt.Errorf("pg: next trade id: %w", err)
	}
	return id, nil
}

// SavePublicTrade inserts t unless a trade with the same id is stored.
func (p *PgRepo) SavePublicTrade(ctx context.Context, t *domain.PublicTrade) error {
	if t == nil {
		return errors.New("nil trade")
	}
	b, err := tradingpb.MarshalPublicTrade(*t)
	if err != nil {
		return err
	}
	_, err = p.db.Exec(ctx, `
INSERT INTO public_trades(id, execution_time, trade)
VALUES($1,$2,$3)
ON CONFLICT (id) DO NOTHING
`, t.ID, t.ExecutionTime, b)
	return err
}

func (p *PgRepo) ListPublicTrades(ctx context.Context) ([]*domain.PublicTrade, error) {
	rows, err := p.db.Query(ctx, `SELECT trade FROM public_trades ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.PublicTrade
	for rows.Next() {
		var b []byte
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		t, err := tradingpb.UnmarshalPublicTrade(b)
		if err != nil {
			return nil, err
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}
