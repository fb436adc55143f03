package econ

import (
	"context"
	"time"
)

// ListOptions are the common list parameters. Zero fields are omitted.
type ListOptions struct {
	Page   int
	Limit  int
	Search string
	Sort   string
}

// Params converts the options into ordered query parameters.
func (o *ListOptions) Params() Params {
	params := NewParams()
	if o == nil {
		return params
	}

	return params.
		Add("page", positive(o.Page)).
		Add("limit", positive(o.Limit)).
		Add("search", nonEmpty(o.Search)).
		Add("sort", nonEmpty(o.Sort))
}

// ShopListOptions narrow a shop listing.
type ShopListOptions struct {
	ListOptions

	OwnerID string
	ItemID  string
	Active  *bool
}

// Params converts the options into ordered query parameters.
func (o *ShopListOptions) Params() Params {
	if o == nil {
		return NewParams()
	}

	return o.ListOptions.Params().
		Add("owner", nonEmpty(o.OwnerID)).
		Add("item", nonEmpty(o.ItemID)).
		Add("active", o.Active)
}

// ChangeLogOptions narrow a change log listing.
type ChangeLogOptions struct {
	ListOptions

	Since  time.Time
	Action string
}

// Params converts the options into ordered query parameters.
func (o *ChangeLogOptions) Params() Params {
	if o == nil {
		return NewParams()
	}

	var since any
	if !o.Since.IsZero() {
		since = o.Since
	}

	return o.ListOptions.Params().
		Add("since", since).
		Add("action", nonEmpty(o.Action))
}

// PriceHistoryOptions select the window of a price history.
type PriceHistoryOptions struct {
	From     time.Time
	To       time.Time
	Interval string
}

// Params converts the options into ordered query parameters.
func (o *PriceHistoryOptions) Params() Params {
	params := NewParams()
	if o == nil {
		return params
	}

	var from, to any
	if !o.From.IsZero() {
		from = o.From
	}

	if !o.To.IsZero() {
		to = o.To
	}

	return params.
		Add("from", from).
		Add("to", to).
		Add("interval", nonEmpty(o.Interval))
}

// StorageListOptions narrow a storage listing.
type StorageListOptions struct {
	ListOptions

	ShopID string
	ItemID string
}

// Params converts the options into ordered query parameters.
func (o *StorageListOptions) Params() Params {
	if o == nil {
		return NewParams()
	}

	return o.ListOptions.Params().
		Add("shopId", nonEmpty(o.ShopID)).
		Add("itemId", nonEmpty(o.ItemID))
}

// ShopsClient provides access to shops.
type ShopsClient interface {
	List(ctx context.Context, opts *ShopListOptions) ([]Shop, error)
	Get(ctx context.Context, id string) (*Shop, error)
	Create(ctx context.Context, request *ShopCreateRequest) (*Shop, error)
	Update(ctx context.Context, id string, request *ShopUpdateRequest) (*Shop, error)
	Delete(ctx context.Context, id string) error
	Items(ctx context.Context, id string) ([]Price, error)
	Changes(ctx context.Context, id string, opts *ChangeLogOptions) ([]ChangeLogEntry, error)
}

// PlayersClient provides access to players.
type PlayersClient interface {
	List(ctx context.Context, opts *ListOptions) ([]Player, error)
	Get(ctx context.Context, id string) (*Player, error)
	Shops(ctx context.Context, id string) ([]Shop, error)
}

// ItemsClient provides access to items and their prices.
type ItemsClient interface {
	List(ctx context.Context, opts *ListOptions) ([]Item, error)
	Get(ctx context.Context, id string) (*Item, error)
	Prices(ctx context.Context, id string) ([]Price, error)
	PriceHistory(ctx context.Context, id string, opts *PriceHistoryOptions) ([]PricePoint, error)
}

// AddressesClient provides access to shop addresses.
type AddressesClient interface {
	List(ctx context.Context, opts *ListOptions) ([]Address, error)
	Get(ctx context.Context, id string) (*Address, error)
	Create(ctx context.Context, request *AddressCreateRequest) (*Address, error)
	Delete(ctx context.Context, id string) error
}

// StorageClient provides access to shop storage units.
type StorageClient interface {
	List(ctx context.Context, opts *StorageListOptions) ([]StorageUnit, error)
	Get(ctx context.Context, id string) (*StorageUnit, error)
	Update(ctx context.Context, id string, request *StorageUpdateRequest) (*StorageUnit, error)
}

// ReportsClient provides access to aggregated reports.
type ReportsClient interface {
	Market(ctx context.Context) (*MarketReport, error)
	Player(ctx context.Context, id string) (*PlayerReport, error)
}

func positive(value int) any {
	if value > 0 {
		return value
	}

	return nil
}

func nonEmpty(value string) any {
	if value != "" {
		return value
	}

	return nil
}
