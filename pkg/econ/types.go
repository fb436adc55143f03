package econ

import "time"

// Shop is a player-run shop tracked by the API.
type Shop struct {
	ID          string    `json:"id"                    yaml:"id"`
	Name        string    `json:"name"                  yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	OwnerID     string    `json:"ownerId"               yaml:"ownerId"`
	AddressID   string    `json:"addressId,omitempty"   yaml:"addressId,omitempty"`
	Active      bool      `json:"active"                yaml:"active"`
	ItemCount   int       `json:"itemCount"             yaml:"itemCount"`
	CreatedAt   time.Time `json:"createdAt"             yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"             yaml:"updatedAt"`
}

// ShopCreateRequest is the body of a shop creation.
type ShopCreateRequest struct {
	Name        string `json:"name"                  yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	OwnerID     string `json:"ownerId"               yaml:"ownerId"`
	AddressID   string `json:"addressId,omitempty"   yaml:"addressId,omitempty"`
}

// ShopUpdateRequest is the body of a partial shop update.
type ShopUpdateRequest struct {
	Name        *string `json:"name,omitempty"        yaml:"name,omitempty"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	AddressID   *string `json:"addressId,omitempty"   yaml:"addressId,omitempty"`
	Active      *bool   `json:"active,omitempty"      yaml:"active,omitempty"`
}

// Player is an account that owns shops.
type Player struct {
	ID         string     `json:"id"                   yaml:"id"`
	Username   string     `json:"username"             yaml:"username"`
	Balance    float64    `json:"balance"              yaml:"balance"`
	ShopCount  int        `json:"shopCount"            yaml:"shopCount"`
	JoinedAt   time.Time  `json:"joinedAt"             yaml:"joinedAt"`
	LastSeenAt *time.Time `json:"lastSeenAt,omitempty" yaml:"lastSeenAt,omitempty"`
}

// Item is a tradeable item type.
type Item struct {
	ID          string `json:"id"                    yaml:"id"`
	Name        string `json:"name"                  yaml:"name"`
	Category    string `json:"category"              yaml:"category"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Price is the current offer of a shop for an item. Buy and sell prices are
// optional: a shop may only buy or only sell.
type Price struct {
	ShopID    string    `json:"shopId"              yaml:"shopId"`
	ShopName  string    `json:"shopName,omitempty"  yaml:"shopName,omitempty"`
	ItemID    string    `json:"itemId"              yaml:"itemId"`
	ItemName  string    `json:"itemName,omitempty"  yaml:"itemName,omitempty"`
	BuyPrice  *float64  `json:"buyPrice,omitempty"  yaml:"buyPrice,omitempty"`
	SellPrice *float64  `json:"sellPrice,omitempty" yaml:"sellPrice,omitempty"`
	Quantity  int       `json:"quantity"            yaml:"quantity"`
	Stock     int       `json:"stock"               yaml:"stock"`
	UpdatedAt time.Time `json:"updatedAt"           yaml:"updatedAt"`
}

// PricePoint is one sample of an item's price history.
type PricePoint struct {
	Timestamp    time.Time `json:"timestamp"              yaml:"timestamp"`
	AvgBuyPrice  *float64  `json:"avgBuyPrice,omitempty"  yaml:"avgBuyPrice,omitempty"`
	AvgSellPrice *float64  `json:"avgSellPrice,omitempty" yaml:"avgSellPrice,omitempty"`
	ShopCount    int       `json:"shopCount"              yaml:"shopCount"`
}

// FieldChange records the old and new value of a changed field.
type FieldChange struct {
	Old any `json:"old" yaml:"old"`
	New any `json:"new" yaml:"new"`
}

// ChangeLogEntry is one recorded modification of a shop.
type ChangeLogEntry struct {
	ID         string                 `json:"id"                yaml:"id"`
	EntityType string                 `json:"entityType"        yaml:"entityType"`
	EntityID   string                 `json:"entityId"          yaml:"entityId"`
	Action     string                 `json:"action"            yaml:"action"`
	Changes    map[string]FieldChange `json:"changes,omitempty" yaml:"changes,omitempty"`
	ActorID    string                 `json:"actorId,omitempty" yaml:"actorId,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"         yaml:"createdAt"`
}

// Address is the in-world location of a shop.
type Address struct {
	ID     string `json:"id"               yaml:"id"`
	ShopID string `json:"shopId,omitempty" yaml:"shopId,omitempty"`
	World  string `json:"world"            yaml:"world"`
	X      int    `json:"x"                yaml:"x"`
	Y      int    `json:"y"                yaml:"y"`
	Z      int    `json:"z"                yaml:"z"`
	Label  string `json:"label,omitempty"  yaml:"label,omitempty"`
}

// AddressCreateRequest is the body of an address creation.
type AddressCreateRequest struct {
	ShopID string `json:"shopId,omitempty" yaml:"shopId,omitempty"`
	World  string `json:"world"            yaml:"world"`
	X      int    `json:"x"                yaml:"x"`
	Y      int    `json:"y"                yaml:"y"`
	Z      int    `json:"z"                yaml:"z"`
	Label  string `json:"label,omitempty"  yaml:"label,omitempty"`
}

// StorageUnit is a stock container attached to a shop.
type StorageUnit struct {
	ID        string    `json:"id"        yaml:"id"`
	ShopID    string    `json:"shopId"    yaml:"shopId"`
	ItemID    string    `json:"itemId"    yaml:"itemId"`
	Quantity  int       `json:"quantity"  yaml:"quantity"`
	Capacity  int       `json:"capacity"  yaml:"capacity"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// StorageUpdateRequest is the body of a storage update.
type StorageUpdateRequest struct {
	Quantity *int `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Capacity *int `json:"capacity,omitempty" yaml:"capacity,omitempty"`
}

// ItemStat summarizes market activity for one item.
type ItemStat struct {
	ItemID       string   `json:"itemId"                 yaml:"itemId"`
	ItemName     string   `json:"itemName"               yaml:"itemName"`
	AvgBuyPrice  *float64 `json:"avgBuyPrice,omitempty"  yaml:"avgBuyPrice,omitempty"`
	AvgSellPrice *float64 `json:"avgSellPrice,omitempty" yaml:"avgSellPrice,omitempty"`
	ShopCount    int      `json:"shopCount"              yaml:"shopCount"`
}

// MarketReport is the market-wide summary report.
type MarketReport struct {
	GeneratedAt  time.Time  `json:"generatedAt"  yaml:"generatedAt"`
	TotalShops   int        `json:"totalShops"   yaml:"totalShops"`
	ActiveShops  int        `json:"activeShops"  yaml:"activeShops"`
	TotalPlayers int        `json:"totalPlayers" yaml:"totalPlayers"`
	TotalItems   int        `json:"totalItems"   yaml:"totalItems"`
	TopItems     []ItemStat `json:"topItems"     yaml:"topItems"`
}

// PlayerReport summarizes one player's shops.
type PlayerReport struct {
	PlayerID    string    `json:"playerId"    yaml:"playerId"`
	Username    string    `json:"username"    yaml:"username"`
	ShopCount   int       `json:"shopCount"   yaml:"shopCount"`
	ItemCount   int       `json:"itemCount"   yaml:"itemCount"`
	TotalStock  int       `json:"totalStock"  yaml:"totalStock"`
	GeneratedAt time.Time `json:"generatedAt" yaml:"generatedAt"`
}
