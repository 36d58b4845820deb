package domain

import (
	"encoding/json"
	"time"
)

// AssetType - тип торгуемого ассета.
type AssetType string

const (
	AssetParcel AssetType = "parcel"
	AssetEstate AssetType = "estate"
)

// ValidAssetType проверяет значение по закрытому перечислению.
func ValidAssetType(s string) bool {
	switch AssetType(s) {
	case AssetParcel, AssetEstate:
		return true
	}
	return false
}

// Parcel - земельный участок. Создается и обновляется внешним
// процессом индексации блокчейна, здесь только читается.
type Parcel struct {
	ID                string
	X                 int
	Y                 int
	TokenID           *string
	Owner             *string
	UpdateOperator    *string
	Data              json.RawMessage
	DistrictID        *string
	EstateID          *string
	Tags              json.RawMessage
	AuctionPrice      *float64
	AuctionOwner      *string
	LastTransferredAt *time.Time

	// Декорация последней публикацией (может отсутствовать).
	Publication *Publication
}

// Coordinate возвращает точку участка.
func (p *Parcel) Coordinate() Coordinate {
	return Coordinate{X: p.X, Y: p.Y}
}

// IsEqual - тот же участок: совпал id либо пара координат.
// Две проверки нужны, потому что в памяти участок может жить
// и с собранным id, и только с координатами.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return p.ID == other.ID || (p.X == other.X && p.Y == other.Y)
}

// DistanceTo - расстояние Чебышёва между участками.
func (p *Parcel) DistanceTo(other *Parcel) int {
	return p.Coordinate().DistanceTo(other.Coordinate())
}

// IsWithinBoundingBox - участок лежит в квадрате размера size вокруг other.
func (p *Parcel) IsWithinBoundingBox(other *Parcel, size int) bool {
	return p.Coordinate().IsWithinBoundingBox(other.Coordinate(), size)
}

// Estate - набор участков, торгуемый как единый ассет.
type Estate struct {
	ID                string
	TokenID           *string
	Owner             *string
	Data              json.RawMessage
	LastTransferredAt *time.Time

	Publication *Publication
}

// FilteredAssets - страница выдачи маркетплейса плюс полный счетчик
// под тем же предикатом.
type FilteredAssets[T any] struct {
	Assets []T
	Total  int
}
