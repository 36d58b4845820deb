package rest

import (
	"encoding/json"
	"time"

	"marketplace-service/internal/core/domain"
)

// PublicationResponse - публикация во внешнем представлении.
// Служебные поля (is_latest и таймстемпы строки) наружу не выходят,
// их нет и в проекциях SQL, и здесь.
type PublicationResponse struct {
	TxHash             string     `json:"tx_hash"`
	TxStatus           string     `json:"tx_status"`
	AssetID            string     `json:"asset_id"`
	AssetType          string     `json:"asset_type"`
	Owner              string     `json:"owner"`
	Price              float64    `json:"price"`
	ExpiresAt          time.Time  `json:"expires_at"`
	Status             string     `json:"status"`
	BlockNumber        int64      `json:"block_number"`
	BlockTimeCreatedAt *time.Time `json:"block_time_created_at"`
	BlockTimeUpdatedAt *time.Time `json:"block_time_updated_at"`
	ContractID         string     `json:"contract_id"`
	MarketplaceAddress string     `json:"marketplace_address"`
}

// ParcelResponse - карточка участка.
type ParcelResponse struct {
	ID                string               `json:"id"`
	X                 int                  `json:"x"`
	Y                 int                  `json:"y"`
	TokenID           *string              `json:"token_id"`
	Owner             *string              `json:"owner"`
	UpdateOperator    *string              `json:"update_operator"`
	Data              json.RawMessage      `json:"data"`
	DistrictID        *string              `json:"district_id"`
	EstateID          *string              `json:"estate_id"`
	Tags              json.RawMessage      `json:"tags"`
	AuctionPrice      *float64             `json:"auction_price"`
	AuctionOwner      *string              `json:"auction_owner"`
	LastTransferredAt *time.Time           `json:"last_transferred_at"`
	Publication       *PublicationResponse `json:"publication"`
}

// EstateResponse - карточка эстейта.
type EstateResponse struct {
	ID                string               `json:"id"`
	TokenID           *string              `json:"token_id"`
	Owner             *string              `json:"owner"`
	Data              json.RawMessage      `json:"data"`
	LastTransferredAt *time.Time           `json:"last_transferred_at"`
	Publication       *PublicationResponse `json:"publication"`
}

// DistrictResponse - район в справочнике.
type DistrictResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Public      bool   `json:"public"`
	ParcelCount int    `json:"parcel_count"`
	Priority    int    `json:"priority"`
	Center      string `json:"center"`
}

// PaginatedAssetsResponse - страница маркетплейса.
type PaginatedAssetsResponse[T any] struct {
	Data   []T `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// TokenIDResponse - ответ преобразований координаты <-> токен.
type TokenIDResponse struct {
	ID      *string `json:"id,omitempty"`
	TokenID *string `json:"token_id,omitempty"`
}

func newPublicationResponse(p *domain.Publication) *PublicationResponse {
	if p == nil {
		return nil
	}
	return &PublicationResponse{
		TxHash:             p.TxHash,
		TxStatus:           string(p.TxStatus),
		AssetID:            p.AssetID,
		AssetType:          string(p.AssetType),
		Owner:              p.Owner,
		Price:              p.Price,
		ExpiresAt:          p.ExpiresAt,
		Status:             string(p.Status),
		BlockNumber:        p.BlockNumber,
		BlockTimeCreatedAt: p.BlockTimeCreatedAt,
		BlockTimeUpdatedAt: p.BlockTimeUpdatedAt,
		ContractID:         p.ContractID,
		MarketplaceAddress: p.MarketplaceAddress,
	}
}

func newParcelResponse(p domain.Parcel) ParcelResponse {
	return ParcelResponse{
		ID:                p.ID,
		X:                 p.X,
		Y:                 p.Y,
		TokenID:           p.TokenID,
		Owner:             p.Owner,
		UpdateOperator:    p.UpdateOperator,
		Data:              p.Data,
		DistrictID:        p.DistrictID,
		EstateID:          p.EstateID,
		Tags:              p.Tags,
		AuctionPrice:      p.AuctionPrice,
		AuctionOwner:      p.AuctionOwner,
		LastTransferredAt: p.LastTransferredAt,
		Publication:       newPublicationResponse(p.Publication),
	}
}

func newParcelResponses(parcels []domain.Parcel) []ParcelResponse {
	out := make([]ParcelResponse, len(parcels))
	for i, p := range parcels {
		out[i] = newParcelResponse(p)
	}
	return out
}

func newEstateResponse(e domain.Estate) EstateResponse {
	return EstateResponse{
		ID:                e.ID,
		TokenID:           e.TokenID,
		Owner:             e.Owner,
		Data:              e.Data,
		LastTransferredAt: e.LastTransferredAt,
		Publication:       newPublicationResponse(e.Publication),
	}
}

func newEstateResponses(estates []domain.Estate) []EstateResponse {
	out := make([]EstateResponse, len(estates))
	for i, e := range estates {
		out[i] = newEstateResponse(e)
	}
	return out
}

func newDistrictResponse(d domain.District) DistrictResponse {
	return DistrictResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Link:        d.Link,
		Public:      d.Public,
		ParcelCount: d.ParcelCount,
		Priority:    d.Priority,
		Center:      d.Center,
	}
}
