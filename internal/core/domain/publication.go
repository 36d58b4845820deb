package domain

import "time"

// PublicationStatus - статус самого объявления на маркетплейсе.
type PublicationStatus string

const (
	PublicationOpen      PublicationStatus = "open"
	PublicationSold      PublicationStatus = "sold"
	PublicationCancelled PublicationStatus = "cancelled"
)

// TxStatus - статус транзакции, создавшей объявление.
type TxStatus string

const (
	TxPending   TxStatus = "pending"
	TxConfirmed TxStatus = "confirmed"
	TxFailed    TxStatus = "failed"
)

// ValidPublicationStatus проверяет значение по закрытому перечислению.
func ValidPublicationStatus(s string) bool {
	switch PublicationStatus(s) {
	case PublicationOpen, PublicationSold, PublicationCancelled:
		return true
	}
	return false
}

// Publication - одно событие выставления ассета на продажу.
// История append-only: у каждого ассета может быть много публикаций,
// но не больше одной с IsLatest = true (инвариант поддерживает писатель).
type Publication struct {
	TxHash             string            `json:"tx_hash"`
	TxStatus           TxStatus          `json:"tx_status"`
	AssetID            string            `json:"asset_id"`
	AssetType          AssetType         `json:"asset_type"`
	Owner              string            `json:"owner"`
	Price              float64           `json:"price"`
	ExpiresAt          time.Time         `json:"expires_at"`
	Status             PublicationStatus `json:"status"`
	BlockNumber        int64             `json:"block_number"`
	BlockTimeCreatedAt *time.Time        `json:"block_time_created_at"`
	BlockTimeUpdatedAt *time.Time        `json:"block_time_updated_at"`
	ContractID         string            `json:"contract_id"`
	MarketplaceAddress string            `json:"marketplace_address"`
	IsLatest           bool              `json:"is_latest"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// PublicationStatusUpdate - изменение состояния уже существующей
// публикации (продажа, отмена, подтверждение транзакции).
type PublicationStatusUpdate struct {
	TxHash             string
	Status             PublicationStatus
	TxStatus           TxStatus
	BlockTimeUpdatedAt *time.Time
}

// IsExpired - срок публикации истек на момент now.
func (p *Publication) IsExpired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

// IsActive - публикация реально "в продаже": последняя по ассету,
// с подтвержденной транзакцией и не истекшая.
// IsLatest сам по себе этого НЕ гарантирует.
func (p *Publication) IsActive(now time.Time) bool {
	return p.IsLatest && p.TxStatus == TxConfirmed && !p.IsExpired(now)
}
