package domain

// Санитайзер запросов маркетплейса. Единственная защита от инъекций
// при построении ORDER BY/LIMIT: в текст запроса попадают только
// значения из закрытых перечислений ниже, все пользовательские
// значения уходят через параметры.

// SortColumn - закрытый набор колонок публикаций, по которым разрешена
// сортировка. Никогда не строится из входных данных.
type SortColumn string

const (
	SortByPrice            SortColumn = "price"
	SortByExpiresAt        SortColumn = "expires_at"
	SortByBlockTimeCreated SortColumn = "block_time_created_at"
	SortByBlockTimeUpdated SortColumn = "block_time_updated_at"
)

// SortOrder - направление сортировки.
type SortOrder string

const (
	OrderAsc  SortOrder = "ASC"
	OrderDesc SortOrder = "DESC"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// PublicationFilters - сырой, недоверенный ввод из query-параметров.
type PublicationFilters struct {
	Status    string
	AssetType string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// SortOption - уже проверенная пара колонка/направление.
type SortOption struct {
	By    SortColumn
	Order SortOrder
}

// Pagination - ограниченная пагинация: limit в [1, MaxLimit], offset >= 0.
type Pagination struct {
	Limit  int
	Offset int
}

// SanitizedFilters - безопасная спецификация запроса.
// Status == nil означает "без фильтра по статусу" (см. hasStatus).
type SanitizedFilters struct {
	Status     *PublicationStatus
	AssetType  AssetType
	Sort       SortOption
	Pagination Pagination
}

// Sanitize нормализует ввод до безопасной спецификации.
// Неизвестные значения не становятся ошибкой - они заменяются
// дефолтами (или отсутствием фильтра для статуса): маркетплейс
// переживает кривой запрос, но никогда не пропускает его в SQL как есть.
func (f PublicationFilters) Sanitize() SanitizedFilters {
	s := SanitizedFilters{
		AssetType: AssetParcel,
		Sort:      SortOption{By: SortByPrice, Order: OrderAsc},
		Pagination: Pagination{
			Limit:  DefaultLimit,
			Offset: 0,
		},
	}

	if ValidPublicationStatus(f.Status) {
		status := PublicationStatus(f.Status)
		s.Status = &status
	}

	if ValidAssetType(f.AssetType) {
		s.AssetType = AssetType(f.AssetType)
	}

	switch SortColumn(f.SortBy) {
	case SortByPrice, SortByExpiresAt, SortByBlockTimeCreated, SortByBlockTimeUpdated:
		s.Sort.By = SortColumn(f.SortBy)
	}

	switch SortOrder(f.SortOrder) {
	case OrderAsc, OrderDesc:
		s.Sort.Order = SortOrder(f.SortOrder)
	}

	if f.Limit >= 1 && f.Limit <= MaxLimit {
		s.Pagination.Limit = f.Limit
	}
	if f.Offset > 0 {
		s.Pagination.Offset = f.Offset
	}

	return s
}

// Списки колонок для проекций. Выносить их в запрос целиком - дорого,
// а служебные поля наружу отдавать нельзя, поэтому проекция всегда
// строится как "все колонки минус черный список".

var parcelColumns = []string{
	"id", "x", "y", "token_id", "owner", "update_operator", "data",
	"district_id", "estate_id", "tags", "auction_price", "auction_owner",
	"last_transferred_at", "created_at", "updated_at",
}

var publicationColumns = []string{
	"tx_hash", "tx_status", "asset_id", "asset_type", "owner", "price",
	"expires_at", "status", "block_number", "block_time_created_at",
	"block_time_updated_at", "contract_id", "marketplace_address",
	"is_latest", "created_at", "updated_at",
}

var estateColumns = []string{
	"id", "token_id", "owner", "data", "last_transferred_at",
	"created_at", "updated_at",
}

var districtColumns = []string{
	"id", "name", "description", "link", "public", "parcel_count",
	"parcel_ids", "priority", "center", "disabled", "address",
	"created_at", "updated_at",
}

// У участков и эстейтов скрываются одни и те же служебные таймстемпы.
var assetTimestampBlacklist = []string{"created_at", "updated_at"}

var publicationBlacklist = []string{"is_latest", "created_at", "updated_at"}

var districtBlacklist = []string{"disabled", "address", "parcel_ids", "created_at", "updated_at"}

func omitColumns(columns, blacklist []string) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		blacklisted := false
		for _, b := range blacklist {
			if c == b {
				blacklisted = true
				break
			}
		}
		if !blacklisted {
			out = append(out, c)
		}
	}
	return out
}

// SanitizedParcelColumns - колонки участка, безопасные для выдачи.
func SanitizedParcelColumns() []string {
	return omitColumns(parcelColumns, assetTimestampBlacklist)
}

// SanitizedEstateColumns - колонки эстейта, безопасные для выдачи.
func SanitizedEstateColumns() []string {
	return omitColumns(estateColumns, assetTimestampBlacklist)
}

// SanitizedPublicationColumns - колонки публикации без служебных полей.
func SanitizedPublicationColumns() []string {
	return omitColumns(publicationColumns, publicationBlacklist)
}

// SanitizedDistrictColumns - колонки района без внутренней бухгалтерии.
func SanitizedDistrictColumns() []string {
	return omitColumns(districtColumns, districtBlacklist)
}
