package domain

// Известные служебные районы. Участки этих районов не могут
// принадлежать пользователям.
const (
	GenesisPlazaDistrictID = "55327350-d9f0-4cae-b0f3-8745a0431099"
	RoadsDistrictID        = "f77140f9-c7b4-4787-89c9-9fa0e219b079"
)

// District - именованный район карты, на который могут ссылаться участки.
type District struct {
	ID          string
	Name        string
	Description string
	Link        string
	Public      bool
	ParcelCount int
	Priority    int
	Center      string
}

// IsPlazaDistrict - район является площадью.
func IsPlazaDistrict(districtID *string) bool {
	return districtID != nil && *districtID == GenesisPlazaDistrictID
}

// IsRoadDistrict - район является дорогой.
func IsRoadDistrict(districtID *string) bool {
	return districtID != nil && *districtID == RoadsDistrictID
}

// IsPlaza - участок лежит на площади.
func (p *Parcel) IsPlaza() bool {
	return IsPlazaDistrict(p.DistrictID)
}

// IsRoad - участок лежит на дороге.
func (p *Parcel) IsRoad() bool {
	return IsRoadDistrict(p.DistrictID)
}

// Mortgage - залог под ассет. Здесь нужен только его предикат
// активности, сами записи читаются через EXISTS-подзапрос.
type MortgageStatus string

const (
	MortgagePending   MortgageStatus = "pending"
	MortgageOngoing   MortgageStatus = "ongoing"
	MortgagePaid      MortgageStatus = "paid"
	MortgageDefaulted MortgageStatus = "defaulted"
	MortgageCancelled MortgageStatus = "cancelled"
)

// ActiveMortgageStatuses - статусы, при которых залог считается действующим.
func ActiveMortgageStatuses() []string {
	return []string{string(MortgagePending), string(MortgageOngoing)}
}
