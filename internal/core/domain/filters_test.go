package domain

import "testing"

func TestSanitizeDefaults(t *testing.T) {
	s := PublicationFilters{}.Sanitize()

	if s.Status != nil {
		t.Fatalf("empty status must mean no status filter, got %v", *s.Status)
	}
	if s.AssetType != AssetParcel {
		t.Fatalf("default asset type = %q, want %q", s.AssetType, AssetParcel)
	}
	if s.Sort.By != SortByPrice || s.Sort.Order != OrderAsc {
		t.Fatalf("default sort = %q %q, want price ASC", s.Sort.By, s.Sort.Order)
	}
	if s.Pagination.Limit != DefaultLimit || s.Pagination.Offset != 0 {
		t.Fatalf("default pagination = %+v", s.Pagination)
	}
}

func TestSanitizeAcceptsValidValues(t *testing.T) {
	s := PublicationFilters{
		Status:    "sold",
		AssetType: "estate",
		SortBy:    "expires_at",
		SortOrder: "DESC",
		Limit:     50,
		Offset:    200,
	}.Sanitize()

	if s.Status == nil || *s.Status != PublicationSold {
		t.Fatalf("status = %v, want sold", s.Status)
	}
	if s.AssetType != AssetEstate {
		t.Fatalf("asset type = %q, want estate", s.AssetType)
	}
	if s.Sort.By != SortByExpiresAt || s.Sort.Order != OrderDesc {
		t.Fatalf("sort = %q %q, want expires_at DESC", s.Sort.By, s.Sort.Order)
	}
	if s.Pagination.Limit != 50 || s.Pagination.Offset != 200 {
		t.Fatalf("pagination = %+v", s.Pagination)
	}
}

func TestSanitizeRejectsHostileValues(t *testing.T) {
	// всё, что не входит в перечисления, заменяется дефолтами
	s := PublicationFilters{
		Status:    "open; DROP TABLE publications",
		AssetType: "parcel' OR '1'='1",
		SortBy:    "price; --",
		SortOrder: "ASC, owner",
		Limit:     -1,
		Offset:    -10,
	}.Sanitize()

	if s.Status != nil {
		t.Fatalf("hostile status must be dropped, got %v", *s.Status)
	}
	if s.AssetType != AssetParcel {
		t.Fatalf("hostile asset type must fall back to parcel, got %q", s.AssetType)
	}
	if s.Sort.By != SortByPrice || s.Sort.Order != OrderAsc {
		t.Fatalf("hostile sort must fall back to price ASC, got %q %q", s.Sort.By, s.Sort.Order)
	}
	if s.Pagination.Limit != DefaultLimit || s.Pagination.Offset != 0 {
		t.Fatalf("hostile pagination must fall back to defaults, got %+v", s.Pagination)
	}
}

func TestSanitizeLimitBounds(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero", 0, DefaultLimit},
		{"min", 1, 1},
		{"max", MaxLimit, MaxLimit},
		{"over max", MaxLimit + 1, DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := PublicationFilters{Limit: tt.limit}.Sanitize()
			if s.Pagination.Limit != tt.want {
				t.Fatalf("limit = %d, want %d", s.Pagination.Limit, tt.want)
			}
		})
	}
}

func TestSanitizedColumnsOmitServiceFields(t *testing.T) {
	contains := func(cols []string, c string) bool {
		for _, col := range cols {
			if col == c {
				return true
			}
		}
		return false
	}

	pub := SanitizedPublicationColumns()
	for _, hidden := range []string{"is_latest", "created_at", "updated_at"} {
		if contains(pub, hidden) {
			t.Fatalf("publication projection must not expose %q", hidden)
		}
	}
	if !contains(pub, "tx_hash") || !contains(pub, "price") {
		t.Fatalf("publication projection lost a public column: %v", pub)
	}

	dist := SanitizedDistrictColumns()
	for _, hidden := range []string{"disabled", "address", "parcel_ids"} {
		if contains(dist, hidden) {
			t.Fatalf("district projection must not expose %q", hidden)
		}
	}

	if contains(SanitizedParcelColumns(), "created_at") {
		t.Fatal("parcel projection must not expose created_at")
	}

	estate := SanitizedEstateColumns()
	for _, hidden := range []string{"created_at", "updated_at"} {
		if contains(estate, hidden) {
			t.Fatalf("estate projection must not expose %q", hidden)
		}
	}
	if !contains(estate, "token_id") {
		t.Fatalf("estate projection lost a public column: %v", estate)
	}
}
