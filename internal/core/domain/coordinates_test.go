package domain

import "testing"

func intPtr(v int) *int { return &v }

func TestBuildParcelID(t *testing.T) {
	tests := []struct {
		name    string
		x, y    *int
		want    string
		wantErr bool
	}{
		{"ok", intPtr(3), intPtr(-7), "3,-7", false},
		{"zero", intPtr(0), intPtr(0), "0,0", false},
		{"nil x", nil, intPtr(1), "", true},
		{"nil y", intPtr(1), nil, "", true},
		{"both nil", nil, nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildParcelID(tt.x, tt.y)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got id %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("id = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitParcelID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		want    [2]string
		wantErr bool
	}{
		{"ok", "12,-34", [2]string{"12", "-34"}, false},
		{"not numbers still splits", "a,b", [2]string{"a", "b"}, false},
		{"no comma", "12", [2]string{}, true},
		{"too many parts", "1,2,3", [2]string{}, true},
		{"empty", "", [2]string{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitParcelID(tt.id)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("parts = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildSplitRoundTrip(t *testing.T) {
	x, y := -150, 150
	id, err := BuildParcelID(&x, &y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parts, err := SplitParcelID(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parts[0] != "-150" || parts[1] != "150" {
		t.Fatalf("round trip mismatch: %v", parts)
	}
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Coordinate
		wantErr bool
	}{
		{"ok", "10,-20", Coordinate{X: 10, Y: -20}, false},
		{"with spaces", " 1, 2 ", Coordinate{X: 1, Y: 2}, false},
		{"not a number", "a,2", Coordinate{}, true},
		{"missing part", "5", Coordinate{}, true},
		{"empty", "", Coordinate{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCoordinate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("coordinate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistanceTo(t *testing.T) {
	tests := []struct {
		name string
		a, b Coordinate
		want int
	}{
		{"same point", Coordinate{1, 1}, Coordinate{1, 1}, 0},
		{"horizontal", Coordinate{0, 0}, Coordinate{5, 0}, 5},
		{"vertical", Coordinate{0, 0}, Coordinate{0, -4}, 4},
		{"diagonal dominates", Coordinate{-2, 3}, Coordinate{4, -1}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.DistanceTo(tt.b); got != tt.want {
				t.Fatalf("distance = %d, want %d", got, tt.want)
			}
			// расстояние симметрично
			if got := tt.b.DistanceTo(tt.a); got != tt.want {
				t.Fatalf("reverse distance = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsWithinBoundingBox(t *testing.T) {
	center := Coordinate{0, 0}

	if !(Coordinate{3, -3}).IsWithinBoundingBox(center, 3) {
		t.Fatal("point on the box edge must be inside")
	}
	if (Coordinate{4, 0}).IsWithinBoundingBox(center, 3) {
		t.Fatal("point outside the box must not be inside")
	}
}

func TestNormalizeRange(t *testing.T) {
	tests := []struct {
		name             string
		a, b             Coordinate
		wantMin, wantMax Coordinate
	}{
		{"already normalized", Coordinate{-5, -5}, Coordinate{5, 5}, Coordinate{-5, -5}, Coordinate{5, 5}},
		{"swapped corners", Coordinate{5, 5}, Coordinate{-5, -5}, Coordinate{-5, -5}, Coordinate{5, 5}},
		{"mixed axes", Coordinate{-3, 8}, Coordinate{2, -1}, Coordinate{-3, -1}, Coordinate{2, 8}},
		{"degenerate", Coordinate{1, 1}, Coordinate{1, 1}, Coordinate{1, 1}, Coordinate{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMin, gotMax := NormalizeRange(tt.a, tt.b)
			if gotMin != tt.wantMin || gotMax != tt.wantMax {
				t.Fatalf("normalized = %v..%v, want %v..%v", gotMin, gotMax, tt.wantMin, tt.wantMax)
			}
		})
	}
}
