package domain

import (
	"testing"
	"time"
)

func TestPublicationIsExpired(t *testing.T) {
	expires := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	pub := Publication{ExpiresAt: expires}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before expiry", expires.Add(-time.Second), false},
		{"exactly at expiry", expires, true},
		{"after expiry", expires.Add(time.Second), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pub.IsExpired(tt.now); got != tt.want {
				t.Fatalf("IsExpired = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPublicationIsActive(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		pub  Publication
		want bool
	}{
		{
			"latest confirmed not expired",
			Publication{IsLatest: true, TxStatus: TxConfirmed, ExpiresAt: future},
			true,
		},
		{
			"not latest",
			Publication{IsLatest: false, TxStatus: TxConfirmed, ExpiresAt: future},
			false,
		},
		{
			"pending tx",
			Publication{IsLatest: true, TxStatus: TxPending, ExpiresAt: future},
			false,
		},
		{
			"failed tx",
			Publication{IsLatest: true, TxStatus: TxFailed, ExpiresAt: future},
			false,
		},
		{
			"expired",
			Publication{IsLatest: true, TxStatus: TxConfirmed, ExpiresAt: now.Add(-time.Minute)},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pub.IsActive(now); got != tt.want {
				t.Fatalf("IsActive = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidPublicationStatus(t *testing.T) {
	for _, s := range []string{"open", "sold", "cancelled"} {
		if !ValidPublicationStatus(s) {
			t.Fatalf("status %q must be valid", s)
		}
	}
	for _, s := range []string{"", "OPEN", "expired", "deleted"} {
		if ValidPublicationStatus(s) {
			t.Fatalf("status %q must be invalid", s)
		}
	}
}
