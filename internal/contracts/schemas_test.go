package contracts

import (
	"strings"
	"testing"

	"marketplace-service/internal/constants"
)

const validSubmittedBody = `{
	"tx_hash": "0x` + testTxHashHex + `",
	"tx_status": "confirmed",
	"asset_id": "10,-5",
	"asset_type": "parcel",
	"owner": "0x00112233445566778899aabbccddeeff00112233",
	"price": 1500,
	"expires_at": "2027-01-01T00:00:00Z",
	"status": "open",
	"contract_id": "pub-1",
	"marketplace_address": "0x00112233445566778899aabbccddeeff00112233"
}`

// 64 шестнадцатеричных символа
const testTxHashHex = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

func TestGenerateKeyFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"events/publication-submitted/v1.json", "PublicationSubmittedEvent/1.0.0"},
		{"events/publication-status-changed/v1.json", "PublicationStatusChangedEvent/1.0.0"},
		{"events/garbage.json", ""},
	}

	for _, tt := range tests {
		if got := generateKeyFromPath(tt.path); got != tt.want {
			t.Fatalf("key for %q = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestValidateEventAcceptsValidSubmitted(t *testing.T) {
	err := ValidateEvent(constants.EventTypePublicationSubmitted, constants.EventVersionV1, []byte(validSubmittedBody))
	if err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}
}

func TestValidateEventAcceptsValidStatusChanged(t *testing.T) {
	body := `{"tx_hash": "0x` + testTxHashHex + `", "status": "sold", "tx_status": "confirmed"}`
	err := ValidateEvent(constants.EventTypePublicationStatusChanged, constants.EventVersionV1, []byte(body))
	if err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}
}

func TestValidateEventUnknownSchema(t *testing.T) {
	err := ValidateEvent("ParcelTransferredEvent", constants.EventVersionV1, []byte(`{}`))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("err = %v, want schema-not-found", err)
	}
}

func TestValidateEventMalformedJSON(t *testing.T) {
	err := ValidateEvent(constants.EventTypePublicationSubmitted, constants.EventVersionV1, []byte(`{"tx_hash":`))
	if err == nil || !strings.Contains(err.Error(), "not a valid JSON") {
		t.Fatalf("err = %v, want JSON parse failure", err)
	}
}

func TestValidateEventSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing required fields", `{"tx_hash": "0x` + testTxHashHex + `"}`},
		{
			"bad tx_hash pattern",
			strings.Replace(validSubmittedBody, testTxHashHex, "beef", 1),
		},
		{
			"unknown status enum value",
			strings.Replace(validSubmittedBody, `"status": "open"`, `"status": "archived"`, 1),
		},
		{
			"negative price",
			strings.Replace(validSubmittedBody, `"price": 1500`, `"price": -1`, 1),
		},
		{
			"unexpected extra field",
			strings.Replace(validSubmittedBody, `"contract_id": "pub-1",`, `"contract_id": "pub-1", "surprise": true,`, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEvent(constants.EventTypePublicationSubmitted, constants.EventVersionV1, []byte(tt.body))
			if err == nil {
				t.Fatal("expected schema validation error")
			}
		})
	}
}
