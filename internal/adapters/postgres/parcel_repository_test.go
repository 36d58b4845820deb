package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeStringRows - одноколоночный результат запроса; строк ноль или одна,
// значение может быть NULL.
type fakeStringRows struct {
	value    *string
	hasRow   bool
	consumed bool
	rowsErr  error
}

func (r *fakeStringRows) Close()                                       {}
func (r *fakeStringRows) Err() error                                   { return r.rowsErr }
func (r *fakeStringRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeStringRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeStringRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeStringRows) RawValues() [][]byte                          { return nil }
func (r *fakeStringRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeStringRows) Next() bool {
	if r.consumed || !r.hasRow {
		return false
	}
	r.consumed = true
	return true
}

func (r *fakeStringRows) Scan(dest ...any) error {
	ptr, ok := dest[0].(**string)
	if !ok {
		return fmt.Errorf("nullable column must be scanned into **string, got %T", dest[0])
	}
	*ptr = r.value
	return nil
}

func TestScanNullableString(t *testing.T) {
	t.Run("value present", func(t *testing.T) {
		token := "0x01"
		got, err := scanNullableString(&fakeStringRows{value: &token, hasRow: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || *got != token {
			t.Fatalf("value = %v, want %q", got, token)
		}
	})

	t.Run("null value", func(t *testing.T) {
		// участок существует, но token_id ему еще не назначен
		got, err := scanNullableString(&fakeStringRows{value: nil, hasRow: true})
		if err != nil {
			t.Fatalf("NULL must not be a scan error: %v", err)
		}
		if got != nil {
			t.Fatalf("value = %v, want nil", got)
		}
	})

	t.Run("no rows", func(t *testing.T) {
		got, err := scanNullableString(&fakeStringRows{hasRow: false})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Fatalf("value = %v, want nil", got)
		}
	})

	t.Run("rows error is forwarded", func(t *testing.T) {
		wantErr := errors.New("connection lost")
		if _, err := scanNullableString(&fakeStringRows{rowsErr: wantErr}); !errors.Is(err, wantErr) {
			t.Fatalf("err = %v, want %v", err, wantErr)
		}
	})
}
