package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
)

func TestFromStore_MapsConstraintViolations(t *testing.T) {
	cases := []struct {
		code     string
		wantCode int
	}{
		{"23P01", http.StatusConflict},
		{"23514", http.StatusBadRequest},
		{"23503", http.StatusBadRequest},
		{"42501", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			err := fmt.Errorf("store: %w", &pq.Error{Code: pq.ErrorCode(tc.code)})
			he := FromStore(err)
			if he == nil {
				t.Fatal("a recognised pq code should map to an HTTP error")
			}
			if he.Code != tc.wantCode {
				t.Errorf("code %s mapped to %d, want %d", tc.code, he.Code, tc.wantCode)
			}
			if he.Message == "" {
				t.Error("mapped errors must carry a user-facing message")
			}
		})
	}
}

func TestFromStore_IgnoresOtherErrors(t *testing.T) {
	if he := FromStore(fmt.Errorf("plain failure")); he != nil {
		t.Errorf("non-pq errors must pass through, got %+v", he)
	}
	if he := FromStore(&pq.Error{Code: "40001"}); he != nil {
		t.Errorf("unrecognised pq codes must pass through, got %+v", he)
	}
}
