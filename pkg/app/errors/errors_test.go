package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{BadRequestError(nil, "bad amount"), http.StatusBadRequest},
		{CreationNotFoundError(nil, "no creation event"), http.StatusUnprocessableEntity},
		{ResourceNotFoundError(nil, "no such instance"), http.StatusNotFound},
		{DiscoveryUnavailableError(nil, "node unreachable"), http.StatusBadGateway},
		{GeneralError(nil), http.StatusInternalServerError},
	}
	for _, c := range cases {
		var svcErr *ServiceError
		if !errors.As(c.err, &svcErr) {
			t.Fatalf("expected *ServiceError, got %T", c.err)
		}
		if got := svcErr.StatusCode(); got != c.want {
			t.Errorf("%s: expected status %d, got %d", svcErr.Category, c.want, got)
		}
	}
}

func TestIs(t *testing.T) {
	wrapped := fmt.Errorf("listing campaigns: %w",
		DiscoveryUnavailableError(errors.New("dial tcp: connection refused"), "node unreachable"))
	if !Is(wrapped, CategoryDiscoveryUnavailable) {
		t.Error("expected wrapped error to keep its category")
	}
	if Is(wrapped, CategoryDataError) {
		t.Error("category must not match a different category")
	}
	if Is(errors.New("plain"), CategoryGeneralError) {
		t.Error("plain errors carry no category")
	}
}
