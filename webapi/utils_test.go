package webapi_test

import (
	"errors"
	"testing"

	"github.com/amirasaad/bankledger/pkg/domain/ledger"
	"github.com/amirasaad/bankledger/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"account not found", ledger.ErrAccountNotFound, fiber.StatusNotFound},
		{"invalid amount", ledger.ErrInvalidAmount, fiber.StatusBadRequest},
		{"invalid transfer", ledger.ErrInvalidTransfer, fiber.StatusBadRequest},
		{"insufficient funds", ledger.ErrInsufficientFunds, fiber.StatusUnprocessableEntity},
		{"account inactive", ledger.ErrAccountInactive, fiber.StatusConflict},
		{"conflict", ledger.ErrConflict, fiber.StatusConflict},
		{"timeout", ledger.ErrTimeout, fiber.StatusGatewayTimeout},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError},
		{"wrapped", errors.Join(errors.New("ctx"), ledger.ErrInsufficientFunds), fiber.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, webapi.ErrorToStatusCode(tt.err))
		})
	}
}
