// Package webapi exposes the ledger engine over HTTP using Fiber. It is the
// collaborator surface around the engine: request binding and validation,
// plus mapping of typed ledger errors to HTTP statuses. Authentication is
// deliberately absent.
//
// Routes:
//   - GET    /users/:user_id/accounts        : List a user's accounts.
//   - POST   /accounts                       : Open a new account.
//   - GET    /accounts/:id                   : Fetch one account.
//   - PATCH  /accounts/:id/deactivate        : Deactivate an account (idempotent).
//   - POST   /deposit                        : Credit an account.
//   - POST   /withdraw                       : Debit an account.
//   - POST   /transfer                       : Move funds between two accounts.
//   - GET    /accounts/:account_id/transactions : Transaction history, newest first.
package webapi

import (
	"log/slog"

	"github.com/amirasaad/bankledger/pkg/domain/ledger"
	ledgersvc "github.com/amirasaad/bankledger/pkg/service/ledger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AccountRoutes registers the account and ledger operation routes.
func AccountRoutes(app *fiber.App, svc *ledgersvc.Service, logger *slog.Logger) {
	app.Get("/users/:user_id/accounts", ListAccounts(svc, logger))
	app.Post("/accounts", CreateAccount(svc, logger))
	app.Get("/accounts/:id", GetAccount(svc, logger))
	app.Patch("/accounts/:id/deactivate", Deactivate(svc, logger))
	app.Post("/deposit", Deposit(svc, logger))
	app.Post("/withdraw", Withdraw(svc, logger))
	app.Post("/transfer", Transfer(svc, logger))
	app.Get("/accounts/:account_id/transactions", History(svc, logger))
}

// CreateAccount returns the handler for opening a new account.
func CreateAccount(svc *ledgersvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CreateAccountRequest](c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "invalid input", err.Error())
		}
		userID, err := uuid.Parse(input.UserID)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "invalid user ID", err.Error())
		}
		acct, err := svc.CreateAccount(c.UserContext(), userID, ledger.AccountType(input.Type))
		if err != nil {
			logger.Error("create account failed", "error", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "failed to create account", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Account created",
			Data:    ToAccountDTO(acct),
		})
	}
}

// GetAccount returns the handler for fetching one account snapshot.
func GetAccount(svc *ledgersvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "invalid account ID", err.Error())
		}
		acct, err := svc.GetAccount(c.UserContext(), id)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "failed to fetch account", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Account fetched", Data: ToAccountDTO(acct)})
	}
}

// ListAccounts returns the handler for listing a user's accounts.
func ListAccounts(svc *ledgersvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := uuid.Parse(c.Params("user_id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "invalid user ID", err.Error())
		}
		accts, err := svc.ListAccounts(c.UserContext(), userID)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "failed to list accounts", err.Error())
		}
		dtos := make([]*AccountDTO, 0, len(accts))
		for _, a := range accts {
			dtos = append(dtos, ToAccountDTO(a))
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Accounts fetched", Data: dtos})
	}
}

// Deactivate returns the handler for the one-way active to inactive
// transition. Deactivating an already-inactive account succeeds.
func Deactivate(svc *ledgersvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "invalid account ID", err.Error())
		}
		acct, err := svc.Deactivate(c.UserContext(), id)
		if err != nil {
			logger.Error("deactivate failed", "accountID", id, "error", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "failed to deactivate account", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Account deactivated", Data: ToAccountDTO(acct)})
	}
}

// Deposit returns the handler for crediting an account.
func Deposit(svc *ledgersvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[DepositRequest](c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "invalid input", err.Error())
		}
		accountID, err := uuid.Parse(input.AccountID)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "invalid account ID", err.Error())
		}
		acct, record, err := svc.Deposit(c.UserContext(), accountID, input.Amount)
		if err != nil {
			logger.Error("deposit failed", "accountID", accountID, "error", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "failed to deposit", err.Error())
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Deposit successful",
			Data: fiber.Map{
				"account":     ToAccountDTO(acct),
				"transaction": ToTransactionDTO(record),
			},
		})
	}
}

// Withdraw returns the handler for debiting an account.
func Withdraw(svc *ledgersvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[WithdrawRequest](c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "invalid input", err.Error())
		}
		accountID, err := uuid.Parse(input.AccountID)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "invalid account ID", err.Error())
		}
		acct, record, err := svc.Withdraw(c.UserContext(), accountID, input.Amount)
		if err != nil {
			logger.Error("withdrawal failed", "accountID", accountID, "error", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "failed to withdraw", err.Error())
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Withdrawal successful",
			Data: fiber.Map{
				"account":     ToAccountDTO(acct),
				"transaction": ToTransactionDTO(record),
			},
		})
	}
}

// Transfer returns the handler for moving funds between two accounts.
func Transfer(svc *ledgersvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[TransferRequest](c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "invalid input", err.Error())
		}
		fromID, err := uuid.Parse(input.FromAccountID)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "invalid source account ID", err.Error())
		}
		toID, err := uuid.Parse(input.ToAccountID)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "invalid destination account ID", err.Error())
		}
		record, err := svc.Transfer(c.UserContext(), fromID, toID, input.Amount)
		if err != nil {
			logger.Error("transfer failed", "fromAccountID", fromID, "toAccountID", toID, "error", err)
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "failed to transfer", err.Error())
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Transfer successful",
			Data:    ToTransactionDTO(record),
		})
	}
}

// History returns the handler for an account's transaction history.
func History(svc *ledgersvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := uuid.Parse(c.Params("account_id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "invalid account ID", err.Error())
		}
		records, err := svc.History(c.UserContext(), accountID)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "failed to list transactions", err.Error())
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Transactions fetched",
			Data:    ToTransactionDTOs(records),
		})
	}
}
