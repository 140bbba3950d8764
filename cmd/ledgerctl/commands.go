package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/SscSPs/ledger_core/internal/platform/store"
	"github.com/SscSPs/ledger_core/internal/utils"
	"github.com/SscSPs/ledger_core/pkg/database"
	"github.com/alecthomas/kong"
)

// Globals are flags shared by every command.
type Globals struct {
	Verbose bool   `help:"Enable debug logging." short:"v"`
	User    string `help:"Identity recorded in audit fields." default:"ledgerctl"`
}

type Commands struct {
	Migrate      MigrateCmd      `cmd:"" help:"Apply or roll back database migrations."`
	Seed         SeedCmd         `cmd:"" help:"Create the base currency and the default chart of accounts."`
	MarkOverdue  MarkOverdueCmd  `cmd:"" name:"mark-overdue" help:"Move sent invoices past their due date to OVERDUE."`
	TrialBalance TrialBalanceCmd `cmd:"" name:"trial-balance" help:"Print the trial balance as of a date."`
	Token        TokenCmd        `cmd:"" help:"Issue a bearer token for the HTTP API."`
}

type MigrateCmd struct {
	Direction string `arg:"" enum:"up,down" help:"Migration direction (up or down)."`
}

func (cmd *MigrateCmd) Run(g *Globals) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Store != config.StorePostgres {
		return fmt.Errorf("migrations need STORE=%s, got %q", config.StorePostgres, cfg.Store)
	}

	direction := database.MigrateUp
	if cmd.Direction == "down" {
		direction = database.MigrateDown
	}

	changed, err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, direction)
	if err != nil {
		return err
	}
	logger := newLogger(g.Verbose)
	if changed {
		logger.Info("Migrations applied", slog.String("direction", cmd.Direction))
	} else {
		logger.Info("No migrations to apply", slog.String("direction", cmd.Direction))
	}
	return nil
}

type SeedCmd struct {
	Currency       string `help:"Base currency code." default:"USD"`
	CurrencyName   string `help:"Base currency name." default:"US Dollar"`
	CurrencySymbol string `help:"Base currency symbol." default:"$"`
}

func (cmd *SeedCmd) Run(g *Globals) error {
	return withServices(g, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		base, err := seedBaseCurrency(ctx, svc.Currency, dto.CreateCurrencyRequest{
			Code:   cmd.Currency,
			Name:   cmd.CurrencyName,
			Symbol: cmd.CurrencySymbol,
			IsBase: true,
		}, g.User)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Base currency: %s (%s)\n", base.Code, base.Name)

		accounts, err := seedDefaultChart(ctx, svc.Account, g.User)
		if err != nil {
			return err
		}
		for _, a := range accounts {
			fmt.Fprintf(os.Stdout, "%-6s %-24s %s\n", a.Code, a.Name, a.AccountType)
		}
		return nil
	})
}

type MarkOverdueCmd struct {
	Today time.Time `help:"Reference date (YYYY-MM-DD), defaults to today." format:"2006-01-02"`
}

func (cmd *MarkOverdueCmd) Run(g *Globals) error {
	today := cmd.Today
	if today.IsZero() {
		today = time.Now().UTC()
	}
	return withServices(g, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		n, err := svc.Invoice.MarkOverdueInvoices(ctx, today, g.User)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%d invoice(s) marked overdue\n", n)
		return nil
	})
}

type TrialBalanceCmd struct {
	AsOf time.Time `name:"as-of" help:"Balance date (YYYY-MM-DD), defaults to today." format:"2006-01-02"`
}

func (cmd *TrialBalanceCmd) Run(g *Globals) error {
	asOf := cmd.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	return withServices(g, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		tb, err := svc.Reporting.GetTrialBalance(ctx, asOf)
		if err != nil {
			return err
		}
		printTrialBalance(os.Stdout, tb)
		return nil
	})
}

type TokenCmd struct {
	Subject string        `help:"Token subject (caller identity)." required:""`
	Expiry  time.Duration `help:"Token lifetime, defaults to JWT_EXPIRY_DURATION."`
}

func (cmd *TokenCmd) Run(ctx *kong.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	expiry := cmd.Expiry
	if expiry <= 0 {
		expiry = cfg.JWTExpiryDuration
	}
	token, err := utils.GenerateJWT(cmd.Subject, cfg.JWTSecret, expiry, cfg.JWTIssuer, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Stdout, token)
	return nil
}

// withServices opens the configured store and hands a service container to fn.
// Migrations are not run implicitly; use the migrate command.
func withServices(g *Globals, fn func(ctx context.Context, svc *portssvc.ServiceContainer) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(g.Verbose)

	repos, closeStore, err := store.Open(context.Background(), cfg, logger, false)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := middleware.WithLogger(context.Background(), logger)
	return fn(ctx, services.NewServiceContainer(cfg, repos))
}

// defaultChart is the chart of accounts created by seed.
var defaultChart = []dto.CreateAccountRequest{
	{Code: "1000", Name: "Cash", AccountType: domain.Asset},
	{Code: "1200", Name: "Accounts Receivable", AccountType: domain.Asset},
	{Code: "2000", Name: "Accounts Payable", AccountType: domain.Liability},
	{Code: "3000", Name: "Owner's Equity", AccountType: domain.Equity},
	{Code: "3100", Name: "Retained Earnings", AccountType: domain.Equity},
	{Code: "4000", Name: "Sales Revenue", AccountType: domain.Revenue},
	{Code: "5000", Name: "Operating Expenses", AccountType: domain.Expense},
}

// seedBaseCurrency registers req unless its code exists. An existing base currency
// is left in place.
func seedBaseCurrency(ctx context.Context, currencies portssvc.CurrencySvcFacade, req dto.CreateCurrencyRequest, userID string) (*domain.Currency, error) {
	if base, err := currencies.GetBaseCurrency(ctx); err == nil {
		return base, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	c, err := currencies.EnsureCurrency(ctx, req, userID)
	if err != nil {
		return nil, fmt.Errorf("seeding currency %s: %w", req.Code, err)
	}
	if !c.IsBase {
		return currencies.SetBaseCurrency(ctx, c.CurrencyID, userID)
	}
	return c, nil
}

func seedDefaultChart(ctx context.Context, accounts portssvc.AccountSvcFacade, userID string) ([]domain.Account, error) {
	seeded := make([]domain.Account, 0, len(defaultChart))
	for _, req := range defaultChart {
		a, err := accounts.EnsureAccount(ctx, req, userID)
		if err != nil {
			return nil, fmt.Errorf("seeding account %s: %w", req.Code, err)
		}
		seeded = append(seeded, *a)
	}
	return seeded, nil
}

func printTrialBalance(w io.Writer, tb *domain.TrialBalance) {
	fmt.Fprintf(w, "Trial balance as of %s\n", tb.AsOfDate.Format("2006-01-02"))
	for _, row := range tb.Rows {
		fmt.Fprintf(w, "%-6s %-24s %14s %14s\n", row.Code, row.Name, row.Debit.StringFixed(2), row.Credit.StringFixed(2))
	}
	fmt.Fprintf(w, "%-31s %14s %14s\n", "Total", tb.TotalDebit.StringFixed(2), tb.TotalCredit.StringFixed(2))
	if !tb.IsBalanced {
		fmt.Fprintln(w, "WARNING: trial balance is out of balance")
	}
}
