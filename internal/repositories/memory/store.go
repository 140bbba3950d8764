package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
)

// Store is an in-process implementation of every repository port. It backs the
// test suites and the STORE=memory mode of the server.
//
// Stored values are never mutated in place, so a transaction snapshot is a
// shallow copy of the maps.
type Store struct {
	mu sync.RWMutex

	accounts     map[string]domain.Account
	accountCodes map[string]string

	entries      map[string]domain.JournalEntry
	entryNumbers map[string]string

	invoices       map[string]domain.Invoice
	invoiceNumbers map[string]string

	customers     map[string]domain.Customer
	customerCodes map[string]string

	sequences   map[string]int
	fiscalYears map[string]domain.FiscalYear

	currencies    map[string]domain.Currency
	currencyCodes map[string]string

	bankAccounts   map[string]domain.BankAccount
	statementLines map[string]domain.BankStatementLine
}

// New returns an empty store.
func New() *Store {
	return &Store{
		accounts:       make(map[string]domain.Account),
		accountCodes:   make(map[string]string),
		entries:        make(map[string]domain.JournalEntry),
		entryNumbers:   make(map[string]string),
		invoices:       make(map[string]domain.Invoice),
		invoiceNumbers: make(map[string]string),
		customers:      make(map[string]domain.Customer),
		customerCodes:  make(map[string]string),
		sequences:      make(map[string]int),
		fiscalYears:    make(map[string]domain.FiscalYear),
		currencies:     make(map[string]domain.Currency),
		currencyCodes:  make(map[string]string),
		bankAccounts:   make(map[string]domain.BankAccount),
		statementLines: make(map[string]domain.BankStatementLine),
	}
}

// NewRepositoryProvider exposes a store through the repository ports.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:      s,
		AccountRepo:    s,
		JournalRepo:    s,
		InvoiceRepo:    s,
		CustomerRepo:   s,
		SequenceRepo:   s,
		FiscalYearRepo: s,
		CurrencyRepo:   s,
		BankRepo:       s,
	}
}

var (
	_ portsrepo.TransactionManager         = (*Store)(nil)
	_ portsrepo.AccountRepositoryFacade    = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade    = (*Store)(nil)
	_ portsrepo.InvoiceRepositoryFacade    = (*Store)(nil)
	_ portsrepo.CustomerRepositoryFacade   = (*Store)(nil)
	_ portsrepo.SequenceRepository         = (*Store)(nil)
	_ portsrepo.FiscalYearRepositoryFacade = (*Store)(nil)
	_ portsrepo.CurrencyRepositoryFacade   = (*Store)(nil)
	_ portsrepo.BankRepositoryFacade       = (*Store)(nil)
)

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// write takes the exclusive lock unless ctx already belongs to a transaction on s.
func (s *Store) write(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) read(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

type snapshot struct {
	accounts       map[string]domain.Account
	accountCodes   map[string]string
	entries        map[string]domain.JournalEntry
	entryNumbers   map[string]string
	invoices       map[string]domain.Invoice
	invoiceNumbers map[string]string
	customers      map[string]domain.Customer
	customerCodes  map[string]string
	sequences      map[string]int
	fiscalYears    map[string]domain.FiscalYear
	currencies     map[string]domain.Currency
	currencyCodes  map[string]string
	bankAccounts   map[string]domain.BankAccount
	statementLines map[string]domain.BankStatementLine
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		accounts:       copyMap(s.accounts),
		accountCodes:   copyMap(s.accountCodes),
		entries:        copyMap(s.entries),
		entryNumbers:   copyMap(s.entryNumbers),
		invoices:       copyMap(s.invoices),
		invoiceNumbers: copyMap(s.invoiceNumbers),
		customers:      copyMap(s.customers),
		customerCodes:  copyMap(s.customerCodes),
		sequences:      copyMap(s.sequences),
		fiscalYears:    copyMap(s.fiscalYears),
		currencies:     copyMap(s.currencies),
		currencyCodes:  copyMap(s.currencyCodes),
		bankAccounts:   copyMap(s.bankAccounts),
		statementLines: copyMap(s.statementLines),
	}
}

func (s *Store) restore(snap snapshot) {
	s.accounts = snap.accounts
	s.accountCodes = snap.accountCodes
	s.entries = snap.entries
	s.entryNumbers = snap.entryNumbers
	s.invoices = snap.invoices
	s.invoiceNumbers = snap.invoiceNumbers
	s.customers = snap.customers
	s.customerCodes = snap.customerCodes
	s.sequences = snap.sequences
	s.fiscalYears = snap.fiscalYears
	s.currencies = snap.currencies
	s.currencyCodes = snap.currencyCodes
	s.bankAccounts = snap.bankAccounts
	s.statementLines = snap.statementLines
}

// WithinTx runs fn holding the store's exclusive lock. Any error or panic from fn
// restores the state captured on entry. Nested calls join the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
		if err != nil {
			s.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}
