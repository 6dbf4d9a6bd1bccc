package common

const (
	AccountTypeAsset     = "asset"
	AccountTypeLiability = "liability"
	AccountTypeExpense   = "expense"
	AccountTypeRevenue   = "revenue"

	JournalTypePurchase = "purchase"
	JournalTypeSale     = "sale"
	JournalTypeTreasury = "treasury"
	JournalTypeGeneral  = "general"

	TransactionStatusDraft     = "draft"
	TransactionStatusValidated = "validated"

	FiscalYearStatusOpen   = "open"
	FiscalYearStatusClosed = "closed"

	TierTypeClient   = "client"
	TierTypeSupplier = "supplier"

	// SYSCOHADA sub-account prefixes reserved for tier accounts.
	// 411 clients (receivables), 401 fournisseurs (payables).
	TierPrefixClient   = "411"
	TierPrefixSupplier = "401"

	// CARPA trust movements post to the 467 family (comptes d'attente).
	CarpaAccountPrefix = "467"
)
