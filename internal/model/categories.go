package model

// Suggested transaction categories surfaced by the dashboard's entry forms.
// Users may type anything; these only seed the autocomplete lists.
var (
	IncomeCategories = []string{
		"Sales",
		"Services",
		"Consulting",
		"Subscriptions",
		"Interest",
		"Refunds",
		"Other Income",
	}

	ExpenseCategories = []string{
		"Rent",
		"Utilities",
		"Payroll",
		"Office Supplies",
		"Software",
		"Marketing",
		"Travel",
		"Insurance",
		"Taxes",
		"Bank Fees",
		"Other Expense",
	}
)
