package categorization

// DefaultRules is the built-in merchant keyword table. More specific
// keywords sit above their prefixes ("UBER EATS" above "UBER") and
// matching picks the earliest rule, so order is load-bearing.
func DefaultRules() []Rule {
	return []Rule{
		{"UBER EATS", "Restaurants"},
		{"DOORDASH", "Restaurants"},
		{"GRUBHUB", "Restaurants"},
		{"STARBUCKS", "Restaurants"},
		{"MCDONALD", "Restaurants"},
		{"CHIPOTLE", "Restaurants"},
		{"CAFE", "Restaurants"},
		{"RESTAURANT", "Restaurants"},

		{"WHOLE FOODS", "Groceries"},
		{"TRADER JOE", "Groceries"},
		{"KROGER", "Groceries"},
		{"SAFEWAY", "Groceries"},
		{"ALDI", "Groceries"},
		{"COSTCO", "Groceries"},
		{"WALMART", "Groceries"},
		{"GROCERY", "Groceries"},

		{"HOME DEPOT", "Home Improvement"},
		{"LOWES", "Home Improvement"},

		{"SHELL", "Gas"},
		{"CHEVRON", "Gas"},
		{"EXXON", "Gas"},
		{"MOBIL", "Gas"},
		{"FUEL", "Gas"},

		{"UBER", "Transportation"},
		{"LYFT", "Transportation"},
		{"METRO", "Transportation"},
		{"TRANSIT", "Transportation"},
		{"PARKING", "Transportation"},
		{"AMTRAK", "Transportation"},

		{"NETFLIX", "Subscriptions"},
		{"SPOTIFY", "Subscriptions"},
		{"HULU", "Subscriptions"},
		{"DISNEY+", "Subscriptions"},

		{"AMC", "Entertainment"},
		{"CINEMA", "Entertainment"},
		{"STEAM", "Entertainment"},
		{"TICKETMASTER", "Entertainment"},

		{"COMCAST", "Utilities"},
		{"XFINITY", "Utilities"},
		{"VERIZON", "Utilities"},
		{"AT&T", "Utilities"},
		{"ELECTRIC", "Utilities"},
		{"WATER BILL", "Utilities"},

		{"CVS", "Healthcare"},
		{"WALGREENS", "Healthcare"},
		{"PHARMACY", "Healthcare"},
		{"CLINIC", "Healthcare"},
		{"DENTAL", "Healthcare"},

		{"AMAZON", "Shopping"},
		{"TARGET", "Shopping"},
		{"BEST BUY", "Shopping"},
		{"EBAY", "Shopping"},

		{"RENT", "Housing"},
		{"MORTGAGE", "Housing"},

		{"GEICO", "Insurance"},
		{"ALLSTATE", "Insurance"},
		{"STATE FARM", "Insurance"},
		{"INSURANCE", "Insurance"},

		{"TUITION", "Education"},
		{"UDEMY", "Education"},
		{"COURSERA", "Education"},

		{"DELTA", "Travel"},
		{"UNITED AIR", "Travel"},
		{"SOUTHWEST", "Travel"},
		{"AIRBNB", "Travel"},
		{"MARRIOTT", "Travel"},
		{"HOTEL", "Travel"},

		{"VANGUARD", "Investments"},
		{"FIDELITY", "Investments"},
		{"ROBINHOOD", "Investments"},
		{"SCHWAB", "Investments"},

		{"PAYROLL", "Income"},
		{"DIRECT DEPOSIT", "Income"},
		{"SALARY", "Income"},

		{"ATM WITHDRAWAL", "ATM/Cash"},
		{"ATM", "ATM/Cash"},
		{"CASH WITHDRAWAL", "ATM/Cash"},

		{"OVERDRAFT", "Fees"},
		{"SERVICE FEE", "Fees"},
		{"LATE FEE", "Fees"},
		{"MONTHLY FEE", "Fees"},

		{"SALON", "Personal Care"},
		{"BARBER", "Personal Care"},
		{"SPA", "Personal Care"},

		{"GIFT", "Gifts"},
		{"DONATION", "Charity"},
		{"RED CROSS", "Charity"},
		{"GOFUNDME", "Charity"},

		{"PETCO", "Pet Care"},
		{"PETSMART", "Pet Care"},
		{"VETERINARY", "Pet Care"},
		{"CHEWY", "Pet Care"},

		{"LAW OFFICE", "Professional Services"},
		{"ACCOUNTING", "Professional Services"},
		{"CONSULTING", "Professional Services"},

		{"IRS", "Taxes"},
		{"TAX PAYMENT", "Taxes"},
		{"FRANCHISE TAX", "Taxes"},
	}
}
