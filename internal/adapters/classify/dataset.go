package classify

// defaultTrainingSet is the seeded dataset covering the supported
// categories: Billing, Technical and Account.
var defaultTrainingSet = []Sample{
	{"I was charged twice for my subscription", "Billing"},
	{"Why is my bill higher this month", "Billing"},
	{"I need a refund for the overcharge", "Billing"},
	{"Can you explain the charges on my invoice", "Billing"},
	{"Payment failed but money was deducted", "Billing"},
	{"I want to cancel and get my money back", "Billing"},

	{"The application keeps crashing", "Technical"},
	{"I cannot connect to the server", "Technical"},
	{"Error message when trying to upload files", "Technical"},
	{"The system is running very slow", "Technical"},
	{"Feature X is not working as expected", "Technical"},
	{"How do I configure the API settings", "Technical"},

	{"I forgot my password and cannot reset it", "Account"},
	{"How do I change my email address", "Account"},
	{"I want to delete my account", "Account"},
	{"Cannot update my profile information", "Account"},
	{"How do I enable two-factor authentication", "Account"},
	{"I need to change my subscription plan", "Account"},
}
