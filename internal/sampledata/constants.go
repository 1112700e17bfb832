package sampledata

// behavior is a generated feature key with its display text.
type behavior struct {
	key, title, description string
}

var behaviors = []behavior{
	{"empathy_statements", "Empathy Statements", "Acknowledges the customer's frustration before offering options."},
	{"benefit_recap", "Benefit Recap", "Restates the plan benefits the customer already uses."},
	{"open_questions", "Open Questions", "Asks why the customer is leaving instead of assuming."},
	{"price_anchoring", "Price Anchoring", "Frames the retention offer against the list price."},
	{"ownership_language", "Ownership Language", "Uses first-person commitments such as \"I will fix this\"."},
	{"silence_tolerance", "Silence Tolerance", "Lets pauses run instead of filling them."},
	{"competitor_mention", "Competitor Mention", "Brings up competitor pricing unprompted."},
	{"hold_time", "Long Hold Time", "Places the customer on hold for more than a minute."},
	{"recap_close", "Recap Close", "Summarizes the agreed change before ending the call."},
	{"name_usage", "Name Usage", "Addresses the customer by name."},
}

var firstNames = []string{
	"Ada", "Bruno", "Chioma", "Dmitri", "Elena", "Farid", "Grace", "Hiro",
	"Ines", "Jonas", "Keiko", "Luis", "Maya", "Nikhil", "Olga", "Pavel",
}

var lastNames = []string{
	"Okafor", "Lindqvist", "Moreau", "Tanaka", "Silva", "Novak", "Haddad", "Reyes",
}

// Confidence labels as the pipelines write them.
var (
	metaConfidence   = []string{"Meta High", "Meta Medium", "Meta Low"}
	effectConfidence = []string{"High", "Medium", "Low"}
)

var quoteCategories = []string{"strong", "weak"}
