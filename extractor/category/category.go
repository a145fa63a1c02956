// Package category classifies merchant text into a fixed category set via
// ordered keyword matching.
package category

import (
	"strings"

	"github.com/spf13/viper"
)

type Category string

const (
	Dining        Category = "Dining"
	Groceries     Category = "Groceries"
	Fuel          Category = "Fuel"
	Transport     Category = "Transport"
	Entertainment Category = "Entertainment"
	Shopping      Category = "Shopping"
	Travel        Category = "Travel"
	Healthcare    Category = "Healthcare"
	Utilities     Category = "Utilities"
	Education     Category = "Education"
	Other         Category = "Other"
)

// Rule maps a category to the keywords matched case-insensitively as
// substrings of the merchant text.
type Rule struct {
	Category Category
	Keywords []string
}

// DefaultRules returns the built-in keyword table. Keyword sets are not
// mutually exclusive, so table order decides ties; the order below is fixed.
func DefaultRules() []Rule {
	return []Rule{
		{Dining, []string{"restaurant", "cafe", "caffe", "coffee", "starbucks", "costa", "mcdonald", "kfc", "burger", "pizza", "subway", "bakery", "grill", "food", "dining", "talabat", "zomato", "deliveroo"}},
		{Groceries, []string{"carrefour", "lulu", "spinneys", "waitrose", "choithram", "union coop", "aswaaq", "hypermarket", "supermarket", "grocery", "mini mart"}},
		{Fuel, []string{"adnoc", "enoc", "eppco", "emarat", "petrol", "fuel"}},
		{Transport, []string{"careem", "uber", "salik", "taxi", "metro", "parking", "limousine"}},
		{Entertainment, []string{"cinema", "vox", "netflix", "spotify", "playstation", "arcade", "theme park", "leisure"}},
		{Shopping, []string{"amazon", "noon", "namshi", "shein", "ikea", "sharaf dg", "centrepoint", "mall of", "city centre", "department store"}},
		{Travel, []string{"etihad", "flydubai", "air arabia", "airways", "airline", "hotel", "booking.com", "agoda", "expedia", "airbnb"}},
		{Healthcare, []string{"pharmacy", "clinic", "hospital", "medical", "aster", "medcare", "dental"}},
		{Utilities, []string{"dewa", "sewa", "addc", "etisalat", "telecom", "recharge", "internet"}},
		{Education, []string{"school", "university", "college", "academy", "nursery", "tuition"}},
	}
}

// FromConfig reads keyword overrides from the "categories" config key, in the
// same shape as the embedded default config. Returns DefaultRules when no
// override is configured.
func FromConfig() []Rule {
	raw, ok := viper.Get("categories").([]interface{})
	if !ok || len(raw) == 0 {
		return DefaultRules()
	}

	rules := []Rule{}
	for _, entry := range raw {
		entryMap, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := entryMap["name"].(string)
		if name == "" {
			continue
		}
		rule := Rule{Category: Category(name)}
		if keywords, ok := entryMap["keywords"].([]interface{}); ok {
			for _, kw := range keywords {
				if s, ok := kw.(string); ok {
					rule.Keywords = append(rule.Keywords, strings.ToLower(s))
				}
			}
		}
		rules = append(rules, rule)
	}
	if len(rules) == 0 {
		return DefaultRules()
	}
	return rules
}

// Classifier categorizes merchant strings against an ordered rule table.
type Classifier struct {
	rules []Rule
}

func NewClassifier(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Categorize is total: every merchant string maps to exactly one category,
// with Other as the catch-all.
func (c *Classifier) Categorize(merchant string) Category {
	normalized := strings.ToLower(merchant)
	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(normalized, keyword) {
				return rule.Category
			}
		}
	}
	return Other
}

// Categorize classifies merchant text using the default rule table.
func Categorize(merchant string) Category {
	return NewClassifier(DefaultRules()).Categorize(merchant)
}
