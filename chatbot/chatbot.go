// Package chatbot answers FAQ-style questions with a keyword lookup table.
// First matching rule wins; rule order matters (e.g. "table" must be
// checked before generic greetings).
package chatbot

import "strings"

type rule struct {
	keywords []string
	reply    string
}

var rules = []rule{
	{
		keywords: []string{"menu", "dish", "food"},
		reply:    "You can check our full menu in the Menu section! We have delicious starters, mains, desserts, and drinks.",
	},
	{
		keywords: []string{"special", "today"},
		reply:    "Today's specials include Truffle Pasta, Seafood Platter, and Chocolate Soufflé! Check them out on our homepage.",
	},
	{
		keywords: []string{"book", "reservation", "table"},
		reply:    "You can book a table through our Contact page or call us directly at (123) 456-7890. We'd love to have you!",
	},
	{
		keywords: []string{"hour", "open", "time"},
		reply:    "We're open Monday-Thursday: 11am-10pm, Friday-Saturday: 11am-11pm, and Sunday: 10am-9pm.",
	},
	{
		keywords: []string{"cart", "order"},
		reply:    "Your cart is ready! Click the cart icon in the navbar to view and checkout.",
	},
	{
		keywords: []string{"thank"},
		reply:    "You're welcome! Anything else I can help with?",
	},
	{
		keywords: []string{"hello", "hi", "hey"},
		reply:    "Hello! How can I assist you today?",
	},
	{
		keywords: []string{"admin", "manager"},
		reply:    "For admin assistance, please contact our management team directly.",
	},
}

const fallback = "I'm not sure about that. Would you like to speak with our staff? You can also check our FAQ or Contact page!"

// Respond returns the canned reply for the first rule whose keyword occurs
// in the message, or the fallback when nothing matches.
func Respond(message string) string {
	lower := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.reply
			}
		}
	}
	return fallback
}
