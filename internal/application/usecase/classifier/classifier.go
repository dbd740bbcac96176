// Package classifier maps free-text transaction titles onto the fixed
// category set by keyword matching.
package classifier

import (
	"strings"

	"github.com/pocketwatch/backend/internal/domain/entity"
)

// categoryKeywords associates each category with the substrings that select
// it. Evaluation order is the declaration order of the category set: the
// first category with a matching keyword wins, regardless of keyword length
// or specificity.
var categoryKeywords = map[entity.Category][]string{
	entity.CategoryFood: {
		"starbucks", "mcdonalds", "subway", "chipotle", "pizza", "burger",
		"restaurant", "cafe", "coffee", "lunch", "dinner", "breakfast",
		"groceries", "walmart", "costco", "trader", "whole foods",
		"doordash", "ubereats", "grubhub",
	},
	entity.CategoryUtilities: {
		"shell", "gas", "electric", "water", "internet", "phone", "verizon",
		"att", "t-mobile", "comcast", "xfinity", "pg&e", "utility", "bill",
	},
	entity.CategoryTransport: {
		"uber", "lyft", "taxi", "bus", "metro", "train", "gas station",
		"chevron", "exxon", "mobil", "parking", "toll",
	},
	entity.CategoryEntertainment: {
		"netflix", "spotify", "hulu", "disney", "hbo", "amazon prime",
		"movie", "concert", "game", "steam", "playstation", "xbox", "nintendo",
	},
	entity.CategoryShopping: {
		"amazon", "target", "best buy", "apple", "nike", "adidas", "zara",
		"h&m", "clothes", "shoes", "electronics",
	},
	entity.CategoryHealth: {
		"pharmacy", "cvs", "walgreens", "doctor", "hospital", "gym",
		"fitness", "medicine", "dental", "vision",
	},
	entity.CategorySubscriptions: {
		"subscription", "membership", "monthly", "annual", "premium",
	},
	entity.CategoryIncome: {
		"salary", "paycheck", "bonus", "freelance", "income",
		"payment received", "deposit",
	},
	entity.CategoryOther: {},
}

// Suggest returns the first category whose keyword list contains a substring
// of the lower-cased title, falling back to Other. It has no side effects.
func Suggest(title string) entity.Category {
	lowered := strings.ToLower(title)

	for _, category := range entity.Categories() {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lowered, keyword) {
				return category
			}
		}
	}

	return entity.CategoryOther
}
