// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package filter

// The vendor configs below carry over the display rules of the original PHP
// menu site verbatim, including the duplicate entries in some priority lists.
// Duplicates are harmless: the first index wins.

// Sodexo is the filter configuration for the Hoch-Shanahan hall.
var Sodexo = Config{
	Hidden: []string{
		"salad bar",
		"deli bar",
		"hot cereal",
		"sub connection",
		"deli bar hmc",
		"deli",
		"have a great day",
		"have a great day!",
		"rice",
		"potatoes",
		"sauces",
		"action-made to order",
	},
	Ordered: []string{
		"exhibition",
		"entree",
		"entrees",
		"dim sum",
		"entrees",
		"entree",
		"chicken entree",
		"beef entree",
		"fish/seafood entree",
		"pork",
		"action",
		"creations",
		"creations lto's",
		"breakfast grill",
		"chef's corner lto's",
		"chef's corner",
		"international",
		"oven",
		"taco bar",
		"breakfast",
		"grill breakfast",
		"grill",
		"the grill dinner",
		"vegetarian entrees",
		"special salad station",
		"veggie valley",
		"pasta/noodles",
		"pizza",
		"simple servings",
		"vegetables",
		"miscellaneous",
		"soups",
		"soup bar",
		"specialty salads",
		"hmc special salad",
		"salad",
		"hmc salad",
		"stg",
		"dessert",
		"desserts",
		"fruit bar",
		"bakery",
		"salad bar yogurt",
	},
	Truncated: map[string]int{
		"breakfast grill":   5,
		"salad bar":         -1,
		"grill":             3,
		"omelet bar":        -1,
		"breakfast":         12,
		"breakfast @home":   3,
		"breakfast options": -1,
		"international":     6,
		"burger shack":      -1,
	},
	Combined: map[string][]string{
		"Special Salad Station": {
			"hmc salad",
			"special hot station salad north",
			"special bar salad-s",
			"special hot station salad south",
			"special station salad north",
			"special station salad south",
		},
		"Miscellaneous":   {"misc", "-"},
		"Soups":           {"stew", "stews", "soup"},
		"Breakfast Grill": {"breakfast grill", "grill breakfast"},
		"The Grill Dinner": {"the grill dinner"},
		"Entree":          {"entree", "entrees"},
	},
}

// BonAppetit is the filter configuration for Collins, Malott and McConnell.
var BonAppetit = Config{
	Hidden: []string{
		"breakfast toppings",
		"breads, bagels and spreads",
		"cold cereals",
		"cold cereal",
		"fruits and yogurts",
		"beverage",
		"beverages",
		"build your own sandwich",
		"cereal",
		"toppings & condiments",
		"deli bar",
	},
	Ordered: []string{
		"chef's table",
		"main plate",
		"breakfast",
		"breakfast @home",
		"@home",
		"@ home",
		"breakfast options",
		"expo",
		"global",
		"options",
		"expo - mongolian",
		"expo - little italy",
		"grill",
		"pasta - express",
		"ovens",
		"collins late night snack",
		"ovens",
		"vegan",
		"vegan salads",
		"vegan - hummus & pita",
		"sweets",
		"stock pot",
		"stocks",
	},
	Truncated: map[string]int{
		"breakfast grill":          5,
		"salad bar":                -1,
		"grill":                    3,
		"omelet bar":               -1,
		"breakfast":                12,
		"breakfast @home":          3,
		"breakfast options":        5,
		"juice and smoothie bar":   -1,
		"expo - mongolian":         -1,
		"expo - little italy":      3,
		"chef's table - pasta bar": -1,
		"chef's table - taco bar":  -1,
	},
	Combined: map[string][]string{
		"grill special": {"grill"},
		"sweets":        {"sweets", "chocolate chip cookies"},
		"main plate":    {"main plate", "main plate in balance"},
		"ovens":         {"ovens", "ovens2"},
	},
}

// Pomona is the filter configuration for Frank, Frary and Oldenborg.
var Pomona = Config{
	Hidden: nil,
	Ordered: []string{
		"entree",
		"expo",
		"grill",
		"mainline",
		"starch",
		"pizza",
		"allergen friendly station",
		"salad",
		"salad bar",
		"vegetable",
		"vegan/veggie",
		"soup",
		"deli-salad",
		"dessert",
	},
	Truncated: map[string]int{
		"breakfast grill": 5,
	},
	Combined: map[string][]string{
		"Grill": {"grill", "grill station"},
		"Soup":  {"soup", "soup station", "soups"},
		"Expo":  {"expo", "expo station"},
	},
}
