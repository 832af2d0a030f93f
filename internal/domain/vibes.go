package domain

import "strings"

// VibeMap maps abstract vibe categories to concrete place-type keywords.
var VibeMap = map[string][]string{
	"quiet":     {"library", "bookstore", "place_of_worship", "temple", "museum", "art_centre", "gallery", "yoga", "garden"},
	"nature":    {"park", "garden", "nature_reserve", "lake", "viewpoint", "forest"},
	"active":    {"gym", "fitness_centre", "stadium", "playground", "dance", "climbing"},
	"foodie":    {"restaurant", "cafe", "fast_food", "ice_cream", "bakery", "pub", "bar"},
	"nightlife": {"bar", "pub", "nightclub", "cinema", "theatre"},
}

// PresetIntents maps exact user phrases (emoji included, case-sensitive)
// to an intent key. Preset matching always wins over similarity scoring.
var PresetIntents = map[string]string{
	"🍔 Find Food":     "foodie",
	"I am hungry 🍔":   "foodie",
	"☕ Need Coffee":   "tired",
	"I need coffee ☕": "tired",
	"Quiet place 🤫":   "quiet",
	"🤫 Quiet Spot":    "quiet",
	"Nature vibes 🍃":  "nature",
	"Party time 🎉":    "nightlife",
	"🎉 Party":         "nightlife",
	"😢 Cheer me up":   "sad",
	"I am sad 😢":      "sad",
}

// IntentResponse pairs the search term an intent resolves to with the
// bot reply shown alongside the results.
type IntentResponse struct {
	Term  string
	Reply string
}

// IntentResponses covers every intent key reachable from PresetIntents.
// "sad" and "tired" are shortcuts that never appear in VibeMap.
var IntentResponses = map[string]IntentResponse{
	"active":    {Term: "gym", Reply: "Get moving! Here are some gyms 💪"},
	"foodie":    {Term: "restaurant", Reply: "Here's some food nearby 🍔"},
	"nature":    {Term: "park", Reply: "Here is some fresh air 🍃"},
	"quiet":     {Term: "library", Reply: "Shh... quiet zones found 🤫"},
	"nightlife": {Term: "bar", Reply: "Party time! 🎉"},
	"sad":       {Term: "ice_cream", Reply: "Sending virtual hugs & ice cream ❤️"},
	"tired":     {Term: "cafe", Reply: "Emergency caffeine detected ☕"},
}

// Pattern expands a known vibe key into a |-joined disjunction of its
// taxonomy keywords; any other term is used literally.
func Pattern(term string) string {
	if kws, ok := VibeMap[term]; ok {
		return strings.Join(kws, "|")
	}
	return term
}
