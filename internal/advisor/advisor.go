// Package advisorはパーツ相談チャットの返答生成。
// 外部AIは使わず、キーワードマッチで定番パーツを薦める。
package advisor

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Part struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	Category      string
	UseCases      []string
	Compatibility []string
}

var partsDatabase = []Part{
	{
		Name:          "Shimano XT M8100 Disc Brakes",
		Description:   "High-performance hydraulic disc brakes with excellent modulation and stopping power",
		Price:         decimal.NewFromFloat(299.99),
		Category:      "brakes",
		UseCases:      []string{"trail", "enduro", "downhill"},
		Compatibility: []string{"all mountain bikes", "modern disc brake mounts"},
	},
	{
		Name:          "RockShox Pike Ultimate Fork",
		Description:   "Premium trail fork with sophisticated damping and plush feel",
		Price:         decimal.NewFromFloat(899.99),
		Category:      "suspension",
		UseCases:      []string{"trail", "all-mountain", "enduro"},
		Compatibility: []string{"29er", "27.5", "boost spacing"},
	},
	{
		Name:          "Maxxis Minion DHF Tire",
		Description:   "Aggressive trail tire with excellent cornering grip",
		Price:         decimal.NewFromFloat(79.99),
		Category:      "tires",
		UseCases:      []string{"trail", "enduro", "downhill", "all-mountain"},
		Compatibility: []string{"29er", "27.5", "tubeless ready"},
	},
	{
		Name:          "SRAM GX Eagle Drivetrain",
		Description:   "Reliable 12-speed drivetrain with wide gear range",
		Price:         decimal.NewFromFloat(499.99),
		Category:      "drivetrain",
		UseCases:      []string{"trail", "cross-country", "all-mountain"},
		Compatibility: []string{"12-speed", "SRAM XD driver"},
	},
	{
		Name:          "Race Face Next R Carbon Handlebar",
		Description:   "Lightweight carbon fiber handlebar with optimal trail feel",
		Price:         decimal.NewFromFloat(169.99),
		Category:      "cockpit",
		UseCases:      []string{"trail", "cross-country", "enduro"},
		Compatibility: []string{"31.8mm clamp", "35mm clamp"},
	},
}

var categoryKeywords = map[string][]string{
	"brakes":     {"brake", "stopping", "braking"},
	"suspension": {"fork", "suspension", "shock"},
	"tires":      {"tire", "tyre", "grip", "traction"},
	"drivetrain": {"drivetrain", "gear", "shifting", "cassette", "derailleur"},
	"cockpit":    {"handlebar", "stem", "grips"},
}

// mapの走査順に依らないよう判定順は固定
var categoryOrder = []string{"brakes", "suspension", "tires", "drivetrain", "cockpit"}

var styleKeywords = map[string][]string{
	"trail":         {"trail", "all-mountain"},
	"enduro":        {"enduro", "aggressive"},
	"downhill":      {"downhill", "dh"},
	"cross-country": {"cross-country", "xc", "climbing"},
}

var styleOrder = []string{"trail", "enduro", "downhill", "cross-country"}

// GenerateResponseは1発言に対する返答を作る。
func GenerateResponse(input string) string {
	in := strings.ToLower(input)

	// あいさつ
	if containsAny(in, "hello", "hi", "hey") {
		return "Hello! I'm here to help you find the perfect bike parts. What type of riding do you do, and what parts are you looking for?"
	}

	// 予算の相談
	if containsAny(in, "budget", "cheap", "expensive") {
		return "I can help you find parts in your budget. Could you specify your price range and what type of part you're looking for?"
	}

	category := matchKeyword(in, categoryOrder, categoryKeywords)
	style := matchKeyword(in, styleOrder, styleKeywords)

	if category != "" && style != "" {
		if rec, ok := firstMatch(category, style); ok {
			return fmt.Sprintf("For %s riding, I recommend the %s ($%s). %s. Would you like more details about this or other options?",
				style, rec.Name, rec.Price.StringFixed(2), rec.Description)
		}
	}

	if category != "" {
		if rec, ok := firstInCategory(category); ok {
			return fmt.Sprintf("I recommend checking out the %s. It's a great option priced at $%s. %s. What type of riding will you be doing? This will help me make a more specific recommendation.",
				rec.Name, rec.Price.StringFixed(2), rec.Description)
		}
	}

	if style != "" {
		return fmt.Sprintf("For %s riding, there are several parts that could enhance your experience. What specific component are you looking to upgrade? (e.g., brakes, suspension, tires)", style)
	}

	return "I can help you find the right parts for your bike. Could you tell me more about what type of riding you do and what specific parts you're interested in? For example, are you looking for brakes, suspension, tires, or something else?"
}

// Recommendationsはカテゴリ×乗り方で候補を返す。
func Recommendations(category string, ridingStyle string) []Part {
	c := strings.ToLower(category)
	s := strings.ToLower(ridingStyle)

	out := []Part{}
	for _, p := range partsDatabase {
		if p.Category != c {
			continue
		}
		for _, use := range p.UseCases {
			if strings.Contains(use, s) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func containsAny(in string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(in, w) {
			return true
		}
	}
	return false
}

func matchKeyword(in string, order []string, table map[string][]string) string {
	for _, key := range order {
		if containsAny(in, table[key]...) {
			return key
		}
	}
	return ""
}

func firstMatch(category string, style string) (Part, bool) {
	recs := Recommendations(category, style)
	if len(recs) == 0 {
		return Part{}, false
	}
	return recs[0], true
}

func firstInCategory(category string) (Part, bool) {
	for _, p := range partsDatabase {
		if p.Category == category {
			return p, true
		}
	}
	return Part{}, false
}
