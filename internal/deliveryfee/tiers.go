package deliveryfee

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/urbanexpress/storefront/pkg/enums"
)

// FallbackFee applies when no tier matches the order total.
var FallbackFee = decimal.NewFromInt(15)

// Tier maps an inclusive order-total range to a fee. A nil or zero
// MaxAmount is unbounded.
type Tier struct {
	MinAmount decimal.Decimal  `json:"minAmount"`
	MaxAmount *decimal.Decimal `json:"maxAmount"`
	Fee       decimal.Decimal  `json:"fee"`
}

// Unbounded reports whether the tier has no upper limit.
func (t Tier) Unbounded() bool {
	return t.MaxAmount == nil || t.MaxAmount.IsZero()
}

// Contains reports whether total falls within the tier.
func (t Tier) Contains(total decimal.Decimal) bool {
	if total.LessThan(t.MinAmount) {
		return false
	}
	return t.Unbounded() || total.LessThanOrEqual(*t.MaxAmount)
}

func bound(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func DefaultTiers() []Tier {
	return []Tier{
		{MinAmount: decimal.NewFromInt(0), MaxAmount: bound("99.99"), Fee: decimal.NewFromInt(20)},
		{MinAmount: decimal.NewFromInt(100), MaxAmount: bound("199.99"), Fee: decimal.NewFromInt(15)},
		{MinAmount: decimal.NewFromInt(200), MaxAmount: bound("299.99"), Fee: decimal.NewFromInt(10)},
		{MinAmount: decimal.NewFromInt(300), MaxAmount: bound("399.99"), Fee: decimal.NewFromInt(10)},
		{MinAmount: decimal.NewFromInt(400), MaxAmount: bound("499.99"), Fee: decimal.NewFromInt(10)},
		{MinAmount: decimal.NewFromInt(500), Fee: decimal.Zero},
	}
}

// SortTiers orders tiers ascending by MinAmount, keeping ties stable.
func SortTiers(tiers []Tier) {
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].MinAmount.LessThan(tiers[j].MinAmount)
	})
}

func findTier(total decimal.Decimal, tiers []Tier) (Tier, bool) {
	for _, t := range tiers {
		if t.Contains(total) {
			return t, true
		}
	}
	return Tier{}, false
}

// CalculateDeliveryFee returns the fee of the first tier containing total,
// or FallbackFee when none does.
func CalculateDeliveryFee(total decimal.Decimal, tiers []Tier) decimal.Decimal {
	if tier, ok := findTier(total, tiers); ok {
		return tier.Fee
	}
	return FallbackFee
}

func currency(lang enums.Language) string {
	if lang.IsArabic() {
		return "ريال"
	}
	return "SAR"
}

// DeliveryFeeDescription renders the fee for display, with an upsell hint
// when the next tier is cheaper.
func DeliveryFeeDescription(total decimal.Decimal, tiers []Tier, lang enums.Language) string {
	if len(tiers) == 0 {
		return fmt.Sprintf("%s %s", FallbackFee.StringFixed(2), currency(lang))
	}

	fee := CalculateDeliveryFee(total, tiers)
	if fee.IsZero() {
		if lang.IsArabic() {
			return "توصيل مجاني"
		}
		return "Free Delivery"
	}

	feeText := fmt.Sprintf("%s %s", fee.StringFixed(2), currency(lang))
	tier, ok := findTier(total, tiers)
	if !ok || tier.Unbounded() {
		return feeText
	}
	for _, next := range tiers {
		if !next.MinAmount.GreaterThan(*tier.MaxAmount) {
			continue
		}
		if !next.Fee.LessThan(fee) {
			break
		}
		needed := next.MinAmount.Sub(total).StringFixed(2)
		savings := fee.Sub(next.Fee).StringFixed(2)
		if lang.IsArabic() {
			return fmt.Sprintf("%s - أضف %s ريال لتوفير %s ريال", feeText, needed, savings)
		}
		return fmt.Sprintf("%s - Add %s SAR to save %s SAR", feeText, needed, savings)
	}
	return feeText
}
