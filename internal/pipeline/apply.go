package pipeline

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/Sh8ubham/ai-memory-intern/internal/audit"
	"github.com/Sh8ubham/ai-memory-intern/internal/confidence"
	"github.com/Sh8ubham/ai-memory-intern/internal/model"
)

// Applier deterministically applies recalled patterns to an invoice.
type Applier struct{}

// NewApplier creates an apply stage.
func NewApplier() *Applier {
	return &Applier{}
}

// Pattern actions recognized by the apply and learn catalogs.
const (
	ActionExtractFromRawText   = "extract_from_rawText"
	ActionRecalculateFromGross = "recalculate_from_gross"
	ActionMatchBySKU           = "match_by_sku"
	ActionMapToFreight         = "map_to_FREIGHT"
	ActionExtractSkonto        = "extract_skonto"
)

// FreightSKU is the sentinel SKU assigned to unlabeled transport line items.
const FreightSKU = "FREIGHT"

// dateSuffix matches a DD.MM.YYYY date following a label and a colon.
const dateSuffix = `:\s*(\d{2})\.(\d{2})\.(\d{4})`

var (
	currencyRe = regexp.MustCompile(`(?i)Currency:\s*([A-Z]{3})`)
	skontoRe   = regexp.MustCompile(`(?i)(\d+)%\s*Skonto.*?(\d+)\s*days?`)
	freightRe  = regexp.MustCompile(`(?i)seefracht|shipping|transport`)
)

// applyRule is one correction rule: a match on the pattern's key plus a
// handler that edits the corrected invoice. Rules are independent and
// non-exclusive; more than one may fire for a single pattern.
type applyRule struct {
	matches     func(p model.VendorPattern) bool
	apply       func(corrected *model.Invoice, p model.VendorPattern, rawText string) (string, bool)
	auditDetail string
}

var applyCatalog = []applyRule{
	{
		// Service-date extraction: the pattern text is the label that
		// precedes a DD.MM.YYYY date in the raw text.
		matches: func(p model.VendorPattern) bool {
			return p.Field == "serviceDate"
		},
		apply: func(corrected *model.Invoice, p model.VendorPattern, rawText string) (string, bool) {
			re, err := regexp.Compile(regexp.QuoteMeta(p.Pattern) + dateSuffix)
			if err != nil {
				return "", false
			}
			m := re.FindStringSubmatch(rawText)
			if m == nil {
				return "", false
			}
			iso := fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])
			corrected.Fields.ServiceDate = &iso
			return fmt.Sprintf("Set serviceDate from %s: %s", p.Pattern, iso), true
		},
		auditDetail: "Applied serviceDate correction",
	},
	{
		// VAT-inclusive recompute: the gross total already contains tax, so
		// net and tax are rederived from it. Gross is never altered.
		matches: func(p model.VendorPattern) bool {
			return p.Pattern == "MwSt. inkl." || p.Pattern == "VAT included"
		},
		apply: func(corrected *model.Invoice, _ model.VendorPattern, rawText string) (string, bool) {
			lower := strings.ToLower(rawText)
			if !strings.Contains(lower, "mwst. inkl.") && !strings.Contains(lower, "vat already included") {
				return "", false
			}
			net := corrected.Fields.GrossTotal / (1 + corrected.Fields.TaxRate)
			tax := corrected.Fields.GrossTotal - net
			corrected.Fields.NetTotal = round2(net)
			corrected.Fields.TaxTotal = round2(tax)
			return "Recalculated tax - VAT was included in total", true
		},
		auditDetail: "Applied VAT recalculation",
	},
	{
		// Currency extraction: only fills a missing currency, never
		// overwrites one.
		matches: func(p model.VendorPattern) bool {
			return p.Field == "currency"
		},
		apply: func(corrected *model.Invoice, _ model.VendorPattern, rawText string) (string, bool) {
			if corrected.Fields.Currency != nil && *corrected.Fields.Currency != "" {
				return "", false
			}
			m := currencyRe.FindStringSubmatch(rawText)
			if m == nil {
				return "", false
			}
			corrected.Fields.Currency = &m[1]
			return fmt.Sprintf("Extracted currency from rawText: %s", m[1]), true
		},
		auditDetail: "Applied currency correction",
	},
	{
		// Discount-term capture: informational only, no invoice mutation.
		matches: func(p model.VendorPattern) bool {
			return strings.Contains(p.Pattern, "Skonto")
		},
		apply: func(_ *model.Invoice, _ model.VendorPattern, rawText string) (string, bool) {
			m := skontoRe.FindStringSubmatch(rawText)
			if m == nil {
				return "", false
			}
			return fmt.Sprintf("Discount terms: %s%% within %s days", m[1], m[2]), true
		},
		auditDetail: "Captured discount terms",
	},
	{
		// Freight SKU mapping: label the first line item when the raw text
		// mentions transport and the item has no SKU yet.
		matches: func(p model.VendorPattern) bool {
			return p.Field == "lineItems[0].sku" && p.Action == ActionMapToFreight
		},
		apply: func(corrected *model.Invoice, _ model.VendorPattern, rawText string) (string, bool) {
			if !freightRe.MatchString(rawText) {
				return "", false
			}
			if len(corrected.Fields.LineItems) == 0 {
				return "", false
			}
			first := &corrected.Fields.LineItems[0]
			if first.SKU != nil && *first.SKU != "" {
				return "", false
			}
			sku := FreightSKU
			first.SKU = &sku
			return fmt.Sprintf("Mapped transport description to SKU: %s", FreightSKU), true
		},
		auditDetail: "Applied freight SKU mapping",
	},
}

// ApplyCorrections applies the given patterns, in order, to a deep copy of
// the invoice. Patterns below the auto-apply threshold are skipped and
// logged. A pattern whose field/action matches no catalog rule, or whose
// trigger finds nothing in the raw text, is a silent no-op. The original
// invoice is never mutated.
func (a *Applier) ApplyCorrections(invoice model.Invoice, patterns []model.VendorPattern, rec *audit.Recorder) (model.Invoice, []string) {
	corrected := invoice.Clone()
	corrections := []string{}

	for _, pattern := range patterns {
		if !confidence.ShouldAutoApply(pattern.Confidence) {
			rec.Log(model.StageApply, fmt.Sprintf("Skipped %s - low confidence (%v)", pattern.Pattern, pattern.Confidence))
			continue
		}

		for _, rule := range applyCatalog {
			if !rule.matches(pattern) {
				continue
			}
			if description, ok := rule.apply(&corrected, pattern, invoice.RawText); ok {
				corrections = append(corrections, description)
				rec.Log(model.StageApply, rule.auditDetail)
			}
		}
	}

	return corrected, corrections
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
