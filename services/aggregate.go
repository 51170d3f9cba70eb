package services

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// groupTotalLabel is the description carried by synthetic per-group total
// rows.
const groupTotalLabel = "Group Total"

// noCodeSentinel sorts groups without any real cost code after every group
// that has one.
const noCodeSentinel = "999999"

// SummaryRow is either one aggregated cost code within a group or a
// synthetic total row (cost code "" and the Group Total description).
// Measures is index-aligned with the variant's NumericColumns.
type SummaryRow struct {
	CostCode    string
	Description string
	Measures    []decimal.Decimal
}

// SummaryGroup holds one group's aggregated rows in first-seen cost-code
// order, plus the group's total row.
type SummaryGroup struct {
	Name  string
	Rows  []SummaryRow
	Total SummaryRow
}

// MinCostCode returns the smallest non-empty cost code in the group, or the
// sentinel when the group has none. Display order is ascending on this key.
func (g SummaryGroup) MinCostCode() string {
	min := ""
	for _, r := range g.Rows {
		if r.CostCode == "" {
			continue
		}
		if min == "" || r.CostCode < min {
			min = r.CostCode
		}
	}
	if min == "" {
		return noCodeSentinel
	}
	return min
}

// Summary is the aggregated cost table: groups in first-seen order and the
// grand total (the sum of all group totals), computed once and reused.
type Summary struct {
	Groups     []SummaryGroup
	GrandTotal []decimal.Decimal
}

// Summarize rolls normalized rows up per group and cost code. Within a
// group, each distinct code gets one row whose description comes from the
// first occurrence and whose measures are exact decimal sums; the group
// total sums the entire group. By associativity the per-code rows reconcile
// with the group total exactly.
func Summarize(rows []NormalizedRow, measureCount int) *Summary {
	var order []string
	byGroup := make(map[string][]NormalizedRow)
	for _, r := range rows {
		if _, seen := byGroup[r.GroupName]; !seen {
			order = append(order, r.GroupName)
		}
		byGroup[r.GroupName] = append(byGroup[r.GroupName], r)
	}

	s := &Summary{GrandTotal: zeroMeasures(measureCount)}
	for _, name := range order {
		group := summarizeGroup(name, byGroup[name], measureCount)
		s.GrandTotal = addMeasures(s.GrandTotal, group.Total.Measures)
		s.Groups = append(s.Groups, group)
	}

	logrus.WithFields(logrus.Fields{
		"groups": len(s.Groups),
		"rows":   len(rows),
	}).Info("summary aggregated")
	return s
}

func summarizeGroup(name string, rows []NormalizedRow, measureCount int) SummaryGroup {
	g := SummaryGroup{
		Name: name,
		Total: SummaryRow{
			Description: groupTotalLabel,
			Measures:    zeroMeasures(measureCount),
		},
	}

	index := make(map[string]int)
	for _, r := range rows {
		i, seen := index[r.CostCode]
		if !seen {
			i = len(g.Rows)
			index[r.CostCode] = i
			g.Rows = append(g.Rows, SummaryRow{
				CostCode:    r.CostCode,
				Description: r.Description,
				Measures:    zeroMeasures(measureCount),
			})
		}
		g.Rows[i].Measures = addMeasures(g.Rows[i].Measures, r.Measures)
		g.Total.Measures = addMeasures(g.Total.Measures, r.Measures)
	}
	return g
}

func zeroMeasures(n int) []decimal.Decimal {
	m := make([]decimal.Decimal, n)
	for i := range m {
		m[i] = decimal.Zero
	}
	return m
}

func addMeasures(dst, src []decimal.Decimal) []decimal.Decimal {
	for i := range dst {
		if i < len(src) {
			dst[i] = dst[i].Add(src[i])
		}
	}
	return dst
}

// DetailsTotal sums the single measure across detail rows; used for the
// trailing total row and the summary line of the details report.
func DetailsTotal(rows []NormalizedRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		if len(r.Measures) > 0 {
			total = total.Add(r.Measures[0])
		}
	}
	return total
}
