package summary

import (
	"sort"

	"kukkaro/internal/client"
)

// Fallback bucket for rows without a category.
const (
	OtherCategoryName  = "Other"
	OtherCategoryColor = "#cccccc"
)

// Slice is one category group of a breakdown.
type Slice struct {
	Name       string
	Color      string
	Icon       string
	Sum        float64
	Percentage float64
}

// Breakdown is the per-category split of a list of transactions.
type Breakdown struct {
	Total  float64
	Slices []Slice
}

// CategoryBreakdown groups rows by category name, sums each group and sorts
// the groups by sum, largest first. A zero grand total yields an empty breakdown.
func CategoryBreakdown(rows []client.Transaction) Breakdown {
	index := make(map[string]int)
	var slices []Slice
	var total float64

	for _, r := range rows {
		name, color, icon := OtherCategoryName, OtherCategoryColor, ""
		if r.Category != nil {
			name, icon = r.Category.Name, r.Category.Icon
			if r.Category.Color != "" {
				color = r.Category.Color
			}
		}

		i, ok := index[name]
		if !ok {
			i = len(slices)
			index[name] = i
			slices = append(slices, Slice{Name: name, Color: color, Icon: icon})
		}
		slices[i].Sum += r.Amount
		total += r.Amount
	}

	if total == 0 {
		return Breakdown{Slices: []Slice{}}
	}

	sort.SliceStable(slices, func(a, b int) bool {
		return slices[a].Sum > slices[b].Sum
	})
	for i := range slices {
		slices[i].Percentage = slices[i].Sum / total * 100
	}
	return Breakdown{Total: total, Slices: slices}
}
