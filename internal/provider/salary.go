package provider

import (
	"math"
	"regexp"
	"strconv"
)

// salaryTokenRegex matches the leading numeric token in a free-text salary
// string, e.g. "50,000" in "$50,000 - $70,000 a year".
var salaryTokenRegex = regexp.MustCompile(`\d[\d,.]*`)

var thousandsSepRegex = regexp.MustCompile(`[^\d.]`)

// clampSalary rounds v to the nearest integer and clamps it to [0, max].
// NaN and negative values become 0. Absent salary data is represented as 0,
// not null.
func clampSalary(v float64, max int64) int64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	v = math.Round(v)
	if v >= float64(max) {
		return max
	}
	return int64(v)
}

// extractSalary pulls the leading numeric token out of a free-text salary
// string and clamps it to [0, max]. "$50,000 - $70,000" yields 50000.
// Missing or unparseable input degrades to 0, never an error.
func extractSalary(s string, max int64) int64 {
	token := salaryTokenRegex.FindString(s)
	if token == "" {
		return 0
	}
	cleaned := thousandsSepRegex.ReplaceAllString(token, "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return clampSalary(v, max)
}
