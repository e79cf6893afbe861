package checkout

import "strconv"

// MinBINDigits is the number of leading card digits needed before a
// classification is meaningful. Callers must not classify shorter input.
const MinBINDigits = 6

// binRange is a closed range of 6-digit BIN prefixes.
type binRange struct {
	start int
	end   int
}

// Known Uruguayan issuer BIN prefixes. This is a coarse offline heuristic
// for the fiscal-benefit UX hint, not a card-network lookup.
var domesticRanges = []binRange{
	{start: 589657, end: 589657},
	{start: 542991, end: 542991},
	{start: 516400, end: 516499},
	{start: 603522, end: 603522},
}

// IsForeignCard classifies a card from its BIN prefix. The input must be
// digits only; only the first 6 characters are significant. A prefix inside
// any domestic range is a Uruguayan card; everything else is foreign.
func IsForeignCard(digits string) bool {
	prefix := digits
	if len(prefix) > MinBINDigits {
		prefix = prefix[:MinBINDigits]
	}

	n, err := strconv.Atoi(prefix)
	if err != nil {
		return true
	}

	for _, r := range domesticRanges {
		if n >= r.start && n <= r.end {
			return false
		}
	}

	return true
}
