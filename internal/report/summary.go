package report

// Aggregate derives the summary counts for a normalized signal list.
// The explicit metadata count wins over the actual entry count when
// present; the upstream publisher treats it as authoritative. Buy and
// sell counts partition the entries exactly because normalization forces
// every action to one of the two values.
func Aggregate(meta Metadata, signals []Signal) Summary {
	s := Summary{Total: len(signals)}

	if meta.TotalSignals != nil {
		s.Total = *meta.TotalSignals
	}

	for _, sig := range signals {
		if sig.Action == ActionSell {
			s.SellCount++
		} else {
			s.BuyCount++
		}
	}

	return s
}
