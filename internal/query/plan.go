package query

// DefaultMaxTagValues is the hard per-query ceiling on values a single tag
// filter may carry. Relays are permitted to reject an oversized query
// outright rather than truncate it, so this is a correctness limit, not a
// tuning knob.
const DefaultMaxTagValues = 10

// Plan splits a filter into the ordered list of filters retrieval will
// issue. When the citation's sections formed a contiguous numeric range,
// one range-probe filter is emitted first: a single compound-range event is
// preferable to assembling many discrete-section events. The remaining
// section values are chunked so no filter exceeds maxTagValues.
func Plan(f Filter, maxTagValues int) []Filter {
	if maxTagValues <= 0 {
		maxTagValues = DefaultMaxTagValues
	}

	var plans []Filter
	if f.RangeValue != "" {
		probe := f
		probe.SectionValues = []string{f.RangeValue}
		probe.RangeProbe = true
		plans = append(plans, probe)
	}

	if len(f.SectionValues) <= maxTagValues {
		plans = append(plans, f)
		return plans
	}

	for start := 0; start < len(f.SectionValues); start += maxTagValues {
		end := start + maxTagValues
		if end > len(f.SectionValues) {
			end = len(f.SectionValues)
		}
		batch := f
		batch.SectionValues = f.SectionValues[start:end]
		plans = append(plans, batch)
	}
	return plans
}
