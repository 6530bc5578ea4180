package state

const ruleHeaderBytes = 48 // head pointer + body slice header + struct padding

// DynamicSharedSize is the base's contribution to the memory budget,
// counted once regardless of how many frames hold a reference to it — per
// spec.md §4.6.5, the shared locked base is counted once, not once per
// holder.
func (rs *RuleSet) DynamicSharedSize() int64 {
	var total int64
	for _, rules := range *rs.base {
		total += int64(len(rules)) * ruleHeaderBytes
		for _, r := range rules {
			total += int64(len(r.Body)) * 8
		}
	}
	return total
}

// DynamicSize is this frame's own delta contribution, excluding the shared
// base (see DynamicSharedSize).
func (rs *RuleSet) DynamicSize() int64 {
	var total int64
	for _, rules := range rs.delta {
		total += int64(len(rules)) * ruleHeaderBytes
		for _, r := range rules {
			total += int64(len(r.Body)) * 8
		}
	}
	return total
}
