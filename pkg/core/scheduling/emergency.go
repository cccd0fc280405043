package scheduling

// ResolveEmergencyOverride splits the assignments an emergency candidate collides with.
//
// Non-emergency conflicts are returned in toCancel; emergency conflicts are returned in
// toFlag and stay in place. Both keep the input order.
//
// A non-emergency candidate never overrides anything, so both results are empty and the
// caller treats the conflicts as a hard failure instead.
func ResolveEmergencyOverride(candidateIsEmergency bool, conflicts []ExistingAssignment) (toCancel, toFlag []ExistingAssignment) {
	toCancel = []ExistingAssignment{}
	toFlag = []ExistingAssignment{}

	if !candidateIsEmergency {
		return toCancel, toFlag
	}

	for _, a := range conflicts {
		if a.IsEmergency {
			toFlag = append(toFlag, a)
		} else {
			toCancel = append(toCancel, a)
		}
	}

	return toCancel, toFlag
}
