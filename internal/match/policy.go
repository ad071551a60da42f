package match

// Policy centralizes similarity weights and acceptance thresholds.
type Policy struct {
	// AcceptThreshold is the minimum score for a pair to be accepted.
	AcceptThreshold float64
	// CandidateFloor splits unmatched tracks into below-threshold (best score
	// reached the floor) and no-candidate.
	CandidateFloor float64
	EditWeight     float64
	TokenWeight    float64
	// PrefixLength lifts pairs sharing this many leading key characters to
	// the acceptance threshold. Zero disables the rule.
	PrefixLength int
}

// DefaultPolicy returns defaults calibrated against typical album track lists.
func DefaultPolicy() Policy {
	return Policy{
		AcceptThreshold: 0.6,
		CandidateFloor:  0.3,
		EditWeight:      0.5,
		TokenWeight:     0.5,
		PrefixLength:    10,
	}
}

func (p Policy) normalized() Policy {
	d := DefaultPolicy()

	if p.AcceptThreshold <= 0 || p.AcceptThreshold > 1 {
		p.AcceptThreshold = d.AcceptThreshold
	}
	if p.CandidateFloor < 0 || p.CandidateFloor > p.AcceptThreshold {
		p.CandidateFloor = min(d.CandidateFloor, p.AcceptThreshold)
	}
	if p.EditWeight < 0 || p.TokenWeight < 0 || p.EditWeight+p.TokenWeight == 0 {
		p.EditWeight = d.EditWeight
		p.TokenWeight = d.TokenWeight
	}
	if p.PrefixLength < 0 {
		p.PrefixLength = 0
	}
	return p
}
