package analyze

// leader returns the participant with the strictly highest positive value;
// on ties the one seen first wins. Empty when nobody scores above zero.
func leader(stats *ChatStats, value func(*ParticipantStats) int) string {
	name, best := "", 0
	for pair := stats.ParticipantStats.Oldest(); pair != nil; pair = pair.Next() {
		if v := value(pair.Value); v > best {
			name, best = pair.Key, v
		}
	}
	return name
}

func deriveRelationship(stats *ChatStats) Relationship {
	r := Relationship{
		MostRomantic:          leader(stats, func(p *ParticipantStats) int { return p.LoveExpressions.Count }),
		MostApologetic:        leader(stats, func(p *ParticipantStats) int { return p.Apologies.Count }),
		ConversationInitiator: leader(stats, func(p *ParticipantStats) int { return p.ConversationsStarted }),
		ConversationReplier:   leader(stats, func(p *ParticipantStats) int { return p.ResponseTime.Samples }),
		MostAgreements:        leader(stats, func(p *ParticipantStats) int { return p.Agreements }),
		MostDisagreements:     leader(stats, func(p *ParticipantStats) int { return p.Disagreements }),
	}

	var fastest *float64
	for pair := stats.ParticipantStats.Oldest(); pair != nil; pair = pair.Next() {
		avg := pair.Value.ResponseTime.Average
		if avg == nil {
			continue
		}
		if fastest == nil || *avg < *fastest {
			fastest = avg
			r.FastestResponder = pair.Key
		}
	}
	return r
}
