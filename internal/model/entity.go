package model

// Entity is a participant referenced across statements. Entities with a
// MentionCount below the configured threshold are filtered from the final
// report (Testable Property 8).
type Entity struct {
	ID            string   `json:"id"`
	PrimaryName   string   `json:"primary_name"`
	Aliases       []string `json:"aliases,omitempty"`
	Emails        []string `json:"emails,omitempty"`
	Phones        []string `json:"phones,omitempty"`
	BankAccounts  []string `json:"bank_accounts,omitempty"`
	MentionCount  int      `json:"mention_count"`
	StatementIDs  []string `json:"statement_ids"`
	Themes        []string `json:"themes,omitempty"`
	KeyPhrases    []string `json:"key_phrases,omitempty"`

	AverageCertainty    float64 `json:"average_certainty"`
	CommunicationStyle  string  `json:"communication_style"` // neutral, cooperative, defensive, aggressive, evasive

	Behavioral *BehavioralProfile `json:"behavioral_profile,omitempty"`
	Liability  *LiabilityScore    `json:"liability_score,omitempty"`
}

// Merge unions e2's alias/email/phone/bank-account sets and statement list
// into e, sums mention counts, and returns the result. e2 is left untouched.
// Statement ids are concatenated in stable order (e's ids first, then e2's
// ids not already present).
func (e Entity) Merge(e2 Entity) Entity {
	out := e
	out.Aliases = unionStrings(e.Aliases, e2.Aliases)
	out.Emails = unionStrings(e.Emails, e2.Emails)
	out.Phones = unionStrings(e.Phones, e2.Phones)
	out.BankAccounts = unionStrings(e.BankAccounts, e2.BankAccounts)
	out.MentionCount = e.MentionCount + e2.MentionCount
	out.StatementIDs = appendMissing(e.StatementIDs, e2.StatementIDs)
	return out
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, v := range a {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, v := range b {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func appendMissing(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	out := append([]string{}, a...)
	for _, v := range a {
		seen[v] = true
	}
	for _, v := range b {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
