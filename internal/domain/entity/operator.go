package entity

// Operator is a person interacting with the inspection bot. The only
// state kept is which inspection profile their photos are checked
// against.
type Operator struct {
	ID      int64 // Telegram user ID
	ChatID  int64 // Telegram chat ID
	Profile string
}

// NewOperator creates an operator bound to the default profile.
func NewOperator(operatorID, chatID int64, profile string) *Operator {
	return &Operator{
		ID:      operatorID,
		ChatID:  chatID,
		Profile: profile,
	}
}

// SelectProfile switches the profile used for this operator's checks.
func (o *Operator) SelectProfile(profile string) {
	o.Profile = profile
}
