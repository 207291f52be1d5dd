package types

// AccountSummary is the public view of an authenticated game profile
type AccountSummary struct {
	UUID       string `json:"uuid" yaml:"uuid"`
	Username   string `json:"username" yaml:"username"`
	ObtainedAt int64  `json:"obtainedAt" yaml:"obtainedAt"`
	IsActive   bool   `json:"isActive" yaml:"isActive"`
}

// AccountTokens is the credential bundle kept by the backend for an account
type AccountTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresAt    int64  `json:"expiresAt,omitempty"`
	Offline      bool   `json:"offline,omitempty"`
}

// AccountRecord is an account as stored by the backend
type AccountRecord struct {
	UUID       string        `json:"uuid"`
	Username   string        `json:"username"`
	ObtainedAt int64         `json:"obtainedAt"`
	IsActive   bool          `json:"isActive"`
	Tokens     AccountTokens `json:"-"`
}

// Summary strips the credentials from a record
func (r AccountRecord) Summary() AccountSummary {
	return AccountSummary{
		UUID:       r.UUID,
		Username:   r.Username,
		ObtainedAt: r.ObtainedAt,
		IsActive:   r.IsActive,
	}
}
