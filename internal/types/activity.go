package types

// ActivityEntry is a stored notification
type ActivityEntry struct {
	ID            int64  `json:"id" yaml:"id"`
	Timestamp     string `json:"timestamp" yaml:"timestamp"`
	Level         string `json:"level" yaml:"level"`
	Source        string `json:"source,omitempty" yaml:"source,omitempty"`
	Title         string `json:"title" yaml:"title"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	CorrelationID string `json:"correlationId,omitempty" yaml:"correlationId,omitempty"`
}
