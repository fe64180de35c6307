package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the persisted authority profile the consistency scorer and
// prompt assembly read from. All fields optional.
type Profile struct {
	Thesis      string `json:"thesis,omitempty"`      // Standing positioning thesis
	Positioning string `json:"positioning,omitempty"` // How the account wants to be seen
	Audience    string `json:"audience,omitempty"`
	Tone        string `json:"tone,omitempty"`
}

// IsEmpty reports whether the profile carries no usable context
func (p *Profile) IsEmpty() bool {
	return p == nil || (p.Thesis == "" && p.Positioning == "" && p.Audience == "" && p.Tone == "")
}

// Pack is the persisted unit of work: one authority map, its derived assets
// and its score snapshot, owned by exactly one account
type Pack struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Source        string    `json:"source"` // Resolved source text reference (URL or "pasted")
	InputType     InputType `json:"input_type"`
	Angle         Angle     `json:"angle"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Regenerations int       `json:"regenerations"`

	Map    AuthorityMap   `json:"map"`
	Thesis CoreThesisView `json:"core_thesis"` // Legacy projection, lock-step with Map
	Assets AssetSet       `json:"assets"`
	Scores ScoreSnapshot  `json:"scores"`
}

// NewPack creates an empty pack record for the given owner
func NewPack(userID, source string, inputType InputType, angle Angle) *Pack {
	now := time.Now().UTC()
	return &Pack{
		ID:        uuid.NewString(),
		UserID:    userID,
		Source:    source,
		InputType: inputType,
		Angle:     angle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the modification timestamp
func (p *Pack) Touch() {
	p.UpdatedAt = time.Now().UTC()
}
