package models

import (
	"errors"
	"fmt"
	"strings"
)

// Tier is the caller-supplied stage flag influencing prompt framing.
type Tier string

const (
	TierPrelaunch  Tier = "prelaunch"
	TierPostlaunch Tier = "postlaunch"
)

// Idea length bounds for analysis requests.
const (
	MinIdeaLength = 10
	MaxIdeaLength = 500
)

// ErrInvalidRequest marks a malformed analysis request. Invalid requests are
// rejected before any job record is created.
var ErrInvalidRequest = errors.New("invalid analyze request")

// AnalyzeRequest is the caller input that starts an analysis job.
type AnalyzeRequest struct {
	ProductIdea string `json:"product_idea"`
	Tier        Tier   `json:"tier"`
	Email       string `json:"email"`
}

// Normalize trims and canonicalizes the request fields. The legacy tier
// spellings pre_launch/post_launch are accepted and folded to the canonical
// form; an empty tier defaults to prelaunch.
func (r *AnalyzeRequest) Normalize() {
	r.ProductIdea = strings.TrimSpace(r.ProductIdea)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Tier == "" {
		r.Tier = TierPrelaunch
	} else {
		r.Tier = Tier(strings.ReplaceAll(string(r.Tier), "_", ""))
	}
}

// Validate checks the normalized request. All failures wrap ErrInvalidRequest.
func (r *AnalyzeRequest) Validate() error {
	if r.ProductIdea == "" {
		return fmt.Errorf("%w: product idea cannot be empty", ErrInvalidRequest)
	}
	if len(r.ProductIdea) < MinIdeaLength {
		return fmt.Errorf("%w: product idea must be at least %d characters", ErrInvalidRequest, MinIdeaLength)
	}
	if len(r.ProductIdea) > MaxIdeaLength {
		return fmt.Errorf("%w: product idea must be at most %d characters", ErrInvalidRequest, MaxIdeaLength)
	}
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return fmt.Errorf("%w: please provide a valid email", ErrInvalidRequest)
	}
	if r.Tier != TierPrelaunch && r.Tier != TierPostlaunch {
		return fmt.Errorf("%w: tier must be prelaunch or postlaunch", ErrInvalidRequest)
	}
	return nil
}
