// Package intel produces the short narrative briefing shown between waves.
// Briefings come from an external text-generation service; every failure
// degrades to a fixed fallback report.
package intel

import (
	"context"
	"errors"
)

// Report is one wave briefing.
type Report struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThreatLevel  string `json:"threatLevel"`
	MutationNote string `json:"mutationNote"`
}

// Fallback returns the report used whenever the service cannot answer.
func Fallback() Report {
	return Report{
		Title:        "SIGNAL LOST",
		Description:  "Communication with HQ is unstable. The horde is approaching.",
		ThreatLevel:  "UNKNOWN",
		MutationNote: "Increased aggression detected in the local population.",
	}
}

// ErrIncomplete is returned for a report missing a required field.
var ErrIncomplete = errors.New("intel: incomplete report")

// Validate checks that every field of the report is populated.
func (r Report) Validate() error {
	if r.Title == "" || r.Description == "" || r.ThreatLevel == "" || r.MutationNote == "" {
		return ErrIncomplete
	}
	return nil
}

// Source generates a briefing for a wave number (2 or greater).
type Source interface {
	Generate(ctx context.Context, wave int) (Report, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, wave int) (Report, error)

// Generate calls f.
func (f SourceFunc) Generate(ctx context.Context, wave int) (Report, error) {
	return f(ctx, wave)
}

// Offline is a Source that always answers with the fallback report.
type Offline struct{}

// Generate returns Fallback.
func (Offline) Generate(context.Context, int) (Report, error) {
	return Fallback(), nil
}
