package domain

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type Span struct {
	Name    string    `json:"name"`
	startTs time.Time `json:"-"`

	Elapsed *int64 `json:"elapsed"`
}

type profileContextKey struct{}

// Profile is simply a list of spans
type Profile struct {
	mu      sync.Mutex
	Spans   []*Span
	startTs time.Time
	TotalMs *int64
}

func NewProfile() (newProfile *Profile, endNewProfile func()) {
	newProfile = &Profile{
		Spans:   []*Span{},
		startTs: time.Now(),
	}

	return newProfile, newProfile.End
}

func NewCtxWithProfile(ctx context.Context) (context.Context, *Profile) {
	profile, _ := NewProfile()
	return context.WithValue(ctx, profileContextKey{}, profile), profile
}

// GetProfile returns the profile on ctx, or a detached one if the
// caller never attached a profile
func GetProfile(ctx context.Context) (profile *Profile, endProfile func()) {
	profile, ok := ctx.Value(profileContextKey{}).(*Profile)
	if !ok {
		return NewProfile()
	}
	return profile, profile.End
}

func (p *Profile) End() {
	p.mu.Lock()
	defer p.mu.Unlock()
	t := time.Since(p.startTs).Milliseconds()
	if p.TotalMs == nil {
		p.TotalMs = &t
	}
}

func (s *Span) End() {
	if s.Elapsed == nil {
		t := time.Since(s.startTs).Milliseconds()
		s.Elapsed = &t
	}
}

// StartNewSpan ends the last span and begins a new one
func (p *Profile) StartNewSpan(name string) (newSpan *Span, endSpan func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	newSpan = &Span{
		Name:    name,
		startTs: time.Now(),
	}
	if len(p.Spans) > 0 {
		p.Spans[len(p.Spans)-1].End()
	}
	p.Spans = append(p.Spans, newSpan)
	return newSpan, newSpan.End
}

func (p *Profile) ToJsonBytes() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return json.Marshal(p.Spans)
}
