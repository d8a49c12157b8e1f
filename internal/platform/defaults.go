package platform

import (
	"maps"
	"slices"
	"sync"

	"campaign_sync/internal/domain"
)

// Defaults holds per-entity field defaults for one platform, keyed by the
// json field name.
type Defaults map[domain.EntityType]map[string]any

func (d Defaults) clone() Defaults {
	out := make(Defaults, len(d))
	for entity, fields := range d {
		out[entity] = maps.Clone(fields)
	}
	return out
}

// Values the platform adapters fill in when the field is left empty.
const (
	RedditDefaultObjective      = "IMPRESSIONS"
	RedditDefaultBidStrategy    = "AUTOMATIC"
	RedditDefaultCallToAction   = "Learn More"
	GoogleDefaultBidStrategy    = "MANUAL_CPC"
	GoogleDefaultMatchType      = "broad"
	FacebookDefaultBidStrategy  = "LOWEST_COST_WITHOUT_CAP"
	FacebookDefaultCallToAction = "LEARN_MORE"
)

func builtinDefaults() map[string]Defaults {
	return map[string]Defaults{
		domain.PlatformReddit: {
			domain.EntityCampaign: {"objective": RedditDefaultObjective},
			domain.EntityAdGroup:  {"bidStrategy": RedditDefaultBidStrategy},
			domain.EntityAd:       {"callToAction": RedditDefaultCallToAction},
		},
		domain.PlatformGoogle: {
			domain.EntityAdGroup: {"bidStrategy": GoogleDefaultBidStrategy},
			domain.EntityKeyword: {"matchType": GoogleDefaultMatchType},
		},
		domain.PlatformFacebook: {
			domain.EntityAdGroup: {"bidStrategy": FacebookDefaultBidStrategy},
			domain.EntityAd:      {"callToAction": FacebookDefaultCallToAction},
		},
	}
}

// DefaultsResolver answers which fields a platform fills in on its own.
// Unknown platforms have no defaults until RegisterDefaults is called.
type DefaultsResolver struct {
	mu       sync.RWMutex
	defaults map[string]Defaults
}

func NewDefaultsResolver() *DefaultsResolver {
	return &DefaultsResolver{defaults: builtinDefaults()}
}

// GetDefaults returns a copy of the defaults for platform. The result is
// empty, never nil, for platforms without defaults.
func (r *DefaultsResolver) GetDefaults(platform string) Defaults {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.defaults[platform]
	if !ok {
		return Defaults{}
	}
	return d.clone()
}

func (r *DefaultsResolver) HasDefault(platform string, entity domain.EntityType, field string) bool {
	_, ok := r.GetDefault(platform, entity, field)
	return ok
}

func (r *DefaultsResolver) GetDefault(platform string, entity domain.EntityType, field string) (any, bool) {
	if platform == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.defaults[platform][entity][field]
	return v, ok
}

// GetDefaultString returns a string default, or fallback when the platform
// has none.
func (r *DefaultsResolver) GetDefaultString(platform string, entity domain.EntityType, field, fallback string) string {
	v, ok := r.GetDefault(platform, entity, field)
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	return s
}

// RegisterDefaults merges defaults into the platform's set, overriding
// fields that already have a value.
func (r *DefaultsResolver) RegisterDefaults(platform string, defaults Defaults) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.defaults[platform]
	if !ok {
		current = Defaults{}
		r.defaults[platform] = current
	}
	for entity, fields := range defaults {
		if current[entity] == nil {
			current[entity] = make(map[string]any, len(fields))
		}
		maps.Copy(current[entity], fields)
	}
}

// IsKnownPlatform reports whether platform ships built-in defaults.
func (r *DefaultsResolver) IsKnownPlatform(platform string) bool {
	return slices.Contains(domain.KnownPlatforms, platform)
}
