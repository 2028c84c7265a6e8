package identity

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// Registry resolves raw team and league labels to canonical identities.
// A built registry is immutable; refreshes build a new one and swap it in
// through Holder so in-flight queries keep a consistent view.
type Registry struct {
	teamsByID      map[string]TeamIdentity
	leaguesByID    map[string]LeagueIdentity
	teamAliases    map[string][]aliasBinding
	leagueAliases  map[string][]aliasBinding
	handednessByID map[string]Handedness
}

type aliasBinding struct {
	canonicalID string
	alias       Alias
}

// NewRegistry builds a registry from reference data. It fails when two
// canonical ids claim the same alias with overlapping validity windows.
func NewRegistry(teams []TeamIdentity, leagues []LeagueIdentity, handedness []Handedness) (*Registry, error) {
	r := &Registry{
		teamsByID:      make(map[string]TeamIdentity, len(teams)),
		leaguesByID:    make(map[string]LeagueIdentity, len(leagues)),
		teamAliases:    make(map[string][]aliasBinding),
		leagueAliases:  make(map[string][]aliasBinding),
		handednessByID: make(map[string]Handedness, len(handedness)),
	}

	for _, t := range teams {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("invalid team identity: %w", err)
		}
		if _, exists := r.teamsByID[t.CanonicalID]; exists {
			return nil, fmt.Errorf("duplicate team canonical id %q", t.CanonicalID)
		}
		r.teamsByID[t.CanonicalID] = t

		labels := append([]Alias{{Label: t.Name}, {Label: t.Short}}, t.Aliases...)
		for _, alias := range labels {
			if err := registerAlias(r.teamAliases, t.CanonicalID, alias); err != nil {
				return nil, fmt.Errorf("team %q: %w", t.CanonicalID, err)
			}
		}
	}

	for _, l := range leagues {
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("invalid league identity: %w", err)
		}
		if _, exists := r.leaguesByID[l.CanonicalID]; exists {
			return nil, fmt.Errorf("duplicate league canonical id %q", l.CanonicalID)
		}
		r.leaguesByID[l.CanonicalID] = l

		labels := append([]Alias{{Label: l.Name}}, l.Aliases...)
		for _, alias := range labels {
			if err := registerAlias(r.leagueAliases, l.CanonicalID, alias); err != nil {
				return nil, fmt.Errorf("league %q: %w", l.CanonicalID, err)
			}
		}
	}

	for _, h := range handedness {
		key := NormalizeLabel(h.Player)
		if key == "" {
			continue
		}
		r.handednessByID[key] = h
	}

	return r, nil
}

func registerAlias(index map[string][]aliasBinding, canonicalID string, alias Alias) error {
	key := NormalizeLabel(alias.Label)
	if key == "" {
		return nil
	}

	for _, existing := range index[key] {
		if existing.canonicalID == canonicalID {
			continue
		}
		if existing.alias.overlaps(alias) {
			return fmt.Errorf("alias %q already claimed by %q with an overlapping validity window", alias.Label, existing.canonicalID)
		}
	}

	index[key] = append(index[key], aliasBinding{canonicalID: canonicalID, alias: alias})
	return nil
}

// NormalizeLabel folds case and trims whitespace so lookups tolerate the way
// labels appear in raw scorecards.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}

// ResolveTeam maps any known name or abbreviation to its canonical identity.
func (r *Registry) ResolveTeam(rawLabel string) (TeamIdentity, error) {
	bindings := r.teamAliases[NormalizeLabel(rawLabel)]
	if len(bindings) == 0 {
		return TeamIdentity{}, fmt.Errorf("%w: %q", ErrUnknownTeam, rawLabel)
	}
	return r.teamsByID[bindings[0].canonicalID], nil
}

// ResolveTeamAt resolves a label as of a point in time. Labels reused across
// eras (kept distinct by validity windows) resolve to the identity whose
// window covers the given instant.
func (r *Registry) ResolveTeamAt(rawLabel string, at time.Time) (TeamIdentity, error) {
	bindings := r.teamAliases[NormalizeLabel(rawLabel)]
	for _, b := range bindings {
		if b.alias.activeAt(at) {
			return r.teamsByID[b.canonicalID], nil
		}
	}
	return TeamIdentity{}, fmt.Errorf("%w: %q at %s", ErrUnknownTeam, rawLabel, at.Format("2006-01-02"))
}

// ResolveLeague maps any historical or sponsor label to its canonical league.
func (r *Registry) ResolveLeague(rawLabel string) (LeagueIdentity, error) {
	bindings := r.leagueAliases[NormalizeLabel(rawLabel)]
	if len(bindings) == 0 {
		return LeagueIdentity{}, fmt.Errorf("%w: %q", ErrUnknownLeague, rawLabel)
	}
	return r.leaguesByID[bindings[0].canonicalID], nil
}

// TeamByID returns the identity for a canonical id.
func (r *Registry) TeamByID(canonicalID string) (TeamIdentity, bool) {
	t, ok := r.teamsByID[canonicalID]
	return t, ok
}

// LeagueByID returns the identity for a canonical league id.
func (r *Registry) LeagueByID(canonicalID string) (LeagueIdentity, bool) {
	l, ok := r.leaguesByID[canonicalID]
	return l, ok
}

// HandednessFor returns batting hand and bowling arm for a player label.
// Missing reference data is reported through ok, never defaulted.
func (r *Registry) HandednessFor(player string) (Handedness, bool) {
	h, ok := r.handednessByID[NormalizeLabel(player)]
	return h, ok
}

// Teams lists every canonical team identity in the registry.
func (r *Registry) Teams() []TeamIdentity {
	out := make([]TeamIdentity, 0, len(r.teamsByID))
	for _, t := range r.teamsByID {
		out = append(out, t)
	}
	return out
}

// LeagueIDs lists every canonical league id in the registry.
func (r *Registry) LeagueIDs() []string {
	out := make([]string, 0, len(r.leaguesByID))
	for id := range r.leaguesByID {
		out = append(out, id)
	}
	return out
}

// LeagueAliasLabels returns every label a canonical league has appeared
// under, including its display name. Used to expand league filters so storage
// matches historical rows written under sponsor-era names.
func (r *Registry) LeagueAliasLabels(canonicalID string) []string {
	l, ok := r.leaguesByID[canonicalID]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(l.Aliases)+1)
	out = append(out, l.Name)
	for _, alias := range l.Aliases {
		out = append(out, alias.Label)
	}
	return out
}

// Holder provides atomic snapshot swapping for registry refreshes.
type Holder struct {
	current atomic.Pointer[Registry]
}

func NewHolder(r *Registry) *Holder {
	h := &Holder{}
	h.current.Store(r)
	return h
}

// Load returns the current immutable snapshot.
func (h *Holder) Load() *Registry {
	return h.current.Load()
}

// Swap replaces the snapshot; readers holding the old one are unaffected.
func (h *Holder) Swap(r *Registry) {
	if r == nil {
		return
	}
	h.current.Store(r)
}
