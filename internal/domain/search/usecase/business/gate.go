package business

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Conte777/catalog-search-bot/internal/domain/search/deps"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/dto"
	"github.com/Conte777/catalog-search-bot/internal/infrastructure/metrics"
)

// AccessGate decides whether a user may search.
// A failed membership lookup lets the user through (fail-open).
type AccessGate struct {
	settings *Settings
	checker  deps.MembershipChecker
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewAccessGate creates a new AccessGate. The membership checker is attached later with SetChecker.
func NewAccessGate(settings *Settings, m *metrics.Metrics, logger zerolog.Logger) *AccessGate {
	return &AccessGate{
		settings: settings,
		metrics:  m,
		logger:   logger.With().Str("component", "access-gate").Logger(),
	}
}

// SetChecker sets the membership checker after construction
func (g *AccessGate) SetChecker(checker deps.MembershipChecker) {
	g.checker = checker
}

// Evaluate returns Allowed unless the mode is private, a private link is set and
// the platform reports the user as left or kicked.
func (g *AccessGate) Evaluate(ctx context.Context, userID int64) dto.GateDecision {
	if !g.settings.PrivateMode(ctx) {
		return g.record(dto.Allow(), "public")
	}

	link := g.settings.PrivateLink(ctx)
	if link == "" {
		return g.record(dto.Allow(), "no_link")
	}

	if g.checker == nil {
		g.logger.Error().Int64("user_id", userID).Msg("Membership checker is not set, allowing")
		return g.record(dto.Allow(), "lookup_failed")
	}

	status, err := g.checker.GetMembership(ctx, link, userID)
	if err != nil {
		g.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Str("private_link", link).
			Msg("Error checking channel membership, allowing")
		g.metrics.RecordMembershipError()
		return g.record(dto.Allow(), "lookup_failed")
	}

	if status.HasLeft() {
		g.logger.Debug().Int64("user_id", userID).Str("status", string(status)).Msg("User is not a channel member")
		return g.record(dto.Block(link), "not_member")
	}

	return g.record(dto.Allow(), "member")
}

func (g *AccessGate) record(decision dto.GateDecision, reason string) dto.GateDecision {
	g.metrics.RecordGateDecision(decision.Allowed, reason)
	return decision
}
