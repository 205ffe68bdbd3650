package ask

import (
	"context"

	"github.com/swarakshak/vidhaan/internal/analysis"
	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/logging"
	"github.com/swarakshak/vidhaan/internal/memory"
	"github.com/swarakshak/vidhaan/internal/retrieval"
)

// defaultSessionID is used when the caller supplies no session.
const defaultSessionID = "default"

// SessionService layers conversational memory over the core ask service.
// The core pipeline is untouched: the wrapper only derives enrichment from
// past turns, recovers from unsourced follow-ups via the locked doctrine, and
// records turn metadata afterwards.
type SessionService struct {
	core    *Service
	store   memory.Store
	log     logging.Logger
	obs     StoreObserver
	backend string
}

// StoreObserver counts session persistence activity.
type StoreObserver interface {
	SessionTurnRecorded(backend string)
	SessionStoreError(operation string)
}

// NewSessionService builds the session-aware wrapper.
func NewSessionService(core *Service, store memory.Store, log logging.Logger) *SessionService {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &SessionService{core: core, store: store, log: log}
}

// SetStoreObserver attaches persistence metrics.  backend names the store
// implementation behind the service, e.g. "local" or "redis".
func (s *SessionService) SetStoreObserver(obs StoreObserver, backend string) {
	s.obs = obs
	s.backend = backend
}

func (s *SessionService) turnRecorded() {
	if s.obs != nil {
		s.obs.SessionTurnRecorded(s.backend)
	}
}

func (s *SessionService) storeError(operation string) {
	if s.obs != nil {
		s.obs.SessionStoreError(operation)
	}
}

// Ask answers a query within a session.
func (s *SessionService) Ask(ctx context.Context, userQuery, sessionID string) (Response, error) {
	if sessionID == "" {
		sessionID = defaultSessionID
	}

	turns, err := s.store.Turns(ctx, sessionID)
	if err != nil {
		// Memory is best-effort: answer without context rather than fail.
		s.log.Warn("session read failed", logging.String("session_id", sessionID), logging.Err(err))
		s.storeError("read")
		turns = nil
	}

	currentDomain := retrieval.ClassifyDomain(userQuery)
	memCtx := memory.BuildContext(turns, string(currentDomain))
	if memCtx.TopicSwitched {
		s.log.Info("topic switch detected",
			logging.String("locked_domain", memCtx.LockedDomain),
			logging.String("current_domain", string(currentDomain)))
	}

	resp, err := s.core.Ask(ctx, userQuery, memCtx.EnrichmentText)
	if err != nil {
		return Response{}, err
	}

	if resp.Status == string(retrieval.StatusNoSource) &&
		memCtx.LockedDomain != "" && memCtx.EnrichmentText != "" {
		resp = s.recoverFromLock(ctx, resp, userQuery, memCtx)
	}

	s.recordTurn(ctx, sessionID, resp)
	return resp, nil
}

// Clear drops the session's stored context.
func (s *SessionService) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		sessionID = defaultSessionID
	}
	if err := s.store.Clear(ctx, sessionID); err != nil {
		s.storeError("clear")
		return err
	}
	return nil
}

// recoverFromLock retries an unsourced follow-up against the base-case table
// using the locked domain and its enrichment.  A hit replaces the response
// with the settled doctrine, carrying no citations of its own.
func (s *SessionService) recoverFromLock(ctx context.Context, resp Response, userQuery string, memCtx memory.Context) Response {
	synthetic := userQuery + " " + memCtx.EnrichmentText
	bc := retrieval.ResolveBaseCase(synthetic, retrieval.Domain(memCtx.LockedDomain))
	if bc == nil {
		return resp
	}
	s.log.Info("recovered via locked doctrine", logging.String("law_basis", bc.LawBasis))

	evidenceMap := analysis.MapEvidence(ctx, []string{bc.Analysis}, nil, nil)
	coverage := analysis.CoverageScore(evidenceMap)
	confidence, factors := analysis.ComputeConfidence(nil, coverage)

	out := Response{
		QueryID:            resp.QueryID,
		Timestamp:          resp.Timestamp,
		OriginalQuery:      userQuery,
		RewrittenQuery:     userQuery,
		Status:             string(bc.Status),
		Domain:             memCtx.LockedDomain,
		RiskLevel:          string(bc.Risk),
		AnalysisRaw:        bc.Analysis,
		AnalysisUser:       bc.Analysis,
		LawBasis:           bc.LawBasis,
		Confidence:         confidence,
		Citations:          []retrieval.Citation{},
		CoverageScore:      coverage,
		EvidenceMap:        evidenceMap,
		CitationSupportMap: map[string]bool{},
		ConfidenceFactors:  factors,
	}
	return out
}

// recordTurn persists the response's metadata, never its text.
func (s *SessionService) recordTurn(ctx context.Context, sessionID string, resp Response) {
	statutes := make([]string, 0, len(resp.Citations))
	sections := make([]string, 0, len(resp.Citations))
	seenStatute := make(map[string]struct{})
	seenSection := make(map[string]struct{})
	for _, c := range resp.Citations {
		if c.Statute != "" {
			if _, ok := seenStatute[c.Statute]; !ok {
				seenStatute[c.Statute] = struct{}{}
				statutes = append(statutes, c.Statute)
			}
		}
		if c.Identifier != "" {
			if _, ok := seenSection[c.Identifier]; !ok {
				seenSection[c.Identifier] = struct{}{}
				sections = append(sections, c.Identifier)
			}
		}
	}

	turn := memory.Turn{
		VerdictType:     resp.Status,
		LegalDomain:     resp.Domain,
		StatuteNames:    statutes,
		SectionNumbers:  sections,
		PrimaryDoctrine: resp.LawBasis,
	}
	if err := s.store.Append(ctx, sessionID, turn); err != nil {
		s.log.Warn("session write failed", logging.String("session_id", sessionID), logging.Err(err))
		s.storeError("append")
		return
	}
	s.turnRecorded()
}
