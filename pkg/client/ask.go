package client

import "context"

// AskRequest is the payload for the ask endpoint.
type AskRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

// Citation is one authoritative source backing an answer.
type Citation struct {
	Type           string  `json:"type"`
	Identifier     string  `json:"identifier"`
	Statute        string  `json:"statute,omitempty"`
	Source         string  `json:"source"`
	IsDeclaratory  bool    `json:"is_declaratory"`
	RelevanceScore float64 `json:"relevance_score"`
	ValidityScore  float64 `json:"validity_score"`
	SupportsClaim  bool    `json:"supports_claim"`
}

// EvidenceEntry maps one answer sentence to its best supporting source.
type EvidenceEntry struct {
	Sentence        string  `json:"sentence"`
	Evidence        string  `json:"evidence,omitempty"`
	EvidenceSnippet string  `json:"evidence_snippet,omitempty"`
	Score           float64 `json:"score"`
	Grounded        bool    `json:"grounded"`
}

// ConfidenceFactors breaks the composite confidence into its components.
type ConfidenceFactors struct {
	StatutorySupport float64 `json:"statutory_support"`
	Relevance        float64 `json:"relevance"`
	Coverage         float64 `json:"coverage"`
	Doctrine         float64 `json:"doctrine"`
}

// AskResponse is the full answer payload.  Refusals and no-source results
// arrive through this type as well, distinguished by Status.
type AskResponse struct {
	QueryID            string            `json:"query_id"`
	Timestamp          string            `json:"timestamp"`
	OriginalQuery      string            `json:"original_query,omitempty"`
	RewrittenQuery     string            `json:"rewritten_query,omitempty"`
	Status             string            `json:"status"`
	Domain             string            `json:"domain"`
	Reason             string            `json:"reason,omitempty"`
	RiskLevel          string            `json:"risk_level,omitempty"`
	AnalysisRaw        string            `json:"analysis_raw,omitempty"`
	AnalysisUser       string            `json:"analysis_user,omitempty"`
	LawBasis           string            `json:"law_basis,omitempty"`
	Confidence         float64           `json:"confidence"`
	Citations          []Citation        `json:"citations"`
	CoverageScore      float64           `json:"coverage_score"`
	EvidenceMap        []EvidenceEntry   `json:"evidence_map"`
	CitationSupportMap map[string]bool   `json:"citation_support_map"`
	ConfidenceFactors  ConfidenceFactors `json:"confidence_factors"`
}

// IsRefused reports whether the answer is a scope refusal.
func (r *AskResponse) IsRefused() bool {
	return r.Status == "refused"
}

// Ask submits a legal question.
func (c *Client) Ask(ctx context.Context, req AskRequest) (*AskResponse, error) {
	var resp AskResponse
	if err := c.post(ctx, "/api/v1/ask", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClearSession drops the server-side conversation memory for a session.
func (c *Client) ClearSession(ctx context.Context, sessionID string) error {
	return c.delete(ctx, "/api/v1/sessions/"+sessionID, nil)
}
