package client

import "context"

// Clause is one numbered NDA clause.
type Clause struct {
	ClauseNumber string `json:"clause_number"`
	Title        string `json:"title"`
	Text         string `json:"text"`
}

// Contract is the clause list a drafted clause is appended to.
type Contract struct {
	Clauses []Clause `json:"clauses"`
}

// ClauseValidation is the legality decision for a drafted clause.
type ClauseValidation struct {
	Status     string     `json:"status"`
	Reason     string     `json:"reason,omitempty"`
	Confidence float64    `json:"confidence"`
	Citations  []Citation `json:"citations,omitempty"`
}

// ClauseRequest asks the server to draft and vet one NDA clause.
type ClauseRequest struct {
	Input    string    `json:"input"`
	Contract *Contract `json:"contract,omitempty"`
}

// ClauseResponse is the pipeline outcome plus the updated contract.
type ClauseResponse struct {
	Status   string            `json:"status"`
	Reason   string            `json:"reason,omitempty"`
	Clause   *Clause           `json:"clause,omitempty"`
	Analysis *ClauseValidation `json:"analysis,omitempty"`
	Contract *Contract         `json:"contract"`
}

// ProcessClause drafts an NDA clause from the request and vets it against
// Indian law.  Rejections are reported in the response, not as errors.
func (c *Client) ProcessClause(ctx context.Context, req ClauseRequest) (*ClauseResponse, error) {
	var resp ClauseResponse
	if err := c.post(ctx, "/api/v1/clauses", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
