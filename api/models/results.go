package models

import "github.com/halukinal/yuzuncuyilfotograf-com/reconcile"

type ErrorResponse struct {
	Error string `json:"error"`
}

type VoteEntry struct {
	PhotoID   string  `json:"photoId"`
	Owner     string  `json:"owner"`
	Score     float64 `json:"score"`
	JuryEmail string  `json:"juryEmail"`
	Comment   string  `json:"comment,omitempty"`
	Timestamp string  `json:"timestamp"`
}

type LedgerResponse struct {
	Votes []VoteEntry `json:"votes"`
}

type ResultEntry struct {
	PhotoID      string  `json:"photoId"`
	Owner        string  `json:"owner"`
	TotalScore   float64 `json:"totalScore"`
	VoteCount    int     `json:"voteCount"`
	AverageScore float64 `json:"averageScore"`
}

type ResultsResponse struct {
	Results []ResultEntry `json:"results"`
}

func TransformLedgerToResponse(ledger []reconcile.ResolvedVote) *LedgerResponse {
	r := &LedgerResponse{Votes: make([]VoteEntry, 0, len(ledger))}
	for _, v := range ledger {
		r.Votes = append(r.Votes, VoteEntry{
			PhotoID:   v.PhotoID,
			Owner:     v.Owner,
			Score:     v.Score,
			JuryEmail: v.JuryEmail,
			Comment:   v.Comment,
			Timestamp: v.Timestamp,
		})
	}
	return r
}

func TransformSummaryToResponse(summary []reconcile.PhotoAggregate) *ResultsResponse {
	r := &ResultsResponse{Results: make([]ResultEntry, 0, len(summary))}
	for _, a := range summary {
		r.Results = append(r.Results, ResultEntry{
			PhotoID:      a.PhotoID,
			Owner:        a.Owner,
			TotalScore:   a.TotalScore,
			VoteCount:    a.VoteCount,
			AverageScore: a.AverageScore,
		})
	}
	return r
}
