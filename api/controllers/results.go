package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/halukinal/yuzuncuyilfotograf-com/api/models"
	"github.com/halukinal/yuzuncuyilfotograf-com/logging"
	"github.com/halukinal/yuzuncuyilfotograf-com/mapping"
	"github.com/halukinal/yuzuncuyilfotograf-com/reconcile"
	"github.com/halukinal/yuzuncuyilfotograf-com/storage"
)

// ResultsController serves the reconciled ledger and ranking as JSON.
// Votes are re-fetched and re-joined on every request; the jury is small
// enough that caching would only hide fresh votes.
type ResultsController struct {
	votesStorage storage.VoteStorage
	mappingPath  string
}

func NewResultsController(votesStorage storage.VoteStorage, mappingPath string) *ResultsController {
	return &ResultsController{
		votesStorage: votesStorage,
		mappingPath:  mappingPath,
	}
}

func (c *ResultsController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api")

	group.GET("/votes", c.getVotes)
	group.GET("/results", c.getResults)
}

func (c *ResultsController) getVotes(g *gin.Context) {
	ledger, _, err := c.reconcileAll(g)
	if err != nil {
		return
	}
	g.JSON(http.StatusOK, models.TransformLedgerToResponse(ledger))
}

func (c *ResultsController) getResults(g *gin.Context) {
	_, summary, err := c.reconcileAll(g)
	if err != nil {
		return
	}
	g.JSON(http.StatusOK, models.TransformSummaryToResponse(summary))
}

// reconcileAll runs the full pipeline and writes the error response
// itself when something went wrong.
func (c *ResultsController) reconcileAll(g *gin.Context) ([]reconcile.ResolvedVote, []reconcile.PhotoAggregate, error) {
	votes, err := c.votesStorage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("RESULTS: failed to fetch votes: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not fetch votes"})
		return nil, nil, err
	}

	owners, err := mapping.Load(c.mappingPath)
	if err != nil {
		logging.Log.Warnf("RESULTS: owner mapping unavailable, owners will be %q: %v", reconcile.UnknownOwner, err)
		owners = map[string]string{}
	}

	ledger, summary, err := reconcile.Reconcile(votes, owners)
	if err != nil {
		if errors.Is(err, reconcile.ErrNoVotes) {
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "no votes found"})
			return nil, nil, err
		}
		logging.Log.Errorf("RESULTS: reconcile failed: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not reconcile votes"})
		return nil, nil, err
	}
	return ledger, summary, nil
}
