// Package reconcile joins raw jury votes against the owner-mapping table
// and rolls them up into a ranked result set.
package reconcile

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/halukinal/yuzuncuyilfotograf-com/logging"
	"github.com/halukinal/yuzuncuyilfotograf-com/storage"
)

// UnknownOwner marks votes whose photoId has no row in the mapping table.
const UnknownOwner = "Bilinmiyor"

const timestampFormat = "2006-01-02 15:04:05"

var ErrNoVotes = errors.New("no votes found")

// ResolvedVote is one vote from the store with its owner recovered and
// score/timestamp normalized, ready for the ledger.
type ResolvedVote struct {
	PhotoID   string
	Owner     string
	Score     float64
	JuryEmail string
	Comment   string
	Timestamp string
}

// PhotoAggregate is the rolled-up outcome for one photo across all of its
// votes.
type PhotoAggregate struct {
	PhotoID      string
	Owner        string
	TotalScore   float64
	VoteCount    int
	AverageScore float64
}

// Reconcile resolves every vote against the owner map and builds the
// ranked summary. Returns ErrNoVotes when the store held nothing, in
// which case no report should be written.
func Reconcile(votes []*storage.Vote, owners map[string]string) ([]ResolvedVote, []PhotoAggregate, error) {
	if len(votes) == 0 {
		return nil, nil, ErrNoVotes
	}
	ledger := Resolve(votes, owners)
	return ledger, Aggregate(ledger), nil
}

// Resolve maps each raw vote to a ResolvedVote and orders the ledger by
// photoId ascending. Lexicographic order matches numeric order as long as
// all IDs carry the same zero padding.
func Resolve(votes []*storage.Vote, owners map[string]string) []ResolvedVote {
	ledger := make([]ResolvedVote, 0, len(votes))
	for _, v := range votes {
		owner, ok := owners[v.PhotoID]
		if !ok {
			owner = UnknownOwner
		}
		ledger = append(ledger, ResolvedVote{
			PhotoID:   v.PhotoID,
			Owner:     owner,
			Score:     CoerceScore(v.Score),
			JuryEmail: v.JuryEmail,
			Comment:   v.Comment,
			Timestamp: NormalizeTimestamp(v.Timestamp),
		})
	}

	sort.SliceStable(ledger, func(i, j int) bool {
		return ledger[i].PhotoID < ledger[j].PhotoID
	})
	return ledger
}

// Aggregate groups the ledger by photoId and ranks the groups by total
// score descending, photoId ascending on equal totals. The owner of a
// group is taken from its first vote; owners are constant per photoId as
// long as every vote was resolved against the same mapping table.
func Aggregate(ledger []ResolvedVote) []PhotoAggregate {
	byPhoto := make(map[string]*PhotoAggregate)
	var order []string

	for _, v := range ledger {
		agg, ok := byPhoto[v.PhotoID]
		if !ok {
			agg = &PhotoAggregate{PhotoID: v.PhotoID, Owner: v.Owner}
			byPhoto[v.PhotoID] = agg
			order = append(order, v.PhotoID)
		}
		agg.TotalScore += v.Score
		agg.VoteCount++
	}

	summary := make([]PhotoAggregate, 0, len(order))
	for _, id := range order {
		agg := byPhoto[id]
		agg.AverageScore = agg.TotalScore / float64(agg.VoteCount)
		summary = append(summary, *agg)
	}

	sort.SliceStable(summary, func(i, j int) bool {
		if summary[i].TotalScore != summary[j].TotalScore {
			return summary[i].TotalScore > summary[j].TotalScore
		}
		return summary[i].PhotoID < summary[j].PhotoID
	})
	return summary
}

// CoerceScore turns whatever the store held into a number. Anything that
// does not parse counts as 0 rather than being dropped, so a bad vote
// still shows up in the vote count.
func CoerceScore(raw interface{}) float64 {
	switch s := raw.(type) {
	case nil:
		return 0
	case float64:
		return s
	case float32:
		return float64(s)
	case int:
		return float64(s)
	case int64:
		return float64(s)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			logging.Log.Warnf("RECONCILE: score %q is not numeric, counting as 0", s)
			return 0
		}
		return n
	default:
		logging.Log.Warnf("RECONCILE: score of type %T is not numeric, counting as 0", raw)
		return 0
	}
}

// NormalizeTimestamp renders whatever the store held as a fixed-format
// string. Instants are formatted, everything else is stringified as-is.
func NormalizeTimestamp(raw interface{}) string {
	switch ts := raw.(type) {
	case nil:
		return ""
	case time.Time:
		return ts.Format(timestampFormat)
	case string:
		return ts
	case float64:
		// Epoch-style numbers come back from the store as float64;
		// render them plain, not in scientific notation
		return strconv.FormatFloat(ts, 'f', -1, 64)
	default:
		return fmt.Sprint(ts)
	}
}
