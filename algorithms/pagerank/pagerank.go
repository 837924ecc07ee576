/*
   Implements Google famous and first
   PageRank algorithm https://en.wikipedia.org/wiki/PageRank
*/
package pagerank

import (
	"context"

	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/Ahmed-Sermani/go-pregel/pregel"
	"github.com/Ahmed-Sermani/go-pregel/pregel/aggregators"
	"github.com/Ahmed-Sermani/go-pregel/pregel/message"
	"github.com/Ahmed-Sermani/go-pregel/pregel/reducers"
	"github.com/Ahmed-Sermani/go-pregel/progress"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

/*
   PageRank works by counting the number and quality of links to
   a page to determine a rough estimate of how important the website is.
   The underlying assumption is that more important websites are likely
   to receive more links from other websites.

   Under the random surfer model a surfer either follows an outgoing link
   of the current page, with a probability equal to the damping factor, or
   teleports to a random page of the graph. Scores are the probabilities
   that the surfer lands on each page: every score is in [0, 1] and all
   scores add up to 1.
*/

// ScoreProperty is the node value that holds the PageRank score.
const ScoreProperty = "score"

// Config holds the parameters of a PageRank run.
type Config struct {
	// The probability that a surfer follows an outgoing link.
	DampingFactor float64

	// The run stops once the sum of absolute score differences between
	// two supersteps falls below this value.
	MinSADForConvergence float64

	// Engine parameters.
	Pregel pregel.Config

	// Receives progress notifications. Optional.
	Tracker progress.Tracker
}

func (cfg *Config) validate() error {
	var err error
	if cfg.DampingFactor < 0 || cfg.DampingFactor > 1.0 {
		err = multierror.Append(err, xerrors.Errorf("damping factor must be in the range [0, 1]"))
	}
	if cfg.MinSADForConvergence <= 0 {
		err = multierror.Append(err, xerrors.Errorf("min SAD for convergence must be greater than 0"))
	}
	return err
}

// Ranker executes the iterative version of the PageRank algorithm
// on a graph until the desired level of convergence is reached.
type Ranker struct {
	cfg Config
}

// NewRanker returns a new Ranker instance using the provided config
// options.
func NewRanker(cfg Config) (*Ranker, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("PageRank ranker config validation failed: %w", err)
	}
	return &Ranker{cfg: cfg}, nil
}

// Executor creates a pregel executor that computes the PageRank scores
// of g.
func (r *Ranker) Executor(g graph.Graph) (*pregel.Executor[Config, float64], error) {
	schema, err := pregel.NewSchemaBuilder().Add(ScoreProperty, graph.Double).Build()
	if err != nil {
		return nil, err
	}

	return pregel.NewExecutor(pregel.ExecutorConfig[Config, float64]{
		Graph:           g,
		Config:          r.cfg.Pregel,
		AlgorithmConfig: r.cfg,
		Schema:          schema,
		Program:         program{},
		Messenger:       message.NewReducingMessenger[float64](g.NodeCount(), reducers.Sum{}),
		Aggregators:     newAggregators(),
		Tracker:         r.cfg.Tracker,
	})
}

// Run computes the PageRank scores of g.
func (r *Ranker) Run(ctx context.Context, g graph.Graph) (*pregel.Result, error) {
	ex, err := r.Executor(g)
	if err != nil {
		return nil, err
	}
	return ex.Run(ctx)
}

// newAggregators creates the aggregator instances that we need to run the
// PageRank ranker algorithm.
func newAggregators() map[string]pregel.Aggregator {
	return map[string]pregel.Aggregator{
		"residual_0": new(aggregators.Float64Aggregator),
		"residual_1": new(aggregators.Float64Aggregator),
		"SAD":        new(aggregators.Float64Aggregator),
	}
}

// residualOutputAccName returns the name of the aggregator where the
// residual PageRank scores for the specified superstep are to be written to.
func residualOutputAccName(superstep int) string {
	if superstep%2 == 0 {
		return "residual_0"
	}
	return "residual_1"
}

// residualInputAccName returns the name of the aggregator where the
// residual PageRank scores for the specified superstep are to be read from.
func residualInputAccName(superstep int) string {
	if (superstep+1)%2 == 0 {
		return "residual_0"
	}
	return "residual_1"
}
