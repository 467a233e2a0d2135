package cli

import (
	"encoding/json"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/golang/geo/r3"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	goutils "go.viam.com/utils"

	"go.viam.com/broadphase/bvh"
	"go.viam.com/broadphase/logging"
	"go.viam.com/broadphase/spatialmath"
)

type buildArgs struct {
	Config   bvh.Config
	Leaves   int
	Clusters int
	Spread   float64
	Seed     int64
	Rays     int
	Churn    int
}

type buildReport struct {
	Stats       bvh.Stats
	InsertTime  time.Duration
	ChurnTime   time.Duration
	QueryTime   time.Duration
	MeanHits    float64
	MedianHits  float64
	RaysWithHit int
}

// BuildAction is the corresponding Action for 'build'.
func BuildAction(c *cli.Context) error {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	defer goutils.UncheckedErrorFunc(logger.Sync)
	logging.ReplaceGlobal(logger)

	args, err := buildArgsFromContext(c)
	if err != nil {
		return err
	}
	report, err := build(args, logger)
	if err != nil {
		return err
	}

	s := report.Stats
	printf(c.App.Writer, "leaves:           %d", s.Leaves)
	printf(c.App.Writer, "internal nodes:   %d", s.InternalNodes)
	printf(c.App.Writer, "arena slots:      %d", s.ArenaSlots)
	printf(c.App.Writer, "height:           %d", s.Height)
	printf(c.App.Writer, "leaf depth:       mean %.2f, p95 %.0f", s.MeanLeafDepth, s.P95LeafDepth)
	printf(c.App.Writer, "internal area:    %.1f (%.2fx root)", s.InternalArea, s.AreaRatio)
	printf(c.App.Writer, "rotations:        %d", s.Rotations)
	printf(c.App.Writer, "insert time:      %v", report.InsertTime)
	if args.Churn > 0 {
		printf(c.App.Writer, "churn time:       %v", report.ChurnTime)
	}
	if args.Rays > 0 {
		printf(c.App.Writer, "ray casts:        %d in %v, %d with hits", args.Rays, report.QueryTime, report.RaysWithHit)
		printf(c.App.Writer, "hits per ray:     mean %.2f, median %.0f", report.MeanHits, report.MedianHits)
	}
	if s.Height > bvh.TraversalStackSize/2 {
		warningf(c.App.ErrWriter, "tree height %d is close to the traversal stack size %d", s.Height, bvh.TraversalStackSize)
	}
	return nil
}

// newLogger honors --log-level; --debug always wins.
func newLogger(c *cli.Context) (logging.Logger, error) {
	if c.Bool(debugFlag) {
		return logging.NewDebugLogger("bvhstat"), nil
	}
	level, err := logging.LevelFromString(c.String(logLevelFlag))
	if err != nil {
		return nil, errors.Wrapf(err, "bad --%s", logLevelFlag)
	}
	logger := logging.NewLogger("bvhstat")
	logger.SetLevel(level)
	return logger, nil
}

func buildArgsFromContext(c *cli.Context) (buildArgs, error) {
	attributes := map[string]interface{}{}
	if path := c.Path(buildFlagConfig); path != "" {
		//nolint:gosec
		data, err := os.ReadFile(path)
		if err != nil {
			return buildArgs{}, errors.Wrap(err, "cannot read tree config")
		}
		if err := json.Unmarshal(data, &attributes); err != nil {
			return buildArgs{}, errors.Wrapf(err, "cannot parse tree config %q", path)
		}
	}
	if c.IsSet(buildFlagMargin) {
		attributes["bounds_expansion_margin"] = c.Float64(buildFlagMargin)
	}
	if c.IsSet(buildFlagTraversal) {
		attributes["traversal"] = c.String(buildFlagTraversal)
	}
	cfg, err := bvh.DecodeConfig(attributes)
	if err != nil {
		return buildArgs{}, err
	}

	args := buildArgs{
		Config:   cfg,
		Leaves:   c.Int(buildFlagLeaves),
		Clusters: c.Int(buildFlagClusters),
		Spread:   c.Float64(buildFlagSpread),
		Seed:     c.Int64(buildFlagSeed),
		Rays:     c.Int(buildFlagRays),
		Churn:    c.Int(buildFlagChurn),
	}
	return args, args.validate()
}

func (args buildArgs) validate() error {
	switch {
	case args.Leaves < 1:
		return errors.Errorf("--%s must be at least 1", buildFlagLeaves)
	case args.Clusters < 1:
		return errors.Errorf("--%s must be at least 1", buildFlagClusters)
	case !(args.Spread > 0) || math.IsInf(args.Spread, 0):
		return errors.Errorf("--%s must be a positive number", buildFlagSpread)
	case args.Rays < 0:
		return errors.Errorf("--%s cannot be negative", buildFlagRays)
	case args.Churn < 0:
		return errors.Errorf("--%s cannot be negative", buildFlagChurn)
	}
	return nil
}

// build inserts a clustered random scene, churns it, validates the result and casts rays through it.
func build(args buildArgs, logger logging.Logger) (*buildReport, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}
	tree, err := bvh.NewTree(args.Config, logger.Sublogger("bvh"))
	if err != nil {
		return nil, err
	}
	r := rand.New(rand.NewSource(args.Seed))
	report := &buildReport{}

	centers := make([]r3.Vector, args.Clusters)
	for i := range centers {
		centers[i] = randomPoint(r, 10*args.Spread)
	}
	entries := make([]bvh.Entry, args.Leaves)
	for i := range entries {
		entries[i], err = randomEntry(r, centers[i%len(centers)], args.Spread)
		if err != nil {
			return nil, err
		}
	}

	start := time.Now()
	for _, e := range entries {
		if _, err := tree.InsertEntry(e); err != nil {
			return nil, err
		}
	}
	report.InsertTime = time.Since(start)
	logger.Debugw("inserted scene", "leaves", args.Leaves, "duration", report.InsertTime)

	start = time.Now()
	for round := 0; round < args.Churn; round++ {
		leaves := tree.Leaves()
		r.Shuffle(len(leaves), func(i, j int) { leaves[i], leaves[j] = leaves[j], leaves[i] })
		moved := leaves[:len(leaves)/10+1]
		for _, id := range moved {
			e, err := tree.Leaf(id)
			if err != nil {
				return nil, err
			}
			offset := randomPoint(r, args.Spread/4)
			e.Transform = spatialmath.Compose(spatialmath.NewTranslation(offset), e.Transform)
			if err := tree.Reinsert(id, e.Shape, e.Transform, e.Layer); err != nil {
				return nil, err
			}
		}
		logger.Debugw("churn round", "round", round, "moved", len(moved), "internal_area", tree.Stats().InternalArea)
	}
	report.ChurnTime = time.Since(start)

	if err := tree.Validate(); err != nil {
		return nil, errors.Wrap(err, "tree failed validation")
	}
	report.Stats = tree.Stats()

	if args.Rays == 0 {
		return report, nil
	}
	inputs := make([]bvh.RayCastInput, args.Rays)
	for i := range inputs {
		origin := randomPoint(r, 25*args.Spread)
		target := centers[r.Intn(len(centers))].Add(randomPoint(r, args.Spread))
		inputs[i] = bvh.RayCastInput{
			Ray: spatialmath.Ray{Origin: origin, Direction: target.Sub(origin), MaxDistance: 50 * args.Spread},
		}
	}
	start = time.Now()
	results, err := tree.RayCastBatch(inputs)
	if err != nil {
		return nil, err
	}
	report.QueryTime = time.Since(start)

	hits := make(stats.Float64Data, len(results))
	for i, res := range results {
		hits[i] = float64(len(res))
		if len(res) > 0 {
			report.RaysWithHit++
		}
	}
	// Both only fail on empty input.
	report.MeanHits, _ = hits.Mean()
	report.MedianHits, _ = hits.Median()
	return report, nil
}

func randomPoint(r *rand.Rand, radius float64) r3.Vector {
	return r3.Vector{
		X: (2*r.Float64() - 1) * radius,
		Y: (2*r.Float64() - 1) * radius,
		Z: (2*r.Float64() - 1) * radius,
	}
}

// randomEntry returns a box, sphere or capsule placed near center with a random orientation and one of four layers.
func randomEntry(r *rand.Rand, center r3.Vector, spread float64) (bvh.Entry, error) {
	size := 0.5 + r.Float64()*spread/10
	var shape spatialmath.Shape
	var err error
	switch r.Intn(3) {
	case 0:
		shape, err = spatialmath.NewBox(r3.Vector{}, r3.Vector{X: size, Y: size * (0.5 + r.Float64()), Z: size * (0.5 + r.Float64())})
	case 1:
		shape, err = spatialmath.NewSphere(r3.Vector{}, size/2)
	default:
		shape, err = spatialmath.NewCapsule(r3.Vector{X: -size / 2}, r3.Vector{X: size / 2}, size/4)
	}
	if err != nil {
		return bvh.Entry{}, err
	}
	rotation := spatialmath.NewRotationEuler(r.Float64()*2*math.Pi, r.Float64()*2*math.Pi, r.Float64()*2*math.Pi).Rotation
	return bvh.Entry{
		Shape:     shape,
		Transform: spatialmath.NewTransform(center.Add(randomPoint(r, spread)), rotation),
		Layer:     1 << r.Intn(4),
	}, nil
}
