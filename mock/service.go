// Package mock generates the synthetic data behind the evaluation dashboard.
// Every figure is random but shaped like the output of a real transaction
// prediction pipeline; curves, confusion metrics, sweeps and histograms go
// through the evalkit functions so their invariants hold.
package mock

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	evalkit "github.com/jamesainslie/go-evalkit"
)

const (
	confusionTotal = 10000
	positiveRate   = 0.1
	customerIDBase = 1000000

	predictionFeature = "probability"
)

// Service produces dashboard data. It is safe for concurrent use.
type Service struct {
	pool   *Pool
	logger *slog.Logger
}

// New creates a Service.
func New(opts ...Option) *Service {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Service{
		pool:   NewPool(cfg.seed, cfg.poolSize),
		logger: cfg.logger,
	}
}

// Close releases the generator pool.
func (s *Service) Close() error {
	return s.pool.Close()
}

// withRand runs fn with a generator held exclusively for its duration.
func (s *Service) withRand(ctx context.Context, fn func(*rand.Rand) error) error {
	rng, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Release(rng)

	return fn(rng)
}

// ModelPerformance returns headline metrics for model. The ensemble scores
// higher and trains longer than the individual models.
func (s *Service) ModelPerformance(ctx context.Context, model string) (ModelPerformance, error) {
	var perf ModelPerformance
	err := s.withRand(ctx, func(rng *rand.Rand) error {
		perf = modelPerformance(rng, model)
		return nil
	})
	return perf, err
}

func modelPerformance(rng *rand.Rand, model string) ModelPerformance {
	base := ModelPerformance{Model: model}
	if model == Ensemble {
		base.Accuracy, base.Precision, base.Recall, base.F1, base.AUC, base.TrainSeconds = 0.88, 0.85, 0.8, 0.85, 0.9, 100
	} else {
		base.Accuracy, base.Precision, base.Recall, base.F1, base.AUC, base.TrainSeconds = 0.83, 0.78, 0.7, 0.75, 0.82, 20
	}

	base.Accuracy += rng.Float64() * 0.1
	base.Precision += rng.Float64() * 0.15
	base.Recall += rng.Float64() * 0.2
	base.F1 += rng.Float64() * 0.15
	base.AUC += rng.Float64() * 0.1
	base.TrainSeconds += rng.Float64() * 50
	return base
}

// ModelComparison returns performance for every model in Models.
func (s *Service) ModelComparison(ctx context.Context) ([]ModelPerformance, error) {
	var perfs []ModelPerformance
	err := s.withRand(ctx, func(rng *rand.Rand) error {
		perfs = make([]ModelPerformance, len(Models))
		for i, m := range Models {
			perfs[i] = modelPerformance(rng, m)
		}
		return nil
	})
	return perfs, err
}

// EnsembleMethods returns performance, relative complexity (1 to 5) and
// training time for each way of combining the base models.
func (s *Service) EnsembleMethods(ctx context.Context) ([]EnsembleMethod, error) {
	var methods []EnsembleMethod
	err := s.withRand(ctx, func(rng *rand.Rand) error {
		methods = make([]EnsembleMethod, len(EnsembleStrategies))
		for i, name := range EnsembleStrategies {
			methods[i] = EnsembleMethod{
				Method:       name,
				Accuracy:     0.85 + rng.Float64()*0.1,
				Precision:    0.8 + rng.Float64()*0.15,
				Recall:       0.75 + rng.Float64()*0.2,
				F1:           0.8 + rng.Float64()*0.15,
				AUC:          0.85 + rng.Float64()*0.1,
				Complexity:   1 + rng.Intn(5),
				TrainSeconds: 50 + rng.Float64()*100,
			}
		}
		return nil
	})
	return methods, err
}

// ConfusionMatrix returns a 10 000-sample confusion matrix and its metrics.
func (s *Service) ConfusionMatrix(ctx context.Context) (ConfusionReport, error) {
	var report ConfusionReport
	err := s.withRand(ctx, func(rng *rand.Rand) error {
		var err error
		report, err = confusionMatrix(rng)
		return err
	})
	return report, err
}

func confusionMatrix(rng *rand.Rand) (ConfusionReport, error) {
	tn := int(math.Floor(rng.Float64()*3000 + 6000))
	tp := int(math.Floor(rng.Float64()*500 + 500))
	fp := int(math.Floor(float64(confusionTotal-tn-tp) * rng.Float64()))
	fn := confusionTotal - tn - tp - fp

	counts := evalkit.Counts{TruePositive: tp, TrueNegative: tn, FalsePositive: fp, FalseNegative: fn}
	metrics, err := evalkit.ComputeMetrics(counts)
	if err != nil {
		return ConfusionReport{}, fmt.Errorf("confusion metrics: %w", err)
	}
	return ConfusionReport{Counts: counts, Metrics: metrics}, nil
}

// ROCCurve returns a synthesized ROC curve of n points and its AUC.
func (s *Service) ROCCurve(ctx context.Context, n int) (Curve, error) {
	return s.curve(ctx, evalkit.ROC, n)
}

// PRCurve returns a synthesized PR curve of n points and its average precision.
func (s *Service) PRCurve(ctx context.Context, n int) (Curve, error) {
	return s.curve(ctx, evalkit.PR, n)
}

func (s *Service) curve(ctx context.Context, kind evalkit.CurveKind, n int) (Curve, error) {
	var c Curve
	err := s.withRand(ctx, func(rng *rand.Rand) error {
		var err error
		c, err = s.synthesize(rng, kind, n)
		return err
	})
	return c, err
}

func (s *Service) synthesize(rng *rand.Rand, kind evalkit.CurveKind, n int) (Curve, error) {
	syn := evalkit.NewSynthesizer(
		evalkit.WithSource(rand.NewSource(rng.Int63())),
		evalkit.WithLogger(s.logger),
	)
	points, err := syn.Generate(kind, n)
	if err != nil {
		return Curve{}, err
	}
	return Curve{Kind: kind.String(), Points: points, Area: evalkit.Area(points)}, nil
}

// CustomerPredictions returns n scored customers. About one in ten is an
// actual transactor, and transactors tend to score higher.
func (s *Service) CustomerPredictions(ctx context.Context, n int) ([]CustomerPrediction, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: customer count %d", evalkit.ErrInvalidInput, n)
	}

	var preds []CustomerPrediction
	err := s.withRand(ctx, func(rng *rand.Rand) error {
		preds = customerPredictions(rng, n)
		return nil
	})
	return preds, err
}

func customerPredictions(rng *rand.Rand, n int) []CustomerPrediction {
	preds := make([]CustomerPrediction, n)
	for i := range preds {
		actual := 0
		centre := 0.3
		if rng.Float64() < positiveRate {
			actual = 1
			centre = 0.65
		}
		p := clamp01(centre + 0.2*rng.NormFloat64())

		prediction := 0
		if p >= 0.5 {
			prediction = 1
		}
		preds[i] = CustomerPrediction{
			ID:          customerIDBase + i,
			Probability: p,
			Prediction:  prediction,
			Actual:      actual,
		}
	}
	return preds
}

// Samples converts predictions into labelled samples for evalkit.
func Samples(preds []CustomerPrediction) []evalkit.Sample {
	samples := make([]evalkit.Sample, len(preds))
	for i, p := range preds {
		samples[i] = evalkit.Sample{Probability: p.Probability, Label: p.Actual}
	}
	return samples
}

// ThresholdOptimization sweeps the decision threshold over n synthetic
// customers.
func (s *Service) ThresholdOptimization(ctx context.Context, n int, step float64) (evalkit.SweepResult, error) {
	preds, err := s.CustomerPredictions(ctx, n)
	if err != nil {
		return evalkit.SweepResult{}, err
	}

	result, err := evalkit.Sweep(Samples(preds), step)
	if err != nil {
		return evalkit.SweepResult{}, err
	}
	s.logger.Debug("threshold sweep", "customers", n, "step", step,
		"optimal", result.OptimalThreshold, "maxF1", result.MaxF1)
	return result, nil
}

// PredictionDistribution bins the predicted probabilities of n synthetic
// customers.
func (s *Service) PredictionDistribution(ctx context.Context, n, bins int) (Distribution, error) {
	preds, err := s.CustomerPredictions(ctx, n)
	if err != nil {
		return Distribution{}, err
	}
	return predictionDistribution(preds, bins)
}

func predictionDistribution(preds []CustomerPrediction, bins int) (Distribution, error) {
	probs := make([]float64, len(preds))
	for i, p := range preds {
		probs[i] = p.Probability
	}

	h, err := evalkit.Bin(probs, bins)
	if err != nil {
		return Distribution{}, fmt.Errorf("prediction distribution: %w", err)
	}
	return Distribution{Feature: predictionFeature, Histogram: h}, nil
}

// FeatureDistribution draws n values of a roughly normal feature and bins them.
func (s *Service) FeatureDistribution(ctx context.Context, feature string, n, bins int) (Distribution, error) {
	if n < 0 {
		return Distribution{}, fmt.Errorf("%w: sample count %d", evalkit.ErrInvalidInput, n)
	}

	var d Distribution
	err := s.withRand(ctx, func(rng *rand.Rand) error {
		var err error
		d, err = featureDistribution(rng, feature, n, bins)
		return err
	})
	return d, err
}

func featureDistribution(rng *rand.Rand, feature string, n, bins int) (Distribution, error) {
	mean := rng.Float64()*2 - 1
	std := 0.2 + rng.Float64()*0.3

	values := make([]float64, n)
	for i := range values {
		values[i] = mean + std*rng.NormFloat64()
	}

	h, err := evalkit.Bin(values, bins)
	if err != nil {
		return Distribution{}, fmt.Errorf("feature %s: %w", feature, err)
	}
	return Distribution{Feature: feature, Histogram: h}, nil
}

// FeatureCorrelations draws rows observations of features var_0..var_{n-1}
// that share one latent factor and returns the Pearson correlation of every
// pair, in (i, j) order with i < j.
func (s *Service) FeatureCorrelations(ctx context.Context, features, rows int) ([]FeatureCorrelation, error) {
	if features < 0 {
		return nil, fmt.Errorf("%w: feature count %d", evalkit.ErrInvalidInput, features)
	}
	if rows < 2 {
		return nil, fmt.Errorf("%w: %d rows, need at least 2 to correlate", evalkit.ErrInvalidInput, rows)
	}

	var corr []FeatureCorrelation
	err := s.withRand(ctx, func(rng *rand.Rand) error {
		corr = featureCorrelations(rng, features, rows)
		return nil
	})
	return corr, err
}

func featureCorrelations(rng *rand.Rand, features, rows int) []FeatureCorrelation {
	loadings := make([]float64, features)
	for j := range loadings {
		loadings[j] = (rng.Float64()*2 - 1) * 0.9
	}

	columns := make([][]float64, features)
	for j := range columns {
		columns[j] = make([]float64, rows)
	}
	for r := 0; r < rows; r++ {
		z := rng.NormFloat64()
		for j, a := range loadings {
			columns[j][r] = a*z + math.Sqrt(1-a*a)*rng.NormFloat64()
		}
	}

	corr := make([]FeatureCorrelation, 0, features*(features-1)/2)
	for i := 0; i < features; i++ {
		for j := i + 1; j < features; j++ {
			corr = append(corr, FeatureCorrelation{
				Feature1:    fmt.Sprintf("var_%d", i),
				Feature2:    fmt.Sprintf("var_%d", j),
				Correlation: stat.Correlation(columns[i], columns[j], nil),
			})
		}
	}
	return corr
}

// FeatureImportance returns n features named var_0..var_{n-1} with
// importances summing to 1, most important first.
func (s *Service) FeatureImportance(ctx context.Context, n int) ([]FeatureImportance, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: feature count %d", evalkit.ErrInvalidInput, n)
	}

	var fi []FeatureImportance
	err := s.withRand(ctx, func(rng *rand.Rand) error {
		fi = featureImportance(rng, n)
		return nil
	})
	return fi, err
}

func featureImportance(rng *rand.Rand, n int) []FeatureImportance {
	fi := make([]FeatureImportance, n)
	var sum float64
	for i := range fi {
		fi[i] = FeatureImportance{Name: fmt.Sprintf("var_%d", i), Importance: rng.Float64()}
		sum += fi[i].Importance
	}
	if sum > 0 {
		for i := range fi {
			fi[i].Importance /= sum
		}
	}

	sort.SliceStable(fi, func(i, j int) bool {
		return fi[i].Importance > fi[j].Importance
	})
	return fi
}

// TrainingHistory returns exponentially converging loss and accuracy curves.
func (s *Service) TrainingHistory(ctx context.Context, epochs int) (TrainingHistory, error) {
	if epochs < 0 {
		return TrainingHistory{}, fmt.Errorf("%w: epoch count %d", evalkit.ErrInvalidInput, epochs)
	}

	var h TrainingHistory
	err := s.withRand(ctx, func(rng *rand.Rand) error {
		h = trainingHistory(rng, epochs)
		return nil
	})
	return h, err
}

func trainingHistory(rng *rand.Rand, epochs int) TrainingHistory {
	h := TrainingHistory{
		Epochs:    make([]int, epochs),
		TrainLoss: make([]float64, epochs),
		ValLoss:   make([]float64, epochs),
		TrainAcc:  make([]float64, epochs),
		ValAcc:    make([]float64, epochs),
	}
	for i := 0; i < epochs; i++ {
		e := float64(i + 1)
		h.Epochs[i] = i + 1
		h.TrainLoss[i] = 0.7*math.Exp(-e/15) + 0.1 + rng.Float64()*0.05
		h.ValLoss[i] = 0.7*math.Exp(-e/12) + 0.15 + rng.Float64()*0.07
		h.TrainAcc[i] = 1 - 0.5*math.Exp(-e/10) - rng.Float64()*0.03
		h.ValAcc[i] = 1 - 0.5*math.Exp(-e/8) - 0.05 - rng.Float64()*0.05
	}
	return h
}

// Snapshot gathers the overview page in one call, using a single generator
// so a seeded service always yields the same snapshot.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.withRand(ctx, func(rng *rand.Rand) error {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return fmt.Errorf("snapshot id: %w", err)
		}
		snap.ID = id

		snap.Models = make([]ModelPerformance, len(Models))
		for i, m := range Models {
			snap.Models[i] = modelPerformance(rng, m)
		}

		if snap.Confusion, err = confusionMatrix(rng); err != nil {
			return err
		}
		if snap.ROC, err = s.synthesize(rng, evalkit.ROC, 12); err != nil {
			return err
		}
		if snap.PR, err = s.synthesize(rng, evalkit.PR, 12); err != nil {
			return err
		}

		preds := customerPredictions(rng, 100)
		if snap.Threshold, err = evalkit.Sweep(Samples(preds), 0.05); err != nil {
			return err
		}
		if snap.Predictions, err = predictionDistribution(preds, 20); err != nil {
			return err
		}

		for i := 0; i < 6; i++ {
			d, err := featureDistribution(rng, fmt.Sprintf("var_%d", i), 500, 20)
			if err != nil {
				return err
			}
			snap.Distributions = append(snap.Distributions, d)
		}

		snap.Importance = featureImportance(rng, 30)
		snap.History = trainingHistory(rng, 50)
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}

	s.logger.Info("dashboard snapshot generated", "id", snap.ID.String())
	return snap, nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
