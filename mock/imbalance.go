package mock

import (
	"context"
	"fmt"
	"math/rand"

	evalkit "github.com/jamesainslie/go-evalkit"
)

// Resampling methods compared on the imbalance page.
const (
	Original          = "Original"
	SMOTE             = "SMOTE"
	ADASYN            = "ADASYN"
	RandomOversample  = "RandomOversample"
	RandomUndersample = "RandomUndersample"
	NearMiss          = "NearMiss"
	TomekLinks        = "TomekLinks"
	SMOTEENN          = "SMOTEENN"
	SMOTETomek        = "SMOTETomek"
	CostSensitive     = "CostSensitive"
)

var originalBalance = ClassBalance{Negative: 9000, Positive: 1000}

var balanced = map[string]ClassBalance{
	Original:          originalBalance,
	SMOTE:             {Negative: 9000, Positive: 4500},
	ADASYN:            {Negative: 9000, Positive: 6000},
	RandomOversample:  {Negative: 9000, Positive: 9000},
	RandomUndersample: {Negative: 1000, Positive: 1000},
	NearMiss:          {Negative: 1200, Positive: 1000},
	TomekLinks:        {Negative: 8500, Positive: 1000},
	SMOTEENN:          {Negative: 7000, Positive: 5800},
	SMOTETomek:        {Negative: 8000, Positive: 7000},
	CostSensitive:     originalBalance,
}

// resampledConfusion holds held-out confusion counts per method. Methods not
// listed use defaultResampledConfusion.
var resampledConfusion = map[string]evalkit.Counts{
	Original:          {TrueNegative: 8500, FalsePositive: 500, FalseNegative: 400, TruePositive: 600},
	SMOTE:             {TrueNegative: 8000, FalsePositive: 1000, FalseNegative: 200, TruePositive: 800},
	ADASYN:            {TrueNegative: 7800, FalsePositive: 1200, FalseNegative: 180, TruePositive: 820},
	RandomOversample:  {TrueNegative: 7500, FalsePositive: 1500, FalseNegative: 150, TruePositive: 850},
	RandomUndersample: {TrueNegative: 700, FalsePositive: 300, FalseNegative: 150, TruePositive: 850},
}

var defaultResampledConfusion = evalkit.Counts{TrueNegative: 8000, FalsePositive: 1000, FalseNegative: 300, TruePositive: 700}

// BalancingStrategies returns the fixed comparison table of resampling methods.
func BalancingStrategies() []BalancingStrategy {
	return []BalancingStrategy{
		{Name: Original, Ratio: "1:9", Accuracy: 0.91, Recall: 0.62, F1: 0.72},
		{Name: SMOTE, Ratio: "1:2", Accuracy: 0.87, Recall: 0.78, F1: 0.81},
		{Name: ADASYN, Ratio: "1:1.5", Accuracy: 0.86, Recall: 0.79, F1: 0.82},
		{Name: RandomOversample, Ratio: "1:1", Accuracy: 0.85, Recall: 0.81, F1: 0.80},
		{Name: RandomUndersample, Ratio: "1:1", Accuracy: 0.83, Recall: 0.82, F1: 0.79},
		{Name: NearMiss, Ratio: "1:1", Accuracy: 0.81, Recall: 0.83, F1: 0.78},
		{Name: TomekLinks, Ratio: "1:7", Accuracy: 0.89, Recall: 0.68, F1: 0.75},
		{Name: SMOTEENN, Ratio: "1:1.2", Accuracy: 0.86, Recall: 0.80, F1: 0.82},
		{Name: SMOTETomek, Ratio: "1:1.1", Accuracy: 0.87, Recall: 0.79, F1: 0.82},
		{Name: CostSensitive, Ratio: "1:9", Accuracy: 0.88, Recall: 0.75, F1: 0.80},
	}
}

// Imbalance returns class counts before and after applying method.
func Imbalance(method string) (ImbalanceDistribution, error) {
	b, ok := balanced[method]
	if !ok {
		return ImbalanceDistribution{}, fmt.Errorf("%w: unknown resampling method %q", evalkit.ErrInvalidInput, method)
	}
	return ImbalanceDistribution{Method: method, Original: originalBalance, Balanced: b}, nil
}

// ImbalanceConfusionMatrix returns the confusion matrix of a model trained on
// data resampled by method, with its derived metrics.
func ImbalanceConfusionMatrix(method string) (ConfusionReport, error) {
	if _, ok := balanced[method]; !ok {
		return ConfusionReport{}, fmt.Errorf("%w: unknown resampling method %q", evalkit.ErrInvalidInput, method)
	}

	counts, ok := resampledConfusion[method]
	if !ok {
		counts = defaultResampledConfusion
	}
	metrics, err := evalkit.ComputeMetrics(counts)
	if err != nil {
		return ConfusionReport{}, fmt.Errorf("%s confusion metrics: %w", method, err)
	}
	return ConfusionReport{Counts: counts, Metrics: metrics}, nil
}

// ImbalanceMethodsComparison returns model metrics and resampled class
// counts for every method in BalancingStrategies order.
func (s *Service) ImbalanceMethodsComparison(ctx context.Context) ([]ResamplingResult, error) {
	var results []ResamplingResult
	err := s.withRand(ctx, func(rng *rand.Rand) error {
		strategies := BalancingStrategies()
		results = make([]ResamplingResult, len(strategies))
		for i, st := range strategies {
			results[i] = ResamplingResult{
				Method:    st.Name,
				Accuracy:  0.8 + rng.Float64()*0.15,
				Precision: 0.75 + rng.Float64()*0.2,
				Recall:    0.7 + rng.Float64()*0.25,
				F1:        0.75 + rng.Float64()*0.2,
				AUC:       0.8 + rng.Float64()*0.15,
				Sample:    balanced[st.Name],
			}
		}
		return nil
	})
	return results, err
}
