package mock

import (
	"github.com/google/uuid"

	evalkit "github.com/jamesainslie/go-evalkit"
)

// Model names shown on the dashboard.
const (
	XGBoost            = "XGBoost"
	LightGBM           = "LightGBM"
	RandomForest       = "RandomForest"
	LogisticRegression = "LogisticRegression"
	Ensemble           = "Ensemble"
)

// Models lists every model in comparison order; the ensemble comes last.
var Models = []string{XGBoost, LightGBM, RandomForest, LogisticRegression, Ensemble}

// ModelPerformance holds headline metrics for one model.
type ModelPerformance struct {
	Model        string  `json:"model"`
	Accuracy     float64 `json:"accuracy"`
	Precision    float64 `json:"precision"`
	Recall       float64 `json:"recall"`
	F1           float64 `json:"f1"`
	AUC          float64 `json:"auc"`
	TrainSeconds float64 `json:"trainSeconds"`
}

// Ways of combining the base models.
const (
	Voting          = "Voting"
	Stacking        = "Stacking"
	WeightedAverage = "WeightedAverage"
	Bagging         = "Bagging"
	Boosting        = "Boosting"
)

// EnsembleStrategies lists the ensemble methods in comparison order.
var EnsembleStrategies = []string{Voting, Stacking, WeightedAverage, Bagging, Boosting}

// EnsembleMethod holds metrics for one ensemble strategy.
type EnsembleMethod struct {
	Method       string  `json:"method"`
	Accuracy     float64 `json:"accuracy"`
	Precision    float64 `json:"precision"`
	Recall       float64 `json:"recall"`
	F1           float64 `json:"f1"`
	AUC          float64 `json:"auc"`
	Complexity   int     `json:"complexity"`
	TrainSeconds float64 `json:"trainSeconds"`
}

// ConfusionReport pairs a confusion matrix with its derived metrics.
type ConfusionReport struct {
	Counts  evalkit.Counts    `json:"counts"`
	Metrics evalkit.MetricSet `json:"metrics"`
}

// Curve is a synthesized ROC or PR curve with its area (AUC or AP).
type Curve struct {
	Kind   string          `json:"kind"`
	Points []evalkit.Point `json:"points"`
	Area   float64         `json:"area"`
}

// CustomerPrediction is one scored customer.
type CustomerPrediction struct {
	ID          int     `json:"id"`
	Probability float64 `json:"probability"`
	Prediction  int     `json:"prediction"`
	Actual      int     `json:"actual"`
}

// Distribution is the histogram of one feature.
type Distribution struct {
	Feature   string                  `json:"feature"`
	Histogram evalkit.HistogramResult `json:"histogram"`
}

// FeatureCorrelation is the Pearson correlation of two features.
type FeatureCorrelation struct {
	Feature1    string  `json:"feature1"`
	Feature2    string  `json:"feature2"`
	Correlation float64 `json:"correlation"`
}

// FeatureImportance is a normalised importance score.
type FeatureImportance struct {
	Name       string  `json:"name"`
	Importance float64 `json:"importance"`
}

// TrainingHistory holds per-epoch loss and accuracy curves.
type TrainingHistory struct {
	Epochs    []int     `json:"epochs"`
	TrainLoss []float64 `json:"trainLoss"`
	ValLoss   []float64 `json:"valLoss"`
	TrainAcc  []float64 `json:"trainAcc"`
	ValAcc    []float64 `json:"valAcc"`
}

// BalancingStrategy summarises one class-imbalance treatment.
type BalancingStrategy struct {
	Name     string  `json:"name"`
	Ratio    string  `json:"ratio"`
	Accuracy float64 `json:"accuracy"`
	Recall   float64 `json:"recall"`
	F1       float64 `json:"f1"`
}

// ClassBalance counts samples per class.
type ClassBalance struct {
	Negative int `json:"negative"`
	Positive int `json:"positive"`
}

// ImbalanceDistribution compares class counts before and after resampling.
type ImbalanceDistribution struct {
	Method   string       `json:"method"`
	Original ClassBalance `json:"original"`
	Balanced ClassBalance `json:"balanced"`
}

// ResamplingResult holds model metrics after training on data resampled by
// Method.
type ResamplingResult struct {
	Method    string       `json:"method"`
	Accuracy  float64      `json:"accuracy"`
	Precision float64      `json:"precision"`
	Recall    float64      `json:"recall"`
	F1        float64      `json:"f1"`
	AUC       float64      `json:"auc"`
	Sample    ClassBalance `json:"sampleRatio"`
}

// Snapshot aggregates everything the dashboard overview shows.
type Snapshot struct {
	ID            uuid.UUID           `json:"id"`
	Models        []ModelPerformance  `json:"models"`
	Confusion     ConfusionReport     `json:"confusion"`
	ROC           Curve               `json:"roc"`
	PR            Curve               `json:"pr"`
	Threshold     evalkit.SweepResult `json:"threshold"`
	Predictions   Distribution        `json:"predictions"`
	Distributions []Distribution      `json:"distributions"`
	Importance    []FeatureImportance `json:"importance"`
	History       TrainingHistory     `json:"history"`
}
