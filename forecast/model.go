package forecast

import "time"

// Weight pairs a feature label with its fitted coefficient.
type Weight struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Model is the serializable representation of a fitted forecast. It can
// be persisted as JSON and loaded with NewFromModel to run inference
// without retraining.
type Model struct {
	TrainStart  time.Time `json:"train_start_time"`
	TrainEnd    time.Time `json:"train_end_time"`
	Options     *Options  `json:"options"`
	Scores      *Scores   `json:"scores,omitempty"`
	Intercept   float64   `json:"intercept"`
	Weights     []Weight  `json:"weights"`
	ResidualStd float64   `json:"residual_stddev"`
}
