package output

import "time"

// ErrorResponse is the standard JSON error format
type ErrorResponse struct {
	Error   string `json:"error" yaml:"error"`
	Code    string `json:"code,omitempty" yaml:"code,omitempty"`
	Details string `json:"details,omitempty" yaml:"details,omitempty"`
}

// NewError creates a new error response
func NewError(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// NewErrorWithDetails creates a new error response with details
func NewErrorWithDetails(msg, details string) ErrorResponse {
	return ErrorResponse{Error: msg, Details: details}
}

// SuccessResponse is a simple success indicator
type SuccessResponse struct {
	Success bool   `json:"success" yaml:"success"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// NewSuccess creates a success response
func NewSuccess(msg string) SuccessResponse {
	return SuccessResponse{Success: true, Message: msg}
}

// TimestampedResponse adds a timestamp to any response
type TimestampedResponse struct {
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

// NewTimestamped creates a timestamped response base
func NewTimestamped() TimestampedResponse {
	return TimestampedResponse{GeneratedAt: Timestamp()}
}

// IssueResponse is a single detected inconsistency in JSON output
type IssueResponse struct {
	Type        string         `json:"type" yaml:"type"`
	Severity    string         `json:"severity" yaml:"severity"`
	Description string         `json:"description" yaml:"description"`
	Details     map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	Indices     []int          `json:"indices,omitempty" yaml:"indices,omitempty"`
}

// DivergenceResponse is a flagged response pair in JSON output
type DivergenceResponse struct {
	ResponseA  int     `json:"response_a" yaml:"response_a"`
	ResponseB  int     `json:"response_b" yaml:"response_b"`
	DiffLines  int     `json:"diff_lines" yaml:"diff_lines"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// ReviewResponse is the output format for the review command
type ReviewResponse struct {
	TimestampedResponse `yaml:",inline"`
	Prompt              string               `json:"prompt" yaml:"prompt"`
	Model               string               `json:"model" yaml:"model"`
	Samples             int                  `json:"num_samples" yaml:"num_samples"`
	Confidence          float64              `json:"confidence_score" yaml:"confidence_score"`
	Band                string               `json:"confidence_band" yaml:"confidence_band"`
	Recommendation      string               `json:"recommendation" yaml:"recommendation"`
	Passed              bool                 `json:"passed" yaml:"passed"`
	Threshold           float64              `json:"threshold" yaml:"threshold"`
	Reason              string               `json:"reason,omitempty" yaml:"reason,omitempty"`
	Inconsistencies     []IssueResponse      `json:"inconsistencies" yaml:"inconsistencies"`
	Consensus           []string             `json:"consensus_parts" yaml:"consensus_parts"`
	Divergences         []DivergenceResponse `json:"divergent_parts" yaml:"divergent_parts"`
	Responses           []string             `json:"responses,omitempty" yaml:"responses,omitempty"`
	ElapsedMS           int64                `json:"elapsed_ms" yaml:"elapsed_ms"`
}

// BatchItemResponse is a single prompt result in batch output
type BatchItemResponse struct {
	Prompt         string  `json:"prompt" yaml:"prompt"`
	Confidence     float64 `json:"confidence_score" yaml:"confidence_score"`
	Band           string  `json:"confidence_band" yaml:"confidence_band"`
	Passed         bool    `json:"passed" yaml:"passed"`
	Recommendation string  `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
	Error          string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// BatchSummaryResponse aggregates a batch run
type BatchSummaryResponse struct {
	Total          int            `json:"total" yaml:"total"`
	Passed         int            `json:"passed" yaml:"passed"`
	Failed         int            `json:"failed" yaml:"failed"`
	Errors         int            `json:"errors" yaml:"errors"`
	MeanConfidence float64        `json:"mean_confidence" yaml:"mean_confidence"`
	MinConfidence  float64        `json:"min_confidence" yaml:"min_confidence"`
	MaxConfidence  float64        `json:"max_confidence" yaml:"max_confidence"`
	BandCounts     map[string]int `json:"band_counts,omitempty" yaml:"band_counts,omitempty"`
}

// BatchResponse is the output format for the batch command
type BatchResponse struct {
	TimestampedResponse `yaml:",inline"`
	Source              string               `json:"source" yaml:"source"`
	Model               string               `json:"model" yaml:"model"`
	Samples             int                  `json:"num_samples" yaml:"num_samples"`
	Items               []BatchItemResponse  `json:"items" yaml:"items"`
	Summary             BatchSummaryResponse `json:"summary" yaml:"summary"`
}

// ModelScoreResponse is one ranked entry in compare output
type ModelScoreResponse struct {
	Model           string  `json:"model" yaml:"model"`
	Confidence      float64 `json:"confidence_score" yaml:"confidence_score"`
	Band            string  `json:"confidence_band" yaml:"confidence_band"`
	Inconsistencies int     `json:"inconsistencies" yaml:"inconsistencies"`
	Error           string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// CompareResponse is the output format for the compare command
type CompareResponse struct {
	TimestampedResponse `yaml:",inline"`
	Prompt              string               `json:"prompt" yaml:"prompt"`
	Samples             int                  `json:"num_samples" yaml:"num_samples"`
	Rankings            []ModelScoreResponse `json:"rankings" yaml:"rankings"`
	Winner              string               `json:"winner,omitempty" yaml:"winner,omitempty"`
	Spread              float64              `json:"spread" yaml:"spread"`
}

// CategoryScoreResponse is one benchmark category result
type CategoryScoreResponse struct {
	Category       string  `json:"category" yaml:"category"`
	Prompts        int     `json:"prompts" yaml:"prompts"`
	MeanConfidence float64 `json:"mean_confidence" yaml:"mean_confidence"`
	High           int     `json:"high_confidence" yaml:"high_confidence"`
	Medium         int     `json:"medium_confidence" yaml:"medium_confidence"`
	Low            int     `json:"low_confidence" yaml:"low_confidence"`
	Flagged        int     `json:"flagged_issues" yaml:"flagged_issues"`
	Failures       int     `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// BenchResponse is the output format for the bench command
type BenchResponse struct {
	TimestampedResponse `yaml:",inline"`
	Model               string                  `json:"model" yaml:"model"`
	Samples             int                     `json:"num_samples" yaml:"num_samples"`
	Categories          []CategoryScoreResponse `json:"categories" yaml:"categories"`
	OverallMean         float64                 `json:"overall_mean" yaml:"overall_mean"`
	ResultsPath         string                  `json:"results_path,omitempty" yaml:"results_path,omitempty"`
}

// GateResponse is the output format for a standalone gate decision
type GateResponse struct {
	TimestampedResponse `yaml:",inline"`
	Confidence          float64 `json:"confidence_score" yaml:"confidence_score"`
	Threshold           float64 `json:"threshold" yaml:"threshold"`
	Passed              bool    `json:"passed" yaml:"passed"`
	Reason              string  `json:"reason,omitempty" yaml:"reason,omitempty"`
}
