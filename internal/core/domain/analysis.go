package domain

// MBIDimension is one of the three Maslach Burnout Inventory axes.
type MBIDimension string

const (
	EmotionalExhaustion    MBIDimension = "EE"
	Depersonalization      MBIDimension = "DP"
	PersonalAccomplishment MBIDimension = "PA"
)

// MBIDimensions lists the axes in scoring order.
var MBIDimensions = []MBIDimension{EmotionalExhaustion, Depersonalization, PersonalAccomplishment}

// EmotionType classifies the tone of a sentence.
type EmotionType string

const (
	EmotionNegative EmotionType = "negative"
	EmotionNeutral  EmotionType = "neutral"
	EmotionPositive EmotionType = "positive"
)

// Risk levels, by overall score.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
	RiskSevere   = "severe"
)

// DefaultBurnoutScore is assumed when the engine omits an overall score.
const DefaultBurnoutScore = 50.0

// BurnoutFeature is a signal extracted from one sentence.
type BurnoutFeature struct {
	EmotionType     EmotionType    `json:"emotion_type"`
	StressLevel     float64        `json:"stress_level"`
	CynicalThoughts bool           `json:"cynical_thoughts"`
	MBIDimension    []MBIDimension `json:"mbi_dimension"`
	Confidence      float64        `json:"confidence"`
}

// MBIScore is the score for a single dimension.
type MBIScore struct {
	Dimension       MBIDimension `json:"dimension"`
	RawScore        float64      `json:"raw_score"`
	NormalizedScore float64      `json:"normalized_score"`
	Frequency       int          `json:"frequency"`
}

// BurnoutAnalysis is the burnout risk index for a piece of text. The JSON shape
// matches what the analysis engine produces.
type BurnoutAnalysis struct {
	OverallScore           *float64         `json:"overall_score,omitempty"`
	EmotionalExhaustion    *MBIScore        `json:"emotional_exhaustion,omitempty"`
	Depersonalization      *MBIScore        `json:"depersonalization,omitempty"`
	PersonalAccomplishment *MBIScore        `json:"personal_accomplishment,omitempty"`
	Features               []BurnoutFeature `json:"features"`
	TextLength             int              `json:"text_length"`
	SentenceCount          int              `json:"sentence_count"`
	RiskLevel              string           `json:"risk_level,omitempty"`
}

// Score returns the overall score, falling back to DefaultBurnoutScore.
func (a BurnoutAnalysis) Score() float64 {
	if a.OverallScore == nil {
		return DefaultBurnoutScore
	}
	return *a.OverallScore
}

// Sentiment is the coarse tone derived from an analysis.
type Sentiment struct {
	Label      EmotionType `json:"label"`
	Confidence float64     `json:"confidence"`
}

// AnalysisResult is an analysis plus its derived sentiment.
type AnalysisResult struct {
	BurnoutAnalysis
	Sentiment Sentiment `json:"sentiment"`
}

// RiskLevelFor buckets an overall score.
func RiskLevelFor(score float64) string {
	switch {
	case score < 25:
		return RiskLow
	case score < 50:
		return RiskModerate
	case score < 75:
		return RiskHigh
	default:
		return RiskSevere
	}
}
