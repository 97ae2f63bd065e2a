package models

// StakeholderCategory selects an analysis profile on the remote service.
// The client validates the enumeration but is otherwise opaque to it.
type StakeholderCategory string

const (
	StakeholderLocalCitizen  StakeholderCategory = "local_citizen"
	StakeholderBusinessOwner StakeholderCategory = "business_owner"
	StakeholderGovernment    StakeholderCategory = "government"
)

func (s StakeholderCategory) Valid() bool {
	switch s {
	case StakeholderLocalCitizen, StakeholderBusinessOwner, StakeholderGovernment:
		return true
	}
	return false
}

type AnalysisRequest struct {
	Text        string              `json:"text"`
	Stakeholder StakeholderCategory `json:"stakeholder"`
}

// Per-model result shapes. Numeric scores are pointers so an upstream
// model failure is representable as a missing field rather than 0.
type (
	VADERResult struct {
		Label    string   `json:"label"`
		Compound *float64 `json:"compound,omitempty"`
	}

	TextBlobResult struct {
		Label    string   `json:"label"`
		Polarity *float64 `json:"polarity,omitempty"`
	}

	// BERTResult carries no continuous score in this integration,
	// only a polarity label.
	BERTResult struct {
		Label string `json:"label"`
	}

	SwahiliResult struct {
		Label string   `json:"label"`
		Score *float64 `json:"score,omitempty"`
	}
)

// AnalysisResult aggregates the four model outputs for one submitted
// text. A nil block means that model failed upstream.
type AnalysisResult struct {
	VADER    *VADERResult    `json:"vader,omitempty"`
	TextBlob *TextBlobResult `json:"textblob,omitempty"`
	BERT     *BERTResult     `json:"bert,omitempty"`
	Swahili  *SwahiliResult  `json:"swahili,omitempty"`
}

type (
	// AnalysisBatchRequest is the wire shape the analysis service
	// accepts; this client always sends a single-element Texts.
	AnalysisBatchRequest struct {
		Texts       []string `json:"texts"`
		Stakeholder string   `json:"stakeholder"`
	}

	AnalysisBatchResponse []AnalysisResult
)

// LogExport is the raw CSV blob the logs endpoint returns. Relayed to
// the user unparsed.
type LogExport []byte
