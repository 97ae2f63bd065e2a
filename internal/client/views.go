package client

import (
	"strconv"
	"strings"

	"github.com/sautiwatch/sautiwatch/internal/models"
)

// ModelOrder is the fixed presentation order shared by the chart series
// and the CSV export.
var ModelOrder = [4]string{"VADER", "TextBlob", "BERT", "Swahili"}

const CSV_HEADER = "Model,Label,Score"

// NormalizedSeries projects a result onto a common [-1,1] axis, one
// entry per model in ModelOrder. Total: a missing block or missing
// score maps to 0, so the chart always has four bars. BERT carries no
// continuous score, only a polarity label, hence the label projection.
func NormalizedSeries(result *models.AnalysisResult) [4]float64 {
	var series [4]float64
	if result == nil {
		return series
	}

	if result.VADER != nil && result.VADER.Compound != nil {
		series[0] = *result.VADER.Compound
	}
	if result.TextBlob != nil && result.TextBlob.Polarity != nil {
		series[1] = *result.TextBlob.Polarity
	}
	if result.BERT != nil {
		series[2] = normalizeBERTLabel(result.BERT.Label)
	}
	if result.Swahili != nil && result.Swahili.Score != nil {
		series[3] = *result.Swahili.Score
	}

	return series
}

func normalizeBERTLabel(label string) float64 {
	switch label {
	case "POSITIVE":
		return 1
	case "NEGATIVE":
		return -1
	default:
		return 0
	}
}

// ToCSV renders the result as a header plus one row per model, columns
// Model,Label,Score. Unlike the chart path, a missing block fails with
// MissingFieldError instead of defaulting. Values are numeric or short
// enumerated labels, so no quoting is performed.
func ToCSV(result *models.AnalysisResult) (string, error) {
	if result == nil || result.VADER == nil {
		return "", &MissingFieldError{Model: "vader"}
	}
	if result.TextBlob == nil {
		return "", &MissingFieldError{Model: "textblob"}
	}
	if result.BERT == nil {
		return "", &MissingFieldError{Model: "bert"}
	}
	if result.Swahili == nil {
		return "", &MissingFieldError{Model: "swahili"}
	}

	rows := [][3]string{
		{ModelOrder[0], result.VADER.Label, formatScore(result.VADER.Compound)},
		{ModelOrder[1], result.TextBlob.Label, formatScore(result.TextBlob.Polarity)},
		{ModelOrder[2], result.BERT.Label, formatFloat(normalizeBERTLabel(result.BERT.Label))},
		{ModelOrder[3], result.Swahili.Label, formatScore(result.Swahili.Score)},
	}

	var sb strings.Builder
	sb.WriteString(CSV_HEADER)
	for _, row := range rows {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(row[:], ","))
	}

	return sb.String(), nil
}

func formatScore(score *float64) string {
	if score == nil {
		return formatFloat(0)
	}
	return formatFloat(*score)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
