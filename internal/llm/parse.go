package llm

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vyay-app/vyay/internal/common"
)

// parseExtraction decodes and validates the model's JSON payload. All three
// keys must be present as strings and cost must parse as a decimal number;
// anything less is a validation failure, never a partial result.
func parseExtraction(content string) (ParsedExpense, error) {
	content = cleanMarkdownWrapper(content)

	var jsonResp struct {
		Category *string `json:"category"`
		Cost     *string `json:"cost"`
		Item     *string `json:"item"`
	}

	if err := json.Unmarshal([]byte(content), &jsonResp); err != nil {
		return ParsedExpense{}, fmt.Errorf("%w: failed to parse JSON response: %v", common.ErrValidation, err)
	}

	switch {
	case jsonResp.Category == nil || *jsonResp.Category == "":
		return ParsedExpense{}, fmt.Errorf("%w: missing category", common.ErrValidation)
	case jsonResp.Cost == nil || *jsonResp.Cost == "":
		return ParsedExpense{}, fmt.Errorf("%w: missing cost", common.ErrValidation)
	case jsonResp.Item == nil || *jsonResp.Item == "":
		return ParsedExpense{}, fmt.Errorf("%w: missing item", common.ErrValidation)
	}

	cost, err := decimal.NewFromString(*jsonResp.Cost)
	if err != nil {
		return ParsedExpense{}, fmt.Errorf("%w: cost %q is not a number", common.ErrValidation, *jsonResp.Cost)
	}

	return ParsedExpense{
		Category: *jsonResp.Category,
		Item:     *jsonResp.Item,
		Cost:     cost,
	}, nil
}
