package util

import (
	"github.com/go-playground/validator/v10"

	"exusiai.dev/cardrank/internal/model/types"
)

func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterStructValidation(rankingRangeOrdered, types.RankingRequest{})

	return validate
}

func rankingRangeOrdered(sl validator.StructLevel) {
	req := sl.Current().Interface().(types.RankingRequest)
	if !req.RangeOrdered() {
		sl.ReportError(req.From, "From", "from", "ltefield", "To")
	}
}
