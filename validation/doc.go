// Package validation checks council inputs: proxy request bodies, query
// text and configuration structs.
//
// Struct tags are checked with go-playground/validator:
//
//	type ProxyRequest struct {
//	    Query string `json:"query" validate:"required"`
//	}
//	err := validation.Validate(req)
//
// Ad hoc checks collect field errors before failing once:
//
//	v := validation.New()
//	v.Required("query", q).MaxLength("query", q, 32000)
//	err := v.Validate()
//
// Both return an *errors.AppError with code INVALID_INPUT whose "fields"
// detail lists every failing field.
package validation
