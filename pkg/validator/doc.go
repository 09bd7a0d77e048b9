// Package validator provides composable validation rules for request input.
//
// A Rule pairs a Check function with translation-friendly error metadata.
// Apply evaluates rules in order and aggregates every failure into a
// ValidationErrors value, which implements error:
//
//	err := validator.Apply(
//	    validator.RequiredString("email", req.Email),
//	    validator.MaxLenString("email", req.Email, 320),
//	    validator.ValidEmail("email", req.Email),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // verrs.Get("email") lists the field's messages
//	}
//
// The package is stateless and goroutine-safe.
package validator
