// Package validation turns invalid input into *errors.AppError values (400).
//
// Request bodies are checked with struct tags through go-playground/validator;
// use-case commands are checked programmatically so the same rules hold
// regardless of the transport.
//
// # Struct Tag Validation
//
//	type createPostRequest struct {
//	    Content string `json:"content" validate:"notblank,max=2000"`
//	}
//	err := validation.Validate(req)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("content", cmd.Content)
//	v.MaxLength("content", cmd.Content, 2000)
//	err := v.Error()
package validation
