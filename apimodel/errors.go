package apimodel

// ErrorBody is the typed view of an error payload. Servers may add arbitrary
// keys; those land in Extra.
type ErrorBody struct {
	Detail      string              `mapstructure:"detail"`
	FieldErrors map[string][]string `mapstructure:"field_errors"`
	Extra       map[string]any      `mapstructure:",remain"`
}
