package input

// InputBuilderOption is a functional option for configuring an input manager.
type InputBuilderOption func(*inputImpl)

// WithResetOnFocusLoss sets whether OnBlur clears all held buttons and keys.
//
// Parameters:
//   - enabled: true to reset on focus loss (default)
//
// Returns:
//   - InputBuilderOption: option function to apply
func WithResetOnFocusLoss(enabled bool) InputBuilderOption {
	return func(in *inputImpl) {
		in.resetOnFocusLoss = enabled
	}
}
