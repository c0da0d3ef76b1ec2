package lint

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// DecodeOptions decodes rule options into a struct tagged with `option:"..."`.
// Strings such as "40" from environment variables are converted to the
// field's type.
func DecodeOptions(opts map[string]any, out any) error {
	if len(opts) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "option",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return fmt.Errorf("failed to create option decoder: %w", err)
	}
	if err := dec.Decode(opts); err != nil {
		return fmt.Errorf("invalid rule options: %w", err)
	}
	return nil
}
