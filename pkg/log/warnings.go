package log

import (
	"github.com/Holisticnature/GeoLearn/pkg/errors"
)

// InstallWarningBridge routes library warnings (ParameterUnsupportedWarning,
// ConvergenceWarning, ...) through the package default Logger instead of the
// stdlib log fallback. Call once at process start.
func InstallWarningBridge() {
	errors.SetZerologWarnFunc(func(warning error) {
		GetLogger().Warn(warning.Error(), ErrAttrKey, warning)
	})
}
