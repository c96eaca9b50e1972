package config

import "github.com/focusplug/focusplug/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errParseEnv = &apperr.Error{
		Message: "parsing environment failed",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid %s duration %q",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s must be between %v and %v, got %v",
	}

	errUnknownBackend = &apperr.Error{
		Message: "unknown notification backend: %s",
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown storage driver: %s",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "invalid log level: %s",
	}

	errInvalidLogRotation = &apperr.Error{
		Message: "log max_size and max_backups must not be negative",
	}
)
