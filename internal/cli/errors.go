package cli

import (
	"errors"

	"github.com/aidanlsb/fieldmenu/internal/config"
	"github.com/aidanlsb/fieldmenu/internal/metadata"
	"github.com/aidanlsb/fieldmenu/internal/paths"
	"github.com/aidanlsb/fieldmenu/internal/quickedit"
	"github.com/aidanlsb/fieldmenu/internal/vault"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Vault errors
	ErrVaultNotFound     = "VAULT_NOT_FOUND"
	ErrVaultNotSpecified = "VAULT_NOT_SPECIFIED"
	ErrConfigInvalid     = "CONFIG_INVALID"

	// Reference errors
	ErrRefNotFound  = "REF_NOT_FOUND"
	ErrRefAmbiguous = "REF_AMBIGUOUS"
	ErrLinkNotFound = "LINK_NOT_FOUND"

	// File errors
	ErrFileNotMarkdown  = "FILE_NOT_MARKDOWN"
	ErrFileReadError    = "FILE_READ_ERROR"
	ErrFileWriteError   = "FILE_WRITE_ERROR"
	ErrFileOutsideVault = "FILE_OUTSIDE_VAULT"

	// Attribute errors
	ErrFieldNotFound       = "FIELD_NOT_FOUND"
	ErrFrontmatterInvalid  = "FRONTMATTER_INVALID"
	ErrItemNotFound        = "ITEM_NOT_FOUND"
	ErrInvalidValue        = "INVALID_VALUE"
	ErrInteractiveRequired = "INTERACTIVE_REQUIRED"

	// Database errors
	ErrDatabaseError = "DATABASE_ERROR"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnConfigInvalid = "CONFIG_INVALID"
	WarnFieldNotFound = "FIELD_NOT_FOUND"
)

// errReported is returned after an error was already written as JSON, so
// that the process still exits non-zero without printing it twice.
var errReported = errors.New("error reported")

// errInvalidValue is returned when a --value does not fit the affordance.
var errInvalidValue = errors.New("invalid value")

func classifyError(err error) (code, suggestion string) {
	switch {
	case errors.Is(err, vault.ErrAmbiguous):
		return ErrRefAmbiguous, "Use a longer path to pick one file"
	case errors.Is(err, vault.ErrNotFound):
		return ErrRefNotFound, "Check the link or use a vault-relative path"
	case errors.Is(err, vault.ErrNotMarkdown):
		return ErrFileNotMarkdown, "Only markdown notes have attributes"
	case errors.Is(err, paths.ErrPathOutsideVault):
		return ErrFileOutsideVault, ""
	case errors.Is(err, quickedit.ErrNoPrompter):
		return ErrInteractiveRequired, "Run in a terminal or pass --value"
	case errors.Is(err, errInvalidValue):
		return ErrInvalidValue, ""
	case errors.Is(err, config.ErrInvalid):
		return ErrConfigInvalid, "Fix config.toml and try again"
	case errors.Is(err, metadata.ErrMalformed):
		return ErrFrontmatterInvalid, ""
	}
	return ErrInternal, ""
}
