package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts and agents.
const (
	// Export root errors
	ErrRootNotFound  = "ROOT_NOT_FOUND"
	ErrConfigInvalid = "CONFIG_INVALID"

	// Model errors
	ErrModelNotFound  = "MODEL_NOT_FOUND"
	ErrModelAmbiguous = "MODEL_AMBIGUOUS"
	ErrTableNotFound  = "TABLE_NOT_FOUND"

	// Rename errors
	ErrRenameFailed = "RENAME_FAILED"
	ErrInvalidMode  = "INVALID_MODE"

	// Mapping file errors
	ErrMappingNotFound = "MAPPING_NOT_FOUND"
	ErrMappingInvalid  = "MAPPING_INVALID"

	// Backup errors
	ErrBackupNotFound = "BACKUP_NOT_FOUND"
	ErrRestoreFailed  = "RESTORE_FAILED"

	// Report errors
	ErrReportNotFound = "REPORT_NOT_FOUND"
	ErrRebindFailed   = "REBIND_FAILED"

	// Index errors
	ErrDatabaseError = "DATABASE_ERROR"

	// Input errors
	ErrInvalidInput = "INVALID_INPUT"
)
