// Package types defines core data types and enums shared across the flipbook viewer.
package types

// Config holds the application configuration.
type Config struct {
	MinZoom           float64 `json:"min_zoom"`            // lower zoom clamp, default 0.5
	MaxZoom           float64 `json:"max_zoom"`            // upper zoom clamp, default 3.0
	ZoomStep          float64 `json:"zoom_step"`           // discrete zoom increment, default 0.25
	SupersampleFactor int     `json:"supersample_factor"`  // rasterization oversampling over fit scale, >= 2
	FloorWidth        int     `json:"floor_width"`         // minimum planned page width in px
	FloorHeight       int     `json:"floor_height"`        // minimum planned page height in px
	SinglePreload     int     `json:"single_preload"`      // preload radius in single-page mode
	DoublePreload     int     `json:"double_preload"`      // forward preload distance in double-page mode
	FlipLookahead     int     `json:"flip_lookahead"`      // eager render window past the turn target
	ResizeThreshold   int     `json:"resize_threshold"`    // base width delta in px that invalidates the cache
	RenderConcurrency int     `json:"render_concurrency"`  // parallel page renders during batch operations
	MaxDownloadSizeMB int     `json:"max_download_size_mb"` // cap for fetched documents
	WorkDirectory     string  `json:"work_directory"`
	LastFile          string  `json:"last_file"` // last opened document path
}

// LoadPhase describes where the document load pipeline currently is.
type LoadPhase string

const (
	PhaseIdle       LoadPhase = "idle"
	PhaseFetching   LoadPhase = "fetching"
	PhaseDecoding   LoadPhase = "decoding"
	PhaseIndexing   LoadPhase = "indexing"
	PhasePrefetch   LoadPhase = "prefetching"
	PhaseReady      LoadPhase = "ready"
	PhaseLoadFailed LoadPhase = "error"
)

// Status reports the load pipeline state to the frontend.
type Status struct {
	Phase    LoadPhase `json:"phase"`
	Progress int       `json:"progress"` // 0-100
	Message  string    `json:"message"`
	Error    string    `json:"error,omitempty"`
}

// ErrorCode enumerates application error categories.
type ErrorCode string

const (
	ErrDecode       ErrorCode = "DECODE_ERROR"
	ErrRender       ErrorCode = "RENDER_ERROR"
	ErrExtract      ErrorCode = "EXTRACT_ERROR"
	ErrNetwork      ErrorCode = "NETWORK_ERROR"
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrConfig       ErrorCode = "CONFIG_ERROR"
	ErrIO           ErrorCode = "IO_ERROR"
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
)

// AppError is the application error type carrying a category code.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Page    int       `json:"page,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface for AppError
func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// Unwrap returns the underlying cause of the error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError with the given code, message, and optional cause
func NewAppError(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewAppErrorWithDetails creates a new AppError with details
func NewAppErrorWithDetails(code ErrorCode, message, details string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// NewAppErrorWithPage creates a new AppError carrying the page the failure belongs to
func NewAppErrorWithPage(code ErrorCode, message string, page int, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Page:    page,
		Cause:   cause,
	}
}
