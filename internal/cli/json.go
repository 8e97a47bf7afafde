package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Global JSON output flag
var jsonOutput bool

// Response is the standard JSON envelope for all CLI output.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Meta     *Meta       `json:"meta,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Warning represents a non-fatal warning.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta contains metadata about the response.
type Meta struct {
	Count int `json:"count,omitempty"`
}

func outputJSON(w io.Writer, resp Response) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

// outputSuccess writes a successful JSON response, including any config warnings.
func outputSuccess(cmd *cobra.Command, data interface{}, meta *Meta) {
	outputSuccessWithWarnings(cmd, data, nil, meta)
}

func outputSuccessWithWarnings(cmd *cobra.Command, data interface{}, warnings []Warning, meta *Meta) {
	all := append(append([]Warning{}, configWarnings...), warnings...)
	outputJSON(cmd.OutOrStdout(), Response{
		OK:       true,
		Data:     data,
		Warnings: all,
		Meta:     meta,
	})
}

// isJSONOutput returns true if JSON output is enabled.
func isJSONOutput() bool {
	return jsonOutput
}

// handleError handles an error appropriately based on output mode.
// In JSON mode, outputs a JSON error. In text mode, returns the error for Cobra.
func handleError(cmd *cobra.Command, code string, err error, suggestion string) error {
	if jsonOutput {
		outputJSON(cmd.OutOrStdout(), Response{
			OK:    false,
			Error: &ErrorInfo{Code: code, Message: err.Error(), Suggestion: suggestion},
		})
		return errReported
	}
	if suggestion != "" {
		return fmt.Errorf("%w\n\n%s", err, suggestion)
	}
	return err
}

// handleErrorMsg is handleError for a plain message.
func handleErrorMsg(cmd *cobra.Command, code, message, suggestion string) error {
	return handleError(cmd, code, fmt.Errorf("%s", message), suggestion)
}

// handleDomainError picks the error code from the error itself.
func handleDomainError(cmd *cobra.Command, err error) error {
	code, suggestion := classifyError(err)
	return handleError(cmd, code, err, suggestion)
}
