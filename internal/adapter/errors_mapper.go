package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// toolkitErrorBody is the error envelope returned by the Identity Toolkit API:
//
//	{"error": {"code": 400, "message": "WEAK_PASSWORD : Password should be at least 6 characters"}}
type toolkitErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

var toolkitErrors = map[string]error{
	"EMAIL_EXISTS":                ErrAccountExists,
	"EMAIL_NOT_FOUND":             ErrInvalidCredentials,
	"INVALID_PASSWORD":            ErrInvalidCredentials,
	"INVALID_LOGIN_CREDENTIALS":   ErrInvalidCredentials,
	"INVALID_ID_TOKEN":            ErrInvalidCredentials,
	"WEAK_PASSWORD":               ErrWeakPassword,
	"TOO_MANY_ATTEMPTS_TRY_LATER": ErrTooManyAttempts,
	"USER_DISABLED":               ErrAccountDisabled,
}

func mapIdentityError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}
	if status >= http.StatusInternalServerError {
		return fmt.Errorf("%w: http %d", ErrIdentityUnavailable, status)
	}

	code := toolkitErrorCode(resp.Body())
	if err, ok := toolkitErrors[code]; ok {
		return err
	}
	if code == "" {
		code = http.StatusText(status)
	}

	return fmt.Errorf("%w: %s", ErrIdentityRejected, code)
}

// toolkitErrorCode extracts the machine-readable part of the error message,
// dropping the human-readable suffix after " : ".
func toolkitErrorCode(body []byte) string {
	var parsed toolkitErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}

	code, _, _ := strings.Cut(parsed.Error.Message, " : ")
	return strings.TrimSpace(code)
}
