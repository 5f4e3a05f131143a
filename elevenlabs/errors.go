package elevenlabs

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// QuotaError means the key's usage allowance is exhausted or the account
// is being rate limited. It is the only error that triggers key rotation.
type QuotaError struct {
	StatusCode int
	Status     string
	Detail     string
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("quota exceeded (%d %s): %s", e.StatusCode, e.Status, e.Detail)
}

// APIError is any other non-200 response: bad request, invalid key,
// server error. These never trigger rotation.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Detail)
}

// errorDetail is the error body ElevenLabs returns:
// {"detail": {"status": "quota_exceeded", "message": "..."}}
type errorDetail struct {
	Detail struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"detail"`
}

// Statuses the API reports when the current key cannot serve more
// requests right now.
var quotaStatuses = map[string]bool{
	"quota_exceeded":               true,
	"too_many_concurrent_requests": true,
	"system_busy":                  true,
}

func classifyError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var detail errorDetail
	status := ""
	message := string(body)
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail.Status != "" {
		status = detail.Detail.Status
		message = detail.Detail.Message
	}

	if resp.StatusCode == http.StatusTooManyRequests || quotaStatuses[status] {
		return &QuotaError{
			StatusCode: resp.StatusCode,
			Status:     status,
			Detail:     message,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Detail:     message,
	}
}
