package utils

import (
	"encoding/json"
	"strings"
	"time"

	"travel-agency/constants"
	"travel-agency/types"

	"github.com/gofiber/fiber/v2"
)

// sanitizeRequestBody strips file content and large encoded payloads from the logged request body
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := c.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		formData := make(map[string]interface{})

		if form, err := c.MultipartForm(); err == nil {
			for key, values := range form.Value {
				if len(values) > 0 {
					formData[key] = values[0]
				}
			}

			for key, files := range form.File {
				fileInfo := make([]map[string]interface{}, len(files))
				for i, file := range files {
					fileInfo[i] = map[string]interface{}{
						"filename": file.Filename,
						"size":     file.Size,
						"content":  "[FILE_CONTENT_REMOVED]",
					}
				}
				formData[key] = fileInfo
			}
		}

		if jsonBytes, err := json.Marshal(formData); err == nil {
			return string(jsonBytes)
		}
		return "[MULTIPART_FORM_DATA]"
	}

	body := string(c.Body())
	if len(body) > 1000 && (strings.Contains(body, "data:image/") ||
		strings.Contains(body, "base64") ||
		isLikelyBase64(body)) {
		return "[LARGE_REQUEST_BODY_WITH_POSSIBLE_FILE_CONTENT]"
	}

	return maskSecrets(body)
}

// maskSecrets hides the password of a login payload.
func maskSecrets(body string) string {
	if !strings.Contains(body, "\"password\"") {
		return body
	}
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return "[UNPARSEABLE_BODY_WITH_CREDENTIALS]"
	}
	if _, ok := payload["password"]; ok {
		payload["password"] = "[REDACTED]"
	}
	masked, err := json.Marshal(payload)
	if err != nil {
		return "[UNPARSEABLE_BODY_WITH_CREDENTIALS]"
	}
	return string(masked)
}

func isLikelyBase64(content string) bool {
	if len(content) < 100 {
		return false
	}

	base64Chars := 0
	for _, char := range content {
		if (char >= 'A' && char <= 'Z') ||
			(char >= 'a' && char <= 'z') ||
			(char >= '0' && char <= '9') ||
			char == '+' || char == '/' || char == '=' {
			base64Chars++
		}
	}

	return float64(base64Chars)/float64(len(content)) > 0.8
}

// CreateSanitizedLogEntry copies the request and response out of the fiber context.
// The context is reused after the handler returns, so nothing may alias its buffers.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	admin, _ := c.Locals(constants.LocalsAdmin).(string)

	return types.LogEntry{
		Method:          method,
		URL:             url,
		ClientIP:        c.IP(),
		Admin:           admin,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  redactAuthorization(string(requestHeaders)),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}

func redactAuthorization(headers string) string {
	lines := strings.Split(headers, "\r\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.ToLower(line), "authorization:") {
			lines[i] = "Authorization: [REDACTED]"
		}
	}
	return strings.Join(lines, "\r\n")
}
