package logs

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"time"
)

var logger = log.New(os.Stdout, "", 0)

// SetOutput redirects structured log lines, mainly for tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// LogJSON writes one JSON object per line. level is one of DEBUG, INFO,
// WARN, ERROR.
func LogJSON(level, message string, fields map[string]any) {
	entry := map[string]any{
		"severity": level,
		"message":  message,
		"time":     time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range fields {
		entry[k] = v
	}
	encoded, err := json.Marshal(entry)
	if err != nil {
		logger.Printf(`{"severity":"ERROR","message":"encode log entry","error":%q}`, err.Error())
		return
	}
	logger.Println(string(encoded))
}
