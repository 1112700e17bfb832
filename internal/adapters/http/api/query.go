package api

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/okian/coachlens/internal/domain/model"
)

// keyFrom reads the dataset and view query parameters. Either may be empty;
// the service resolves the defaults.
func keyFrom(r *http.Request) model.Key {
	q := r.URL.Query()
	return model.Key{
		Dataset: strings.TrimSpace(q.Get("dataset")),
		View:    strings.TrimSpace(q.Get("view")),
	}
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrBadRequest, name)
	}
	return n, nil
}

func floatParam(r *http.Request, name string, def float64) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrBadRequest, name)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s must be finite", ErrBadRequest, name)
	}
	return f, nil
}

func boolParam(r *http.Request, name string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", ErrBadRequest, name)
	}
	return b, nil
}

// maxMillis is the largest millisecond count a time.Duration holds.
const maxMillis = math.MaxInt64 / int64(time.Millisecond)

// millisParam reads a millisecond count. Negative values pass through for
// the service to reject.
func millisParam(r *http.Request, name string) (time.Duration, error) {
	n, err := intParam(r, name, 0)
	if err != nil {
		return 0, err
	}
	if int64(n) > maxMillis || int64(n) < -maxMillis {
		return 0, fmt.Errorf("%w: %s is out of range", ErrBadRequest, name)
	}
	return time.Duration(n) * time.Millisecond, nil
}
