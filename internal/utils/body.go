package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
)

const maxBodyBytes = 1 << 20

// DecodeBody reads a JSON object or an urlencoded form from r into a flat
// map. Form fields keep their first value. An empty body decodes to an empty
// map. Unlike r.ParseForm it also reads form bodies of DELETE requests.
func DecodeBody(r *http.Request) (map[string]any, error) {
	out := map[string]any{}
	if r.Body == nil {
		return out, nil
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return out, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "application/x-www-form-urlencoded" {
		vals, err := url.ParseQuery(string(raw))
		if err != nil {
			return out, err
		}
		for k := range vals {
			out[k] = vals.Get(k)
		}
		return out, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return map[string]any{}, err
	}
	if out == nil {
		return map[string]any{}, errors.New("body is not a JSON object")
	}
	return out, nil
}
