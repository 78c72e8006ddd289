// Package bind decodes and validates an HTTP request body into a struct.
// JSON handles API bodies; Form handles the storefront's urlencoded and
// multipart posts.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/aferchichi/stockshop/config"
	"github.com/aferchichi/stockshop/pkg/validate"
)

// maxBodyBytes returns the configured request body size limit (default 4 MB).
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil || n <= 0 {
		return 4 << 20 // 4 MB
	}
	return n
}

// JSON decodes r.Body as JSON into dest and runs validation.
// The body is capped at MAX_BODY_BYTES (default 4 MB) to prevent memory exhaustion.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	dec := json.NewDecoder(r.Body)
	if err = dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}

	return nil, nil
}

// Form decodes an urlencoded or multipart form into dest by matching form
// field names against `form` tags (falling back to `json` tags), then runs
// validation. Only string, int, and float64 struct fields are supported,
// which covers every form the storefront posts.
func Form(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err = r.ParseMultipartForm(maxBodyBytes()); err != nil {
			return nil, fmt.Errorf("invalid multipart form: %w", err)
		}
	} else {
		r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())
		if err = r.ParseForm(); err != nil {
			return nil, fmt.Errorf("invalid form: %w", err)
		}
	}

	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return nil, errors.New("bind: dest must be a pointer to struct")
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		name := formFieldName(field)
		if name == "" || !r.Form.Has(name) {
			continue
		}
		raw := strings.TrimSpace(r.Form.Get(name))

		fv := rv.Field(i)
		switch fv.Kind() {
		case reflect.String:
			fv.SetString(raw)
		case reflect.Int, reflect.Int64:
			if n, perr := strconv.ParseInt(raw, 10, 64); perr == nil {
				fv.SetInt(n)
			}
		case reflect.Uint, reflect.Uint64:
			if n, perr := strconv.ParseUint(raw, 10, 64); perr == nil {
				fv.SetUint(n)
			}
		case reflect.Float64:
			if f, perr := strconv.ParseFloat(raw, 64); perr == nil {
				fv.SetFloat(f)
			}
		}
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}

	return nil, nil
}

func formFieldName(f reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name := f.Tag.Get(tag)
		if name == "" || name == "-" {
			continue
		}
		if idx := strings.Index(name, ","); idx != -1 {
			name = name[:idx]
		}
		return name
	}
	return strings.ToLower(f.Name)
}
