package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strings"
)

// ErrUnsupportedBindTarget is returned when Bind is given anything but a
// pointer to a struct.
var ErrUnsupportedBindTarget = errors.New("bind: target must be a pointer to a struct")

const defaultMaxBodyBytes = 4 << 20 // 4MB

func (c *requestContext) limitBody() {
	if c.bodyLimited || c.request.Body == nil {
		return
	}
	c.bodyLimited = true
	c.request.Body = http.MaxBytesReader(c.response, c.request.Body, c.maxBodyBytes)
}

func (c *requestContext) isJSON() bool {
	mt, _, err := mime.ParseMediaType(c.request.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func (c *requestContext) BindJSON(v any) error {
	c.limitBody()
	if err := json.NewDecoder(c.request.Body).Decode(v); err != nil {
		return fmt.Errorf("bind json: %w", err)
	}
	return nil
}

// Bind decodes JSON bodies with encoding/json and form bodies into string
// fields tagged `form:"name"`. Fields without a form tag use their json tag.
func (c *requestContext) Bind(v any) error {
	if c.isJSON() {
		return c.BindJSON(v)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return ErrUnsupportedBindTarget
	}

	c.limitBody()
	if err := c.request.ParseForm(); err != nil {
		return fmt.Errorf("bind form: %w", err)
	}

	rv = rv.Elem()
	rt := rv.Type()
	for i := range rt.NumField() {
		f := rt.Field(i)
		if !f.IsExported() || f.Type.Kind() != reflect.String {
			continue
		}
		name := tagName(f)
		if name == "" {
			continue
		}
		if vals, ok := c.request.Form[name]; ok && len(vals) > 0 {
			rv.Field(i).SetString(vals[0])
		}
	}
	return nil
}

func tagName(f reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		tag := f.Tag.Get(key)
		if tag == "-" {
			return ""
		}
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			return name
		}
	}
	return f.Name
}
