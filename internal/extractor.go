package internal

// ExtractorSource pulls a value out of a request. It returns ("", false)
// when the value is absent.
type ExtractorSource = func(Context) (string, bool)

// Extractor tries sources in order and returns the first non-empty value.
// The editor uses it to find a draft id or a theme choice in whichever
// place the client sent it.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor creates an Extractor over sources.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract returns the first non-empty value.
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func nonEmpty(v string) (string, bool) {
	return v, v != ""
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		return nonEmpty(c.Header(name))
	}
}

// FromQuery reads a query parameter.
func FromQuery(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		return nonEmpty(c.Query(name))
	}
}

// FromCookie reads a plain cookie.
func FromCookie(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v, err := c.Cookie(name)
		if err != nil {
			return "", false
		}
		return nonEmpty(v)
	}
}

// FromCookieSigned reads a signed cookie. Tampered values are ignored.
func FromCookieSigned(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v, err := c.CookieSigned(name)
		if err != nil {
			return "", false
		}
		return nonEmpty(v)
	}
}

// FromParam reads a URL path parameter.
func FromParam(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		return nonEmpty(c.Param(name))
	}
}

// FromForm reads a form field.
func FromForm(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		return nonEmpty(c.Form(name))
	}
}
