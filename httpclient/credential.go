package httpclient

import "net/http"

// Credential places one secret on every outbound request, either in a header
// or in a query parameter. A nil Credential sends nothing.
type Credential struct {
	name  string
	value string
	query bool
}

// Bearer sends "Authorization: Bearer <token>". A council whose proxy sits
// behind a gateway uses it.
func Bearer(token string) *Credential {
	return &Credential{name: "Authorization", value: "Bearer " + token}
}

// HeaderKey sends key in the named header, e.g. x-api-key.
func HeaderKey(header, key string) *Credential {
	return &Credential{name: header, value: key}
}

// QueryKey sends key as a query parameter, as the Gemini API expects
// (?key=...).
func QueryKey(param, key string) *Credential {
	return &Credential{name: param, value: key, query: true}
}

// String names where the credential goes, never its value.
func (c *Credential) String() string {
	switch {
	case c == nil:
		return "none"
	case c.query:
		return "query:" + c.name
	default:
		return "header:" + c.name
	}
}

func (c *Credential) apply(req *http.Request) {
	if c == nil || c.value == "" {
		return
	}
	if c.query {
		q := req.URL.Query()
		q.Set(c.name, c.value)
		req.URL.RawQuery = q.Encode()
		return
	}
	req.Header.Set(c.name, c.value)
}
